// Package messages, service layer. Contains the append path of the message
// store and the SQL side of the range query engine: window filtering, stable
// ordering and page slicing all happen in the database so that response size
// stays bounded server-side.
package messages

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/chatstore-go/apperror"
	"github.com/user/chatstore-go/config"
	"github.com/user/chatstore-go/validation"
)

// MessageService defines the operations of the message store and query engine.
type MessageService interface {
	// Append validates and persists a new immutable message record.
	// dateSent is truncated to whole seconds before persistence; the truncated
	// timestamp actually stored is returned.
	Append(ctx context.Context, sender, receiver, message string, dateSent time.Time) (time.Time, error)
	// RetrieveThread returns one page of the messages sent by sender to
	// receiver (directed) within the window, most recent first. ok is false
	// when the requested page lies past the last valid page.
	RetrieveThread(ctx context.Context, sender, receiver string, win Window, page PageParams) (records []ThreadMessage, ok bool, err error)
	// RetrieveAll is RetrieveThread without the sender/receiver predicate;
	// records carry sender and receiver identifiers.
	RetrieveAll(ctx context.Context, win Window, page PageParams) (records []GlobalMessage, ok bool, err error)
}

type messageServiceImpl struct {
	db  *pgxpool.Pool
	cfg *config.ChatConfig
}

// NewMessageService creates a new MessageService backed by the given pool.
func NewMessageService(db *pgxpool.Pool, cfg *config.ChatConfig) MessageService {
	return &messageServiceImpl{db: db, cfg: cfg}
}

// foreignKeyViolation is the PostgreSQL error code raised when a message
// references a username that does not exist.
const foreignKeyViolation = "23503"

// truncateToSecond normalizes a send timestamp for persistence: UTC, with
// sub-second digits discarded, never rounded up.
func truncateToSecond(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func (s *messageServiceImpl) Append(ctx context.Context, sender, receiver, message string, dateSent time.Time) (time.Time, error) {
	if err := validation.ValidateMessage(message, s.cfg.MaxMessageLength); err != nil {
		return time.Time{}, err
	}

	sent := truncateToSecond(dateSent)

	_, err := s.db.Exec(ctx, `
		INSERT INTO message_records (date_sent, message, sender_username, receiver_username)
		VALUES ($1, $2, $3, $4)`,
		sent, message, sender, receiver)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return time.Time{}, apperror.NewUserNotFoundError("sender or receiver does not exist")
		}
		return time.Time{}, apperror.NewDatabaseError("failed to insert message record", err)
	}

	return sent, nil
}

// Ordering is date_sent DESC with id ASC on ties, so records written within
// the same second page out deterministically in insertion order.
func (s *messageServiceImpl) RetrieveThread(ctx context.Context, sender, receiver string, win Window, page PageParams) ([]ThreadMessage, bool, error) {
	var total int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM message_records
		WHERE date_sent BETWEEN $1 AND $2
		  AND sender_username = $3
		  AND receiver_username = $4`,
		win.Start, win.End, sender, receiver).Scan(&total)
	if err != nil {
		return nil, false, apperror.NewDatabaseError("failed to count thread messages", err)
	}

	offset, limit, ok := page.Bounds(total)
	if !ok {
		return nil, false, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT date_sent, message
		FROM message_records
		WHERE date_sent BETWEEN $1 AND $2
		  AND sender_username = $3
		  AND receiver_username = $4
		ORDER BY date_sent DESC, id ASC
		LIMIT $5 OFFSET $6`,
		win.Start, win.End, sender, receiver, limit, offset)
	if err != nil {
		return nil, false, apperror.NewDatabaseError("failed to query thread messages", err)
	}
	defer rows.Close()

	records := make([]ThreadMessage, 0, limit)
	for rows.Next() {
		var dateSent time.Time
		var record ThreadMessage
		if err := rows.Scan(&dateSent, &record.Message); err != nil {
			return nil, false, apperror.NewDatabaseError("failed to scan message row", err)
		}
		record.DateSent = dateSent.UTC().Format(time.RFC3339)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, false, apperror.NewDatabaseError("failed to iterate message rows", err)
	}
	return records, true, nil
}

func (s *messageServiceImpl) RetrieveAll(ctx context.Context, win Window, page PageParams) ([]GlobalMessage, bool, error) {
	var total int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM message_records
		WHERE date_sent BETWEEN $1 AND $2`,
		win.Start, win.End).Scan(&total)
	if err != nil {
		return nil, false, apperror.NewDatabaseError("failed to count messages", err)
	}

	offset, limit, ok := page.Bounds(total)
	if !ok {
		return nil, false, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT sender_username, receiver_username, date_sent, message
		FROM message_records
		WHERE date_sent BETWEEN $1 AND $2
		ORDER BY date_sent DESC, id ASC
		LIMIT $3 OFFSET $4`,
		win.Start, win.End, limit, offset)
	if err != nil {
		return nil, false, apperror.NewDatabaseError("failed to query messages", err)
	}
	defer rows.Close()

	records := make([]GlobalMessage, 0, limit)
	for rows.Next() {
		var dateSent time.Time
		var record GlobalMessage
		if err := rows.Scan(&record.Sender, &record.Receiver, &dateSent, &record.Message); err != nil {
			return nil, false, apperror.NewDatabaseError("failed to scan message row", err)
		}
		record.DateSent = dateSent.UTC().Format(time.RFC3339)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, false, apperror.NewDatabaseError("failed to iterate message rows", err)
	}
	return records, true, nil
}
