// Package users, service layer. Contains the business logic for the user
// directory: get-or-create, lookup, and listing.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/chatstore-go/apperror"
	"github.com/user/chatstore-go/config"
	"github.com/user/chatstore-go/validation"
)

// UserService defines the operations of the user directory.
// Handlers depend on this interface rather than the concrete implementation.
type UserService interface {
	// GetOrCreate returns the user with the given username, creating it first
	// if it does not exist. The boolean reports whether a row was created.
	GetOrCreate(ctx context.Context, username string) (*UserResponse, bool, error)
	// Get returns the user with the given username or a UserNotFound error.
	Get(ctx context.Context, username string) (*UserResponse, error)
	// ListAll returns every user, order unspecified.
	ListAll(ctx context.Context) ([]UserResponse, error)
}

type userServiceImpl struct {
	db  *pgxpool.Pool
	cfg *config.ChatConfig
}

// NewUserService creates a new UserService backed by the given pool.
func NewUserService(db *pgxpool.Pool, cfg *config.ChatConfig) UserService {
	return &userServiceImpl{db: db, cfg: cfg}
}

// GetOrCreate validates the username, then performs an atomic insert-if-absent.
// Concurrent calls with the same username cannot create duplicates: the insert
// relies on the unique constraint on users.username, not on application locks.
func (s *userServiceImpl) GetOrCreate(ctx context.Context, username string) (*UserResponse, bool, error) {
	if err := validation.ValidateUsername(username, s.cfg.UsernameMaxLength); err != nil {
		return nil, false, err
	}

	var user UserResponse
	// ON CONFLICT DO NOTHING returns no row when the username already exists,
	// which surfaces as pgx.ErrNoRows on Scan.
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (username)
		VALUES ($1)
		ON CONFLICT (username) DO NOTHING
		RETURNING id, username`,
		username).Scan(&user.ID, &user.Username)
	if err == nil {
		return &user, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperror.NewDatabaseError("failed to create user", err)
	}

	existing, err := s.Get(ctx, username)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Get looks a user up by username.
func (s *userServiceImpl) Get(ctx context.Context, username string) (*UserResponse, error) {
	var user UserResponse
	err := s.db.QueryRow(ctx,
		`SELECT id, username FROM users WHERE username = $1`,
		username).Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewUserNotFoundError(fmt.Sprintf("User with username %s does not exist", username))
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &user, nil
}

// ListAll returns all users. Rows are streamed from the database and collected
// into the response slice; re-invoking the method restarts the scan.
func (s *userServiceImpl) ListAll(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.db.Query(ctx, `SELECT id, username FROM users`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	defer rows.Close()

	users := make([]UserResponse, 0)
	for rows.Next() {
		var user UserResponse
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan user row", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate user rows", err)
	}
	return users, nil
}
