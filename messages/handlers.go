// Package messages, handler layer. Translates HTTP requests into store and
// query-engine calls. Handlers capture "now" at request entry, resolve users
// through the directory, and map domain failures onto structured responses;
// no business rules live here.
package messages

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/user/chatstore-go/apperror"
	"github.com/user/chatstore-go/config"
	"github.com/user/chatstore-go/users"
	"github.com/user/chatstore-go/validation"
)

// MessageHandlers provides HTTP handlers for sending and retrieving messages.
type MessageHandlers struct {
	service   MessageService
	directory users.UserService
	cfg       *config.ChatConfig
}

// NewMessageHandlers creates new MessageHandlers.
func NewMessageHandlers(service MessageService, directory users.UserService, cfg *config.ChatConfig) *MessageHandlers {
	return &MessageHandlers{service: service, directory: directory, cfg: cfg}
}

// RegisterRoutes registers the message API routes on the given router.
// Mounted under /message in main.go.
func (h *MessageHandlers) RegisterRoutes(router chi.Router) {
	router.Post("/send/{receiver}", h.sendMessage)
	router.Get("/retrieve/", h.retrieveMessages)
	router.Get("/retrieve/all/", h.retrieveAllMessages)
}

// sendMessage godoc
// @Summary Send a message
// @Description Sends a message from the body's sender to the receiver in the path. Unknown usernames are created on first use.
// @Tags messages
// @Accept json
// @Produce json
// @Param receiver path string true "Receiver username"
// @Param body body SendMessageRequest true "Sender and message text"
// @Success 200 {object} SendMessageResponse
// @Failure 400 {object} apperror.ErrorResponse "Malformed body, missing field, invalid username or message too long"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /message/send/{receiver} [post]
func (h *MessageHandlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	receiver := chi.URLParam(r, "receiver")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.WriteError(w, apperror.NewMalformedBodyError("Content-Type must be application/json", err))
		return
	}
	defer r.Body.Close()

	if req.Sender == "" || req.Message == "" {
		apperror.WriteError(w, apperror.NewMissingParameterError("message is required; sender is required"))
		return
	}
	if err := validation.ValidateMessage(req.Message, h.cfg.MaxMessageLength); err != nil {
		apperror.WriteError(w, err)
		return
	}

	// Sender and receiver are created on first use; validation of either
	// username happens inside the directory.
	if _, _, err := h.directory.GetOrCreate(r.Context(), req.Sender); err != nil {
		apperror.WriteError(w, err)
		return
	}
	if _, _, err := h.directory.GetOrCreate(r.Context(), receiver); err != nil {
		apperror.WriteError(w, err)
		return
	}

	// "now" is captured here, at request entry, never bound at process start.
	dateSent, err := h.service.Append(r.Context(), req.Sender, receiver, req.Message, time.Now().UTC())
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"sender":    req.Sender,
		"receiver":  receiver,
		"date_sent": dateSent,
	}).Debug("message sent")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SendMessageResponse{
		Status:   "success",
		DateSent: dateSent.Format(time.RFC3339),
	})
}

// retrieveMessages godoc
// @Summary Retrieve a sender→receiver thread
// @Description Returns one page of the messages sent by sender to receiver within the trailing date range, most recent first. A page past the last valid page yields an empty object.
// @Tags messages
// @Produce json
// @Param sender query string true "Sender username (also accepted form-encoded in the body)"
// @Param receiver query string true "Receiver username (also accepted form-encoded in the body)"
// @Param page query int false "1-based page number"
// @Param per_page query int false "Page size, capped server-side"
// @Success 200 {array} ThreadMessage
// @Failure 400 {object} apperror.ErrorResponse "Missing parameter or bad query param"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /message/retrieve/ [get]
func (h *MessageHandlers) retrieveMessages(w http.ResponseWriter, r *http.Request) {
	sender, receiver, err := scopedParams(r)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	page, err := ParsePageParams(query.Get("page"), query.Get("per_page"), h.cfg.DefaultMaxDataPerPage)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	win := NewWindow(time.Now().UTC(), h.cfg.DefaultDateRange)
	records, ok, err := h.service.RetrieveThread(r.Context(), sender, receiver, win, page)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	writePage(w, records, ok)
}

// retrieveAllMessages godoc
// @Summary Retrieve messages from all senders
// @Description Returns one page of all messages within the trailing date range, most recent first, with sender and receiver identifiers. A page past the last valid page yields an empty object.
// @Tags messages
// @Produce json
// @Param page query int false "1-based page number"
// @Param per_page query int false "Page size, capped server-side"
// @Success 200 {array} GlobalMessage
// @Failure 400 {object} apperror.ErrorResponse "Bad query param"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /message/retrieve/all/ [get]
func (h *MessageHandlers) retrieveAllMessages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := ParsePageParams(query.Get("page"), query.Get("per_page"), h.cfg.DefaultMaxDataPerPage)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	win := NewWindow(time.Now().UTC(), h.cfg.DefaultDateRange)
	records, ok, err := h.service.RetrieveAll(r.Context(), win, page)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}
	writePage(w, records, ok)
}

// scopedParams extracts the required sender and receiver identifiers from the
// query string, falling back to a form-encoded request body for clients that
// submit them there.
func scopedParams(r *http.Request) (sender, receiver string, err error) {
	query := r.URL.Query()
	sender = query.Get("sender")
	receiver = query.Get("receiver")

	if (sender == "" || receiver == "") && r.Body != nil {
		if body, readErr := io.ReadAll(r.Body); readErr == nil {
			if form, parseErr := url.ParseQuery(strings.TrimSpace(string(body))); parseErr == nil {
				if sender == "" {
					sender = form.Get("sender")
				}
				if receiver == "" {
					receiver = form.Get("receiver")
				}
			}
		}
	}

	if sender == "" || receiver == "" {
		return "", "", apperror.NewMissingParameterError(
			"sender is required and must be a username string",
			"receiver is required and must be a username string",
			"Content-Type must be application/x-www-form-urlencoded",
		)
	}
	return sender, receiver, nil
}

// writePage writes one page of records, or the literal empty object when the
// requested page lies past the last valid page. Out-of-range pages are an
// explicit edge-case policy, not an error.
func writePage(w http.ResponseWriter, records interface{}, ok bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if !ok {
		w.Write([]byte("{}"))
		return
	}
	json.NewEncoder(w).Encode(records)
}
