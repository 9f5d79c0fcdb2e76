// Package apperror defines a centralized system for application-specific errors.
// Every domain failure in the chat store maps to one of the types below, which in
// turn maps to an HTTP status code and a stable JSON response shape. Client-input
// errors may carry several messages at once (for example when both pagination
// parameters fail to parse); the `error` field of the JSON payload is then an
// array of strings instead of a single string.
package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ErrorType defines the type of application error
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// MigrationError represents an error during database migrations
	MigrationError
	// InternalError represents a generic internal server error
	InternalError
	// ConflictError represents a conflict, e.g., resource already exists
	ConflictError
	// InvalidUsernameError represents a username that violates the allowed pattern
	InvalidUsernameError
	// MessageTooLongError represents a message body exceeding the configured maximum
	MessageTooLongError
	// UserNotFoundError represents a lookup for a username that does not exist
	UserNotFoundError
	// MissingParameterError represents a required request parameter that was absent
	MissingParameterError
	// BadQueryParamError represents a query parameter that failed to parse
	BadQueryParamError
	// MalformedBodyError represents an unparsable request body / wrong content type
	MalformedBodyError
)

// AppError is the custom error type for the application.
// It wraps an optional underlying error and carries one or more
// human-readable messages for the API client.
type AppError struct {
	Type     ErrorType
	Messages []string
	Err      error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error so that `errors.Is` and `errors.As`
// can inspect the chain of wrapped errors.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, MigrationError, InternalError:
		return http.StatusInternalServerError
	case ConflictError:
		return http.StatusConflict
	case UserNotFoundError:
		return http.StatusNotFound
	case InvalidUsernameError, MessageTooLongError, MissingParameterError,
		BadQueryParamError, MalformedBodyError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is the generic factory; prefer the
// typed constructors below.
func NewAppError(errType ErrorType, underlyingError error, messages ...string) *AppError {
	return &AppError{
		Type:     errType,
		Messages: messages,
		Err:      underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, underlyingError, message)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, underlyingError, message)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, underlyingError, message)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, underlyingError, message)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, underlyingError, message)
}

// NewInvalidUsernameError creates a new InvalidUsernameError
func NewInvalidUsernameError(message string) *AppError {
	return NewAppError(InvalidUsernameError, nil, message)
}

// NewMessageTooLongError creates a new MessageTooLongError
func NewMessageTooLongError(message string) *AppError {
	return NewAppError(MessageTooLongError, nil, message)
}

// NewUserNotFoundError creates a new UserNotFoundError
func NewUserNotFoundError(message string) *AppError {
	return NewAppError(UserNotFoundError, nil, message)
}

// NewMissingParameterError creates a new MissingParameterError.
// Several messages may be supplied when more than one parameter is missing.
func NewMissingParameterError(messages ...string) *AppError {
	return NewAppError(MissingParameterError, nil, messages...)
}

// NewBadQueryParamError creates a new BadQueryParamError.
// Several messages may be supplied when more than one parameter is unparsable.
func NewBadQueryParamError(messages ...string) *AppError {
	return NewAppError(BadQueryParamError, nil, messages...)
}

// NewMalformedBodyError creates a new MalformedBodyError
func NewMalformedBodyError(message string, underlyingError error) *AppError {
	return NewAppError(MalformedBodyError, underlyingError, message)
}

// ErrorResponse represents a generic error response payload for API clients.
// Error is a string for a single message and an array of strings when the
// failure carries multiple messages.
type ErrorResponse struct {
	Error interface{} `json:"error"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// Only the user-facing messages are included, never the underlying `Err` details.
func (e *AppError) ToResponse() ErrorResponse {
	if len(e.Messages) == 1 {
		return ErrorResponse{Error: e.Messages[0]}
	}
	return ErrorResponse{Error: e.Messages}
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// WriteError writes an error as a JSON response with the status code derived
// from its type. Errors that are not AppErrors are treated as internal errors
// without leaking their details to the client.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("internal server error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if encErr := json.NewEncoder(w).Encode(appErr.ToResponse()); encErr != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}

// Helper functions to check error types.
// These use `errors.As`, which is robust when errors are wrapped.

// IsUserNotFound checks if an error is a UserNotFound error
func IsUserNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == UserNotFoundError
}

// IsInvalidUsername checks if an error is an InvalidUsername error
func IsInvalidUsername(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == InvalidUsernameError
}

// IsMessageTooLong checks if an error is a MessageTooLong error
func IsMessageTooLong(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == MessageTooLongError
}

// IsBadQueryParam checks if an error is a BadQueryParam error
func IsBadQueryParam(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == BadQueryParamError
}

// IsMissingParameter checks if an error is a MissingParameter error
func IsMissingParameter(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == MissingParameterError
}

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
