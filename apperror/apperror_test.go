package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"Invalid username", NewInvalidUsernameError("bad username"), http.StatusBadRequest},
		{"Message too long", NewMessageTooLongError("too long"), http.StatusBadRequest},
		{"Missing parameter", NewMissingParameterError("sender is required"), http.StatusBadRequest},
		{"Bad query param", NewBadQueryParamError("page must be int"), http.StatusBadRequest},
		{"Malformed body", NewMalformedBodyError("not json", nil), http.StatusBadRequest},
		{"User not found", NewUserNotFoundError("no such user"), http.StatusNotFound},
		{"Conflict", NewConflictError("exists", nil), http.StatusConflict},
		{"Database", NewDatabaseError("db down", nil), http.StatusInternalServerError},
		{"Internal", NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, tt.err.StatusCode())
		})
	}
}

func TestErrorStringAndUnwrap(t *testing.T) {
	req := require.New(t)

	cause := errors.New("connection refused")
	err := NewDatabaseError("failed to query", cause)

	req.Equal("failed to query: connection refused", err.Error())
	req.ErrorIs(err, cause)

	multi := NewMissingParameterError("sender is required", "receiver is required")
	req.Equal("sender is required; receiver is required", multi.Error())
}

func TestToResponseShape(t *testing.T) {
	req := require.New(t)

	single, err := json.Marshal(NewUserNotFoundError("User does not exist").ToResponse())
	req.NoError(err)
	req.JSONEq(`{"error": "User does not exist"}`, string(single))

	multi, err := json.Marshal(NewBadQueryParamError(
		"query param page must be int",
		"query param per_page must be int",
	).ToResponse())
	req.NoError(err)
	req.JSONEq(`{"error": ["query param page must be int", "query param per_page must be int"]}`, string(multi))
}

func TestWriteError(t *testing.T) {
	req := require.New(t)

	w := httptest.NewRecorder()
	WriteError(w, NewUserNotFoundError("User does not exist"))

	req.Equal(http.StatusNotFound, w.Code)
	req.Equal("application/json", w.Header().Get("Content-Type"))
	req.JSONEq(`{"error": "User does not exist"}`, w.Body.String())
}

func TestWriteErrorWrapsUnknownErrors(t *testing.T) {
	req := require.New(t)

	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("some driver failure"))

	// Non-AppErrors become internal errors and never leak their details.
	req.Equal(http.StatusInternalServerError, w.Code)
	req.JSONEq(`{"error": "internal server error"}`, w.Body.String())
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	req := require.New(t)

	err := fmt.Errorf("handler: %w", NewUserNotFoundError("no such user"))
	req.True(IsUserNotFound(err))
	req.False(IsInvalidUsername(err))

	appErr, ok := FromError(err)
	req.True(ok)
	req.Equal(UserNotFoundError, appErr.Type)
}
