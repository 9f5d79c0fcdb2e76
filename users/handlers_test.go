package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/user/chatstore-go/apperror"
)

// serviceStub satisfies UserService with scripted behavior.
type serviceStub struct {
	getOrCreate func(ctx context.Context, username string) (*UserResponse, bool, error)
	get         func(ctx context.Context, username string) (*UserResponse, error)
	listAll     func(ctx context.Context) ([]UserResponse, error)
}

func (s *serviceStub) GetOrCreate(ctx context.Context, username string) (*UserResponse, bool, error) {
	return s.getOrCreate(ctx, username)
}

func (s *serviceStub) Get(ctx context.Context, username string) (*UserResponse, error) {
	return s.get(ctx, username)
}

func (s *serviceStub) ListAll(ctx context.Context) ([]UserResponse, error) {
	return s.listAll(ctx)
}

func newTestRouter(service UserService) *chi.Mux {
	h := NewUserHandlers(service)
	r := chi.NewRouter()
	r.Route("/user", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

func TestCreateUser(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name       string
		created    bool
		wantStatus int
	}{
		{"Newly created", true, http.StatusCreated},
		{"Already existed", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &serviceStub{
				getOrCreate: func(ctx context.Context, username string) (*UserResponse, bool, error) {
					return &UserResponse{ID: 7, Username: username}, tt.created, nil
				},
			}
			router := newTestRouter(service)

			r := httptest.NewRequest(http.MethodPost, "/user/create-user/johndoe", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			req.Equal(tt.wantStatus, w.Code)

			var user UserResponse
			req.NoError(json.Unmarshal(w.Body.Bytes(), &user))
			req.Equal(int64(7), user.ID)
			req.Equal("johndoe", user.Username)
		})
	}
}

func TestCreateUserInvalidUsername(t *testing.T) {
	req := require.New(t)

	service := &serviceStub{
		getOrCreate: func(ctx context.Context, username string) (*UserResponse, bool, error) {
			return nil, false, apperror.NewInvalidUsernameError("username must be 3-18 characters, start and end with a letter or digit, and contain only letters, digits and . _ + -")
		},
	}
	router := newTestRouter(service)

	r := httptest.NewRequest(http.MethodPost, "/user/create-user/-bad", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusBadRequest, w.Code)

	var resp apperror.ErrorResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.Contains(resp.Error, "username must be")
}

func TestGetUser(t *testing.T) {
	req := require.New(t)

	service := &serviceStub{
		get: func(ctx context.Context, username string) (*UserResponse, error) {
			if username != "johndoe" {
				return nil, apperror.NewUserNotFoundError("User does not exist")
			}
			return &UserResponse{ID: 1, Username: username}, nil
		},
	}
	router := newTestRouter(service)

	r := httptest.NewRequest(http.MethodGet, "/user/get-user/johndoe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)

	var user UserResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &user))
	req.Equal(int64(1), user.ID)
	req.Equal("johndoe", user.Username)
}

func TestGetUserNotFound(t *testing.T) {
	req := require.New(t)

	service := &serviceStub{
		get: func(ctx context.Context, username string) (*UserResponse, error) {
			return nil, apperror.NewUserNotFoundError("User does not exist")
		},
	}
	router := newTestRouter(service)

	r := httptest.NewRequest(http.MethodGet, "/user/get-user/nobody", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusNotFound, w.Code)

	var resp apperror.ErrorResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.Equal("User does not exist", resp.Error)
}

func TestAllUsers(t *testing.T) {
	req := require.New(t)

	service := &serviceStub{
		listAll: func(ctx context.Context) ([]UserResponse, error) {
			return []UserResponse{
				{ID: 1, Username: "johndoe"},
				{ID: 2, Username: "janedoe"},
			}, nil
		},
	}
	router := newTestRouter(service)

	r := httptest.NewRequest(http.MethodGet, "/user/all-users/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)

	var list []UserResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &list))
	req.Len(list, 2)
	req.Equal("johndoe", list[0].Username)
}

func TestAllUsersEmpty(t *testing.T) {
	req := require.New(t)

	service := &serviceStub{
		listAll: func(ctx context.Context) ([]UserResponse, error) {
			return []UserResponse{}, nil
		},
	}
	router := newTestRouter(service)

	r := httptest.NewRequest(http.MethodGet, "/user/all-users/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	req.JSONEq("[]", w.Body.String())
}
