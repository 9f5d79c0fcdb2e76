// Package users, handler layer. Translates HTTP requests into directory
// operations and maps domain failures onto structured error responses.
package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/chatstore-go/apperror"
)

// UserHandlers provides HTTP handlers for the user directory.
type UserHandlers struct {
	service UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes registers the user API routes on the given router.
// Mounted under /user in main.go.
func (h *UserHandlers) RegisterRoutes(router chi.Router) {
	router.Post("/create-user/{username}", h.createUser)
	router.Get("/get-user/{username}", h.getUser)
	router.Get("/all-users/", h.allUsers)
}

// createUser godoc
// @Summary Create a user
// @Description Creates the user if it does not exist yet; existing users are returned unchanged.
// @Tags users
// @Produce json
// @Param username path string true "Username to create"
// @Success 200 {object} UserResponse "User already existed"
// @Success 201 {object} UserResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Invalid username"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /user/create-user/{username} [post]
func (h *UserHandlers) createUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, created, err := h.service.GetOrCreate(r.Context(), username)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(user)
}

// getUser godoc
// @Summary Get a user
// @Description Looks up a user by username.
// @Tags users
// @Produce json
// @Param username path string true "Username to look up"
// @Success 200 {object} UserResponse
// @Failure 404 {object} apperror.ErrorResponse "User does not exist"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /user/get-user/{username} [get]
func (h *UserHandlers) getUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.service.Get(r.Context(), username)
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

// allUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /user/all-users/ [get]
func (h *UserHandlers) allUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListAll(r.Context())
	if err != nil {
		apperror.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(users)
}
