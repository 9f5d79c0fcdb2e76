// Package users encapsulates the user directory: creation, lookup and listing
// of users by username. This file defines its request/response DTOs.
package users

// UserResponse represents a user as returned by the API.
// @Description User information
type UserResponse struct {
	// The system-assigned ID of the user
	// example: 1
	ID int64 `json:"id"`
	// The unique username of the user
	// example: "johndoe"
	Username string `json:"username"`
}
