package v1

import (
	"github.com/expensetracker/backend/internal/models"
	"github.com/google/uuid"
)

// RegisterRequest is the body for registering a new user.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Username string `json:"username" example:"jane"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// LoginRequest is the body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// User is the API representation of a user account.
type User struct {
	ID       uuid.UUID `json:"id" example:"d349861c-e96c-49bf-a0f6-b6e2a47eb3f3"`
	Email    string    `json:"email" example:"jane@example.com"`
	Username string    `json:"username" example:"jane"`
}

func newUser(u models.User) User {
	return User{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}

// Session is a logged-in session with its bearer token.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SessionResponse is the response for register and login.
type SessionResponse struct {
	Data  *Session `json:"data"`
	Error *string  `json:"error" example:"the email or password is incorrect"`
}

// UserResponse is the response for the current user endpoint.
type UserResponse struct {
	Data  *User   `json:"data"`
	Error *string `json:"error"`
}
