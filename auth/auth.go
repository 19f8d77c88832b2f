// Package auth defines the authentication endpoint contract: request and
// response shapes, their validation, and a typed client for the auth
// routes.
package auth

import (
	"github.com/fittrack/go-fitness-client/users"
)

// LoginRequest carries the credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the fields for POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Response is the shape both login and register return.
type Response struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	User         users.User `json:"user"`
	ExpiresIn    *int64     `json:"expiresIn,omitempty"` // seconds; advisory, the token itself is authoritative
}

// TokenRefreshRequest carries the refresh credential for POST /auth/refresh.
type TokenRefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenRefreshResponse is the refresh endpoint's response. RefreshToken is
// only present when the backend rotates it; otherwise the stored one
// remains valid.
type TokenRefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
