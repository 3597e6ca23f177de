package auth

import (
	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/users"
)

// RegisterRequest carries the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
}

// LoginRequest carries the credentials payload for login attempts.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the issued tokens plus the user and wallet identifiers.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	AccountID    uuid.UUID      `json:"account_id"`
	User         *users.UserDTO `json:"user"`
}
