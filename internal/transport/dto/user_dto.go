package dto

import (
	"time"

	"job-board-api/internal/models"

	"github.com/google/uuid"
)

// RegisterRequest defines the payload for creating an account.
type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     models.Role `json:"role" validate:"required,oneof=candidate employer"`
	Mobile   string      `json:"mobile,omitempty"`
	Location string      `json:"location,omitempty"`
	Company  string      `json:"company,omitempty"`
	Position string      `json:"position,omitempty"`
	Skills   []string    `json:"skills,omitempty"`
}

// LoginRequest defines the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the payload for rotating a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest defines the payload for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse defines the user data returned to the client.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Mobile    string      `json:"mobile,omitempty"`
	Location  string      `json:"location,omitempty"`
	Company   string      `json:"company,omitempty"`
	Position  string      `json:"position,omitempty"`
	Skills    []string    `json:"skills,omitempty"`
	Image     string      `json:"image,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// AuthResponse bundles a user with a fresh token pair.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}
