package inbound

import (
	"context"

	"github.com/google/uuid"
)

// UserService defines the use cases for accounts and sessions
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)
	Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}

// RegisterCommand contains data for account creation
type RegisterCommand struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginCommand contains credentials for authentication
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the data transfer object for users
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt string    `json:"created_at"`
}

// AuthResult carries the authenticated user and a signed access token
type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}
