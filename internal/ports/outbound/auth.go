package outbound

import (
	"context"

	"github.com/google/uuid"
)

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	RevokeToken(ctx context.Context, token string) error
}

// TokenClaims are the verified claims of an access token
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}
