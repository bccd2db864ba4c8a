// Package security provides JWT authentication with optional
// Redis-backed token revocation.
package security

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/recipehub/api/internal/infrastructure/config"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revocationKeyPrefix = "revoked_token:"

// AuthService issues and validates HS256 access tokens. The Redis
// client may be nil; revocation then degrades to a no-op.
type AuthService struct {
	logger      *zap.Logger
	redisClient *redis.Client
	jwtSecret   []byte
	expiration  time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *AuthService {
	return &AuthService{
		logger:      logger.Named("auth"),
		redisClient: redisClient,
		jwtSecret:   []byte(cfg.Auth.JWTSecret),
		expiration:  cfg.Auth.JWTExpiration,
	}
}

// Claims represents the JWT claims structure
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed access token for the user
func (a *AuthService) GenerateToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "recipehub",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, rejecting revoked ones
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string) (*outbound.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	revoked, err := a.isRevoked(ctx, claims.ID)
	if err != nil {
		a.logger.Warn("Revocation check failed", zap.Error(err))
	} else if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}

	return &outbound.TokenClaims{UserID: userID, Email: claims.Email}, nil
}

// RevokeToken marks a token as revoked until its natural expiry
func (a *AuthService) RevokeToken(ctx context.Context, tokenString string) error {
	if a.redisClient == nil {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("cannot revoke invalid token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	key := revocationKeyPrefix + claims.ID
	if err := a.redisClient.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation: %w", err)
	}

	a.logger.Info("Token revoked", zap.String("token_id", claims.ID))
	return nil
}

func (a *AuthService) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	if a.redisClient == nil {
		return false, nil
	}
	n, err := a.redisClient.Exists(ctx, revocationKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
