package security

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/recipehub/api/internal/infrastructure/config"
)

func testConfig(expiration time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-key-for-signing"
	cfg.Auth.JWTExpiration = expiration
	return cfg
}

type AuthServiceTestSuite struct {
	suite.Suite
	auth   *AuthService
	userID uuid.UUID
	ctx    context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.auth = NewAuthService(testConfig(time.Hour), zap.NewNop(), nil)
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) TestTokenRoundTrip() {
	token, err := suite.auth.GenerateToken(suite.userID, "cook@example.com")
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), token)

	claims, err := suite.auth.ValidateToken(suite.ctx, token)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, claims.UserID)
	assert.Equal(suite.T(), "cook@example.com", claims.Email)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSecret() {
	other := NewAuthService(testConfig(time.Hour), zap.NewNop(), nil)
	other.jwtSecret = []byte("a-different-secret")

	token, err := other.GenerateToken(suite.userID, "cook@example.com")
	require.NoError(suite.T(), err)

	_, err = suite.auth.ValidateToken(suite.ctx, token)

	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Expired() {
	expired := NewAuthService(testConfig(-time.Minute), zap.NewNop(), nil)

	token, err := expired.GenerateToken(suite.userID, "cook@example.com")
	require.NoError(suite.T(), err)

	_, err = suite.auth.ValidateToken(suite.ctx, token)

	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Garbage() {
	_, err := suite.auth.ValidateToken(suite.ctx, "not.a.token")

	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRevokeToken_NoRedisIsNoop() {
	token, err := suite.auth.GenerateToken(suite.userID, "cook@example.com")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.auth.RevokeToken(suite.ctx, token))

	// Without a revocation store the token stays valid
	_, err = suite.auth.ValidateToken(suite.ctx, token)
	assert.NoError(suite.T(), err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
