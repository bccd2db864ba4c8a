package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/recipehub/api/internal/infrastructure/persistence/memory"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/internal/ports/outbound"
	apperrors "github.com/recipehub/api/pkg/errors"
)

// stubTokens issues predictable tokens without signing anything.
type stubTokens struct{}

func (stubTokens) GenerateToken(userID uuid.UUID, email string) (string, error) {
	return "token-" + userID.String(), nil
}

func (stubTokens) ValidateToken(ctx context.Context, token string) (*outbound.TokenClaims, error) {
	return nil, apperrors.NewUnauthorizedError("not implemented")
}

func (stubTokens) RevokeToken(ctx context.Context, token string) error { return nil }

type UserServiceTestSuite struct {
	suite.Suite
	service inbound.UserService
	ctx     context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.service = NewUserService(memory.NewUserRepository(), stubTokens{}, zap.NewNop())
	suite.ctx = context.Background()
}

func registerCommand() inbound.RegisterCommand {
	return inbound.RegisterCommand{
		Username: "homecook",
		Email:    "cook@example.com",
		Password: "kitchen-secret",
	}
}

func (suite *UserServiceTestSuite) TestRegister() {
	result, err := suite.service.Register(suite.ctx, registerCommand())

	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, result.User.ID)
	assert.Equal(suite.T(), "homecook", result.User.Username)
	assert.Equal(suite.T(), "cook@example.com", result.User.Email)
	assert.NotEmpty(suite.T(), result.Token)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	_, err := suite.service.Register(suite.ctx, registerCommand())
	require.NoError(suite.T(), err)

	cmd := registerCommand()
	cmd.Username = "othercook"
	_, err = suite.service.Register(suite.ctx, cmd)

	assert.Equal(suite.T(), apperrors.CodeEmailAlreadyExists, apperrors.GetCode(err))
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateUsername() {
	_, err := suite.service.Register(suite.ctx, registerCommand())
	require.NoError(suite.T(), err)

	cmd := registerCommand()
	cmd.Email = "other@example.com"
	_, err = suite.service.Register(suite.ctx, cmd)

	assert.Equal(suite.T(), apperrors.CodeUsernameAlreadyExists, apperrors.GetCode(err))
}

func (suite *UserServiceTestSuite) TestRegister_WeakPassword() {
	cmd := registerCommand()
	cmd.Password = "abc"

	_, err := suite.service.Register(suite.ctx, cmd)

	assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
}

func (suite *UserServiceTestSuite) TestLogin() {
	registered, err := suite.service.Register(suite.ctx, registerCommand())
	require.NoError(suite.T(), err)

	result, err := suite.service.Login(suite.ctx, inbound.LoginCommand{
		Email:    "cook@example.com",
		Password: "kitchen-secret",
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.User.ID, result.User.ID)
	assert.NotEmpty(suite.T(), result.Token)
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	_, err := suite.service.Register(suite.ctx, registerCommand())
	require.NoError(suite.T(), err)

	_, err = suite.service.Login(suite.ctx, inbound.LoginCommand{
		Email:    "cook@example.com",
		Password: "wrong-password",
	})

	assert.Equal(suite.T(), apperrors.CodeInvalidCredentials, apperrors.GetCode(err))
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmail() {
	// Indistinguishable from a wrong password
	_, err := suite.service.Login(suite.ctx, inbound.LoginCommand{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.Equal(suite.T(), apperrors.CodeInvalidCredentials, apperrors.GetCode(err))
}

func (suite *UserServiceTestSuite) TestGetProfile() {
	registered, err := suite.service.Register(suite.ctx, registerCommand())
	require.NoError(suite.T(), err)

	dto, err := suite.service.GetProfile(suite.ctx, registered.User.ID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "homecook", dto.Username)
}

func (suite *UserServiceTestSuite) TestGetProfile_NotFound() {
	_, err := suite.service.GetProfile(suite.ctx, uuid.New())

	assert.Equal(suite.T(), apperrors.CodeUserNotFound, apperrors.GetCode(err))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
