// Package user provides the application layer for accounts and sessions
package user

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/user"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

// UserService implements the account use cases
type UserService struct {
	userRepo outbound.UserRepository
	tokens   outbound.TokenService
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo outbound.UserRepository, tokens outbound.TokenService, logger *zap.Logger) inbound.UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.Named("user-service"),
	}
}

// Register creates an account and returns it with a signed token.
// Duplicate email or username each map to their own conflict code.
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.AuthResult, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, errors.NewEmailAlreadyExistsError()
	} else if err != nil && !stderrors.Is(err, user.ErrNotFound) {
		return nil, errors.NewDatabaseError("check email", err)
	}
	if existing, err := s.userRepo.FindByUsername(ctx, cmd.Username); err == nil && existing != nil {
		return nil, errors.NewUsernameAlreadyExistsError()
	} else if err != nil && !stderrors.Is(err, user.ErrNotFound) {
		return nil, errors.NewDatabaseError("check username", err)
	}

	entity, err := user.NewUser(cmd.Username, cmd.Email, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	token, err := s.tokens.GenerateToken(entity.ID(), entity.Email())
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", entity.ID().String()),
		zap.String("username", entity.Username()),
	)

	return &inbound.AuthResult{User: entityToDTO(entity), Token: token}, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.AuthResult, error) {
	entity, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, errors.NewDatabaseError("find user", err)
	}

	if err := entity.CheckPassword(cmd.Password); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	token, err := s.tokens.GenerateToken(entity.ID(), entity.Email())
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("User logged in", zap.String("user_id", entity.ID().String()))

	return &inbound.AuthResult{User: entityToDTO(entity), Token: token}, nil
}

// GetProfile returns the account for the given id
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	entity, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewUserNotFoundError(userID.String())
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	dto := entityToDTO(entity)
	return &dto, nil
}

func entityToDTO(entity *user.User) inbound.UserDTO {
	return inbound.UserDTO{
		ID:        entity.ID(),
		Username:  entity.Username(),
		Email:     entity.Email(),
		CreatedAt: entity.CreatedAt().Format(time.RFC3339),
	}
}
