package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/user"
	"github.com/recipehub/api/internal/ports/outbound"
	"gorm.io/gorm"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := UserToModel(entity)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	model := UserToModel(entity)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToUser(&model), nil
}

// FindByEmail finds a user by email, matching case-insensitively
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(strings.TrimSpace(email)))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToUser(&model), nil
}

// FindByUsername finds a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).First(&model, "username = ?", strings.TrimSpace(username))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToUser(&model), nil
}
