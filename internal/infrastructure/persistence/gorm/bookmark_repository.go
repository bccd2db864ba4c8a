package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/bookmark"
	"github.com/recipehub/api/internal/ports/outbound"
	"gorm.io/gorm"
)

// BookmarkRepository implements the bookmark repository interface using
// GORM. The composite unique index on (user_id, recipe_id) is the
// arbiter for concurrent duplicate inserts; its violation is surfaced
// as bookmark.ErrAlreadyBookmarked.
type BookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *gorm.DB) outbound.BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// Create inserts a bookmark, failing on a duplicate (user, recipe) pair
func (r *BookmarkRepository) Create(ctx context.Context, entity *bookmark.Bookmark) error {
	model := BookmarkToModel(entity)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return bookmark.ErrAlreadyBookmarked
		}
		return err
	}
	return nil
}

// Delete removes exactly one bookmark
func (r *BookmarkRepository) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&BookmarkModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return bookmark.ErrNotFound
	}
	return nil
}

// Exists reports whether the (user, recipe) pair is bookmarked
func (r *BookmarkRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookmarkModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByUserID returns the user's bookmarks, newest first
func (r *BookmarkRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*bookmark.Bookmark, error) {
	var models []BookmarkModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	bookmarks := make([]*bookmark.Bookmark, 0, len(models))
	for i := range models {
		bookmarks = append(bookmarks, ModelToBookmark(&models[i]))
	}
	return bookmarks, nil
}
