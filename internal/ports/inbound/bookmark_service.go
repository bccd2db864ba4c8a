package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/recipe"
)

// BookmarkService defines the use cases for saving recipes. Callers
// resolve a reference to a local recipe id first, then bookmark that id;
// the two steps never collapse into one call.
type BookmarkService interface {
	// Resolve reconciles a recipe reference to a durable local id,
	// stamping ref.LocalID on success.
	Resolve(ctx context.Context, userID uuid.UUID, ref *recipe.Ref) (uuid.UUID, error)

	AddBookmark(ctx context.Context, userID, recipeID uuid.UUID) (*BookmarkDTO, error)
	RemoveBookmark(ctx context.Context, userID, recipeID uuid.UUID) error
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]BookmarkDTO, error)
	IsBookmarked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
}

// BookmarkDTO is a bookmark joined with its recipe
type BookmarkDTO struct {
	RecipeID  uuid.UUID  `json:"recipe_id"`
	Recipe    *RecipeDTO `json:"recipe,omitempty"`
	CreatedAt string     `json:"created_at"`
}
