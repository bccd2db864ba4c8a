// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/bookmark"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/domain/user"
)

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)
	FindByExternalID(ctx context.Context, externalID string) (*recipe.Recipe, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error)

	// Search matches recipes against the criteria, newest first.
	Search(ctx context.Context, criteria SearchCriteria) ([]*recipe.Recipe, int, error)
}

// SearchCriteria defines search parameters for recipes. An empty query
// matches everything.
type SearchCriteria struct {
	Query          string
	AuthorID       *uuid.UUID
	MaxCookingTime *int
	Offset         int
	Limit          int
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// BookmarkRepository defines the interface for bookmark persistence.
// Create must fail for a (user, recipe) pair that is already stored.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *bookmark.Bookmark) error
	Delete(ctx context.Context, userID, recipeID uuid.UUID) error
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*bookmark.Bookmark, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AIService defines the interface for AI operations
type AIService interface {
	GenerateRecipe(ctx context.Context, ingredients []string, preferences AIPreferences) (*AIRecipeResponse, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	SuggestSubstitutions(ctx context.Context, ingredient string) ([]Substitution, error)
}

// AIPreferences constrains AI recipe generation
type AIPreferences struct {
	Cuisine  string
	Dietary  []string
	MaxTime  int
	Servings int
}

// AIRecipeResponse from the AI service
type AIRecipeResponse struct {
	Title        string
	Description  string
	Ingredients  []AIIngredient
	Instructions []string
	CookingTime  int
	Servings     int
	ImageURL     string
}

// AIIngredient from the AI service
type AIIngredient struct {
	Quantity    float64
	Unit        string
	Description string
}

// Substitution is one replacement suggestion for an ingredient
type Substitution struct {
	Name  string
	Ratio string
	Notes string
}

// RecipeProvider defines the interface for the external recipe catalog
type RecipeProvider interface {
	Search(ctx context.Context, query string) ([]ProviderRecipe, error)
	GetByID(ctx context.Context, externalID string) (*ProviderRecipe, error)
}

// ProviderRecipe is a recipe as returned by the external catalog
type ProviderRecipe struct {
	ExternalID   string
	Title        string
	Publisher    string
	Description  string
	ImageURL     string
	SourceURL    string
	CookingTime  int
	Servings     int
	Ingredients  []AIIngredient
	Instructions []string
}
