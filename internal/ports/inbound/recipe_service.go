// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/google/uuid"
)

// RecipeService defines the use cases for recipe management
type RecipeService interface {
	// Commands
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error

	// Queries
	GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	GetRecipesByUser(ctx context.Context, userID uuid.UUID) ([]RecipeDTO, error)
	SearchRecipes(ctx context.Context, query string) ([]RecipeDTO, error)
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	CreatorID    uuid.UUID
	Title        string
	Description  string
	Publisher    string
	Ingredients  []IngredientCommand
	Instructions []string
	ImageURL     string
	CookingTime  int
	Servings     int
	AIGenerated  bool
	SourceURL    string
}

// UpdateRecipeCommand contains data for a partial recipe update. Nil
// fields keep their stored value.
type UpdateRecipeCommand struct {
	RecipeID     uuid.UUID
	UserID       uuid.UUID
	Title        *string
	Description  *string
	Publisher    *string
	Ingredients  []IngredientCommand
	Instructions []string
	ImageURL     *string
	CookingTime  *int
	Servings     *int
	SourceURL    *string
}

// IngredientCommand for submitting ingredients
type IngredientCommand struct {
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// RecipeDTO is the data transfer object for recipes
type RecipeDTO struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Publisher    string              `json:"publisher,omitempty"`
	CreatorID    uuid.UUID           `json:"creator_id"`
	Ingredients  []IngredientCommand `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	ImageURL     string              `json:"image_url,omitempty"`
	CookingTime  int                 `json:"cooking_time"`
	Servings     int                 `json:"servings"`
	AIGenerated  bool                `json:"isAIGenerated"`
	SourceURL    string              `json:"source_url,omitempty"`
	ExternalID   string              `json:"external_id,omitempty"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}
