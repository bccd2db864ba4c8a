package inbound

import "context"

// AIService defines the AI-backed use cases: recipe generation, image
// generation, recommendations and ingredient substitutions.
type AIService interface {
	GenerateRecipe(ctx context.Context, cmd GenerateRecipeCommand) (*GeneratedRecipeDTO, error)
	GenerateImage(ctx context.Context, recipeName string) (string, error)
	Recommendations(ctx context.Context, cmd RecommendationsCommand) ([]RecommendationDTO, error)
	Substitutions(ctx context.Context, ingredient string) ([]SubstitutionDTO, error)
}

// GenerateRecipeCommand asks the model for a recipe built from the
// given ingredients
type GenerateRecipeCommand struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1"`
	Cuisine     string   `json:"cuisine,omitempty"`
	Dietary     []string `json:"dietary,omitempty"`
	Servings    int      `json:"servings,omitempty"`
}

// GeneratedRecipeDTO is an ephemeral AI recipe. It has no id until the
// caller saves or bookmarks it.
type GeneratedRecipeDTO struct {
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Ingredients  []IngredientCommand `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	ImageURL     string              `json:"image_url,omitempty"`
	CookingTime  int                 `json:"cooking_time"`
	Servings     int                 `json:"servings"`
	AIGenerated  bool                `json:"isAIGenerated"`
}

// RecommendationsCommand filters provider results by user preferences
type RecommendationsCommand struct {
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	CuisineTypes        []string `json:"cuisineTypes,omitempty"`
	CookingTime         int      `json:"cookingTime,omitempty"`
	Difficulty          string   `json:"difficulty,omitempty"`
}

// RecommendationDTO is one recommended provider recipe
type RecommendationDTO struct {
	ExternalID  string `json:"external_id"`
	Title       string `json:"title"`
	Publisher   string `json:"publisher,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	CookingTime int    `json:"cooking_time"`
}

// SubstitutionDTO is one replacement suggestion for an ingredient
type SubstitutionDTO struct {
	Name  string `json:"name"`
	Ratio string `json:"ratio"`
	Notes string `json:"notes,omitempty"`
}
