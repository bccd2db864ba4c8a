package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleRequired       = errors.New("recipe title is required")
	ErrTitleTooLong        = errors.New("recipe title must not exceed 200 characters")
	ErrDescriptionRequired = errors.New("recipe description is required")
	ErrDescriptionTooLong  = errors.New("recipe description must not exceed 2000 characters")
	ErrSourceURLRequired   = errors.New("recipe source URL is required")
	ErrInvalidCookingTime  = errors.New("cooking time cannot be negative")
	ErrInvalidServings     = errors.New("servings cannot be negative")
	ErrNoIngredients       = errors.New("recipe must have at least one ingredient")
	ErrNoInstructions      = errors.New("recipe must have at least one instruction")

	// Ingredient validation errors
	ErrIngredientDescriptionRequired = errors.New("ingredient description is required")
	ErrIngredientQuantityNegative    = errors.New("ingredient quantity cannot be negative")
	ErrIngredientQuantityRequired    = errors.New("ingredient quantity is required")
	ErrIngredientUnitRequired        = errors.New("ingredient unit is required")

	// Reference errors
	ErrEmptyRef     = errors.New("recipe reference carries no identity")
	ErrMissingDraft = errors.New("AI-generated reference requires a recipe payload")

	// ErrNotFound is returned by repositories when no recipe matches.
	ErrNotFound = errors.New("recipe not found")
	// ErrNotRecipeOwner guards mutations by non-creators.
	ErrNotRecipeOwner = errors.New("only the recipe creator can perform this action")
)
