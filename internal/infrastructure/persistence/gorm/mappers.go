package gorm

import (
	"github.com/recipehub/api/internal/domain/bookmark"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/domain/user"
)

// RecipeToModel converts a domain recipe to its persistence model
func RecipeToModel(entity *recipe.Recipe) *RecipeModel {
	ingredients := make(IngredientSlice, 0, len(entity.Ingredients()))
	for _, ing := range entity.Ingredients() {
		ingredients = append(ingredients, IngredientRecord{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}

	return &RecipeModel{
		ID:                 entity.ID(),
		Title:              entity.Title(),
		Description:        entity.Description(),
		Publisher:          entity.Publisher(),
		CreatorID:          entity.CreatorID(),
		Ingredients:        ingredients,
		Instructions:       StringSlice(entity.Instructions()),
		ImageURL:           entity.ImageURL(),
		CookingTimeMinutes: entity.CookingTime(),
		Servings:           entity.Servings(),
		AIGenerated:        entity.IsAIGenerated(),
		SourceURL:          entity.SourceURL(),
		ExternalID:         entity.ExternalID(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

// ModelToRecipe converts a persistence model back to a domain recipe
func ModelToRecipe(model *RecipeModel) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, 0, len(model.Ingredients))
	for _, ing := range model.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}

	return recipe.Reconstitute(
		model.ID,
		model.Title,
		model.Description,
		model.Publisher,
		model.CreatorID,
		ingredients,
		[]string(model.Instructions),
		model.ImageURL,
		model.CookingTimeMinutes,
		model.Servings,
		model.AIGenerated,
		model.SourceURL,
		model.ExternalID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// UserToModel converts a domain user to its persistence model
func UserToModel(entity *user.User) *UserModel {
	return &UserModel{
		ID:           entity.ID(),
		Username:     entity.Username(),
		Email:        entity.Email(),
		PasswordHash: entity.PasswordHash(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

// ModelToUser converts a persistence model back to a domain user
func ModelToUser(model *UserModel) *user.User {
	return user.Reconstitute(
		model.ID,
		model.Username,
		model.Email,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// BookmarkToModel converts a domain bookmark to its persistence model
func BookmarkToModel(entity *bookmark.Bookmark) *BookmarkModel {
	return &BookmarkModel{
		UserID:    entity.UserID(),
		RecipeID:  entity.RecipeID(),
		CreatedAt: entity.CreatedAt(),
	}
}

// ModelToBookmark converts a persistence model back to a domain bookmark
func ModelToBookmark(model *BookmarkModel) *bookmark.Bookmark {
	return bookmark.Reconstitute(model.UserID, model.RecipeID, model.CreatedAt)
}
