// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

const searchLimit = 100

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipeRepo outbound.RecipeRepository, logger *zap.Logger) inbound.RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe validates and persists a new recipe owned by the caller
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe",
		zap.String("title", cmd.Title),
		zap.String("creator_id", cmd.CreatorID.String()),
		zap.Bool("ai_generated", cmd.AIGenerated),
	)

	draft := draftFromCommand(cmd)
	entity, err := recipe.NewRecipe(draft, cmd.CreatorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	dto := EntityToDTO(entity)
	return &dto, nil
}

// GetRecipeByID returns a single recipe
func (s *RecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	dto := EntityToDTO(entity)
	return &dto, nil
}

// UpdateRecipe applies a partial patch to a recipe the caller owns.
// Existence is checked before ownership so a missing recipe is NotFound
// rather than Forbidden.
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}
	if !entity.IsOwnedBy(cmd.UserID) {
		return nil, errors.NewInsufficientPermissionsError("update this recipe")
	}

	patch := recipe.Patch{
		Title:        cmd.Title,
		Description:  cmd.Description,
		Publisher:    cmd.Publisher,
		Instructions: cmd.Instructions,
		ImageURL:     cmd.ImageURL,
		CookingTime:  cmd.CookingTime,
		Servings:     cmd.Servings,
		SourceURL:    cmd.SourceURL,
	}
	if cmd.Ingredients != nil {
		patch.Ingredients = ingredientsFromCommands(cmd.Ingredients)
	}

	if err := entity.Apply(patch); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	s.logger.Info("Recipe updated", zap.String("recipe_id", entity.ID().String()))

	dto := EntityToDTO(entity)
	return &dto, nil
}

// DeleteRecipe removes a recipe the caller owns. Bookmarks pointing at
// the recipe are left in place and dropped from listings at read time.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if !entity.IsOwnedBy(userID) {
		return errors.NewInsufficientPermissionsError("delete this recipe")
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}

	s.logger.Info("Recipe deleted", zap.String("recipe_id", recipeID.String()))
	return nil
}

// GetRecipesByUser returns the caller's own recipes, newest first
func (s *RecipeService) GetRecipesByUser(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeDTO, error) {
	entities, _, err := s.recipeRepo.FindByUserID(ctx, userID, 0, searchLimit)
	if err != nil {
		return nil, errors.NewDatabaseError("list user recipes", err)
	}
	return entitiesToDTOs(entities), nil
}

// SearchRecipes matches the query case-insensitively against title and
// description. An empty query returns all recipes, newest first.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]inbound.RecipeDTO, error) {
	entities, _, err := s.recipeRepo.Search(ctx, outbound.SearchCriteria{
		Query: query,
		Limit: searchLimit,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("search recipes", err)
	}
	return entitiesToDTOs(entities), nil
}

func (s *RecipeService) findRecipe(ctx context.Context, recipeID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if stderrors.Is(err, recipe.ErrNotFound) {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return entity, nil
}

func draftFromCommand(cmd inbound.CreateRecipeCommand) recipe.Draft {
	return recipe.Draft{
		Title:        cmd.Title,
		Description:  cmd.Description,
		Publisher:    cmd.Publisher,
		Ingredients:  ingredientsFromCommands(cmd.Ingredients),
		Instructions: cmd.Instructions,
		ImageURL:     cmd.ImageURL,
		CookingTime:  cmd.CookingTime,
		Servings:     cmd.Servings,
		AIGenerated:  cmd.AIGenerated,
		SourceURL:    cmd.SourceURL,
	}
}

func ingredientsFromCommands(cmds []inbound.IngredientCommand) []recipe.Ingredient {
	ingredients := make([]recipe.Ingredient, 0, len(cmds))
	for _, c := range cmds {
		ingredients = append(ingredients, recipe.Ingredient{
			Quantity:    c.Quantity,
			Unit:        c.Unit,
			Description: c.Description,
		})
	}
	return ingredients
}

// EntityToDTO converts a domain recipe to its transfer representation.
// Shared with the bookmark service for joined listings.
func EntityToDTO(entity *recipe.Recipe) inbound.RecipeDTO {
	ingredients := make([]inbound.IngredientCommand, 0, len(entity.Ingredients()))
	for _, ing := range entity.Ingredients() {
		ingredients = append(ingredients, inbound.IngredientCommand{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}

	return inbound.RecipeDTO{
		ID:           entity.ID(),
		Title:        entity.Title(),
		Description:  entity.Description(),
		Publisher:    entity.Publisher(),
		CreatorID:    entity.CreatorID(),
		Ingredients:  ingredients,
		Instructions: entity.Instructions(),
		ImageURL:     entity.ImageURL(),
		CookingTime:  entity.CookingTime(),
		Servings:     entity.Servings(),
		AIGenerated:  entity.IsAIGenerated(),
		SourceURL:    entity.SourceURL(),
		ExternalID:   entity.ExternalID(),
		CreatedAt:    entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    entity.UpdatedAt().Format(time.RFC3339),
	}
}

func entitiesToDTOs(entities []*recipe.Recipe) []inbound.RecipeDTO {
	dtos := make([]inbound.RecipeDTO, 0, len(entities))
	for _, e := range entities {
		dtos = append(dtos, EntityToDTO(e))
	}
	return dtos
}
