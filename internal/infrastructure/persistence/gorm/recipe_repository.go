package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	model := RecipeToModel(entity)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing recipe
func (r *RecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	model := RecipeToModel(entity)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrNotFound
	}
	return nil
}

// Delete deletes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrNotFound
	}
	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model), nil
}

// FindByIDs finds recipes by a set of IDs; missing ids are simply absent
// from the result
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return []*recipe.Recipe{}, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToRecipes(models), nil
}

// FindByExternalID finds a recipe mirrored from the given provider id
func (r *RecipeRepository) FindByExternalID(ctx context.Context, externalID string) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "external_id = ?", externalID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model), nil
}

// FindByUserID finds recipes created by a user, newest first
func (r *RecipeRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("creator_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("creator_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return modelsToRecipes(models), int(total), nil
}

// Search matches recipes case-insensitively against title and
// description, newest first. An empty query matches everything.
func (r *RecipeRepository) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if term := strings.TrimSpace(criteria.Query); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if criteria.AuthorID != nil {
		query = query.Where("creator_id = ?", *criteria.AuthorID)
	}
	if criteria.MaxCookingTime != nil {
		query = query.Where("cooking_time_minutes <= ?", *criteria.MaxCookingTime)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 20
	}

	var models []RecipeModel
	result := query.
		Order("created_at DESC").
		Offset(criteria.Offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return modelsToRecipes(models), int(total), nil
}

func modelsToRecipes(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToRecipe(&models[i]))
	}
	return recipes
}
