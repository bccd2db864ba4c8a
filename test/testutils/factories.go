// Package testutils provides test data factories for consistent test
// data generation
package testutils

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/domain/user"
)

// RecipeFactory builds valid recipe drafts for tests
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a recipe factory with a seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// RegularDraft returns a valid non-AI draft: description and source
// URL present, free-text ingredients allowed
func (f *RecipeFactory) RegularDraft() recipe.Draft {
	return recipe.Draft{
		Title:       f.faker.Dinner(),
		Description: f.faker.Sentence(12),
		Ingredients: []recipe.Ingredient{
			{Quantity: 2, Unit: "cups", Description: f.faker.Vegetable()},
			{Description: f.faker.Fruit()},
		},
		Instructions: []string{f.faker.Sentence(8), f.faker.Sentence(8)},
		ImageURL:     f.faker.URL(),
		CookingTime:  f.faker.Number(10, 120),
		Servings:     f.faker.Number(1, 8),
		SourceURL:    f.faker.URL(),
	}
}

// AIDraft returns a valid AI-generated draft: measured ingredients and
// at least one instruction, but no description or source URL
func (f *RecipeFactory) AIDraft() recipe.Draft {
	return recipe.Draft{
		Title: f.faker.Dinner(),
		Ingredients: []recipe.Ingredient{
			{Quantity: 1.5, Unit: "cups", Description: f.faker.Vegetable()},
			{Quantity: 3, Unit: "tbsp", Description: f.faker.Fruit()},
		},
		Instructions: []string{f.faker.Sentence(8)},
		CookingTime:  f.faker.Number(10, 60),
		Servings:     f.faker.Number(1, 6),
		AIGenerated:  true,
	}
}

// Recipe creates a persisted-ready recipe entity owned by creatorID
func (f *RecipeFactory) Recipe(creatorID uuid.UUID) *recipe.Recipe {
	entity, err := recipe.NewRecipe(f.RegularDraft(), creatorID)
	if err != nil {
		panic(err)
	}
	return entity
}

// UserFactory builds valid users for tests
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a user factory with a seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// User creates a user with a known password
func (f *UserFactory) User(password string) *user.User {
	entity, err := user.NewUser(f.faker.Username(), f.faker.Email(), password)
	if err != nil {
		panic(err)
	}
	return entity
}
