package recipe

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	domain "github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/infrastructure/persistence/memory"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/internal/ports/outbound"
	apperrors "github.com/recipehub/api/pkg/errors"
	"github.com/recipehub/api/test/testutils"
)

type RecipeServiceTestSuite struct {
	suite.Suite
	repo    outbound.RecipeRepository
	service inbound.RecipeService
	factory *testutils.RecipeFactory
	ownerID uuid.UUID
	ctx     context.Context
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.repo = memory.NewRecipeRepository()
	suite.service = NewRecipeService(suite.repo, zap.NewNop())
	suite.factory = testutils.NewRecipeFactory(7)
	suite.ownerID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *RecipeServiceTestSuite) createCommand() inbound.CreateRecipeCommand {
	draft := suite.factory.RegularDraft()
	ingredients := make([]inbound.IngredientCommand, 0, len(draft.Ingredients))
	for _, ing := range draft.Ingredients {
		ingredients = append(ingredients, inbound.IngredientCommand{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}
	return inbound.CreateRecipeCommand{
		CreatorID:    suite.ownerID,
		Title:        draft.Title,
		Description:  draft.Description,
		Ingredients:  ingredients,
		Instructions: draft.Instructions,
		ImageURL:     draft.ImageURL,
		CookingTime:  draft.CookingTime,
		Servings:     draft.Servings,
		SourceURL:    draft.SourceURL,
	}
}

func (suite *RecipeServiceTestSuite) TestCreateRecipe() {
	cmd := suite.createCommand()

	dto, err := suite.service.CreateRecipe(suite.ctx, cmd)

	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, dto.ID)
	assert.Equal(suite.T(), cmd.Title, dto.Title)
	assert.Equal(suite.T(), suite.ownerID, dto.CreatorID)

	stored, err := suite.service.GetRecipeByID(suite.ctx, dto.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), dto.Title, stored.Title)
}

func (suite *RecipeServiceTestSuite) TestCreateRecipe_InvalidDraft() {
	cmd := suite.createCommand()
	cmd.Description = ""

	_, err := suite.service.CreateRecipe(suite.ctx, cmd)

	assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
}

func (suite *RecipeServiceTestSuite) TestGetRecipeByID_NotFound() {
	_, err := suite.service.GetRecipeByID(suite.ctx, uuid.New())

	assert.Equal(suite.T(), apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
}

func (suite *RecipeServiceTestSuite) TestUpdateRecipe() {
	created, err := suite.service.CreateRecipe(suite.ctx, suite.createCommand())
	require.NoError(suite.T(), err)

	newTitle := "Renamed Dish"
	updated, err := suite.service.UpdateRecipe(suite.ctx, inbound.UpdateRecipeCommand{
		RecipeID: created.ID,
		UserID:   suite.ownerID,
		Title:    &newTitle,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renamed Dish", updated.Title)
	assert.Equal(suite.T(), created.Description, updated.Description)
}

func (suite *RecipeServiceTestSuite) TestUpdateRecipe_NonOwner() {
	created, err := suite.service.CreateRecipe(suite.ctx, suite.createCommand())
	require.NoError(suite.T(), err)

	newTitle := "Hijacked"
	_, err = suite.service.UpdateRecipe(suite.ctx, inbound.UpdateRecipeCommand{
		RecipeID: created.ID,
		UserID:   uuid.New(),
		Title:    &newTitle,
	})

	assert.Equal(suite.T(), apperrors.CodeInsufficientPermissions, apperrors.GetCode(err))

	stored, err := suite.service.GetRecipeByID(suite.ctx, created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), created.Title, stored.Title)
}

func (suite *RecipeServiceTestSuite) TestUpdateRecipe_MissingRecipeIsNotFound() {
	// Existence is checked before ownership
	newTitle := "Anything"
	_, err := suite.service.UpdateRecipe(suite.ctx, inbound.UpdateRecipeCommand{
		RecipeID: uuid.New(),
		UserID:   uuid.New(),
		Title:    &newTitle,
	})

	assert.Equal(suite.T(), apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
}

func (suite *RecipeServiceTestSuite) TestDeleteRecipe() {
	created, err := suite.service.CreateRecipe(suite.ctx, suite.createCommand())
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.DeleteRecipe(suite.ctx, created.ID, suite.ownerID))

	_, err = suite.service.GetRecipeByID(suite.ctx, created.ID)
	assert.Equal(suite.T(), apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
}

func (suite *RecipeServiceTestSuite) TestDeleteRecipe_NonOwner() {
	created, err := suite.service.CreateRecipe(suite.ctx, suite.createCommand())
	require.NoError(suite.T(), err)

	err = suite.service.DeleteRecipe(suite.ctx, created.ID, uuid.New())

	assert.Equal(suite.T(), apperrors.CodeInsufficientPermissions, apperrors.GetCode(err))
}

func (suite *RecipeServiceTestSuite) TestGetRecipesByUser() {
	_, err := suite.service.CreateRecipe(suite.ctx, suite.createCommand())
	require.NoError(suite.T(), err)
	_, err = suite.service.CreateRecipe(suite.ctx, suite.createCommand())
	require.NoError(suite.T(), err)

	other := suite.factory.Recipe(uuid.New())
	require.NoError(suite.T(), suite.repo.Create(suite.ctx, other))

	dtos, err := suite.service.GetRecipesByUser(suite.ctx, suite.ownerID)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), dtos, 2)
	for _, dto := range dtos {
		assert.Equal(suite.T(), suite.ownerID, dto.CreatorID)
	}
}

func (suite *RecipeServiceTestSuite) TestSearchRecipes_CaseInsensitive() {
	draft := domain.Draft{
		Title:        "Pasta Primavera",
		Description:  "Spring vegetables over noodles",
		Instructions: []string{"Cook"},
		SourceURL:    "https://example.com/pasta",
	}
	entity, err := domain.NewRecipe(draft, suite.ownerID)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.repo.Create(suite.ctx, entity))

	noise, err := domain.NewRecipe(domain.Draft{
		Title:        "Tomato Soup",
		Description:  "Warm and comforting",
		Instructions: []string{"Simmer"},
		SourceURL:    "https://example.com/soup",
	}, suite.ownerID)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.repo.Create(suite.ctx, noise))

	dtos, err := suite.service.SearchRecipes(suite.ctx, "PASTA")

	require.NoError(suite.T(), err)
	require.Len(suite.T(), dtos, 1)
	assert.Equal(suite.T(), "Pasta Primavera", dtos[0].Title)
}

func (suite *RecipeServiceTestSuite) TestSearchRecipes_MatchesDescription() {
	draft := domain.Draft{
		Title:        "Green Bowl",
		Description:  "A hearty quinoa salad",
		Instructions: []string{"Mix"},
		SourceURL:    "https://example.com/bowl",
	}
	entity, err := domain.NewRecipe(draft, suite.ownerID)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.repo.Create(suite.ctx, entity))

	dtos, err := suite.service.SearchRecipes(suite.ctx, "quinoa")

	require.NoError(suite.T(), err)
	require.Len(suite.T(), dtos, 1)
	assert.Equal(suite.T(), "Green Bowl", dtos[0].Title)
}

func (suite *RecipeServiceTestSuite) TestSearchRecipes_EmptyQueryReturnsAll() {
	for i := 0; i < 3; i++ {
		require.NoError(suite.T(), suite.repo.Create(suite.ctx, suite.factory.Recipe(suite.ownerID)))
	}

	dtos, err := suite.service.SearchRecipes(suite.ctx, "")

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), dtos, 3)
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
