package gorm_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	gormLogger "gorm.io/gorm/logger"

	"github.com/recipehub/api/internal/domain/bookmark"
	domain "github.com/recipehub/api/internal/domain/recipe"
	gormRepo "github.com/recipehub/api/internal/infrastructure/persistence/gorm"
	"github.com/recipehub/api/internal/infrastructure/persistence/sqlite"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/recipehub/api/test/testutils"
)

type GormRepositoryTestSuite struct {
	suite.Suite
	recipes   outbound.RecipeRepository
	bookmarks outbound.BookmarkRepository
	factory   *testutils.RecipeFactory
	ctx       context.Context
}

func (suite *GormRepositoryTestSuite) SetupTest() {
	db, err := sqlite.SetupDatabase(":memory:", gormLogger.Silent)
	require.NoError(suite.T(), err)

	suite.recipes = gormRepo.NewRecipeRepository(db)
	suite.bookmarks = gormRepo.NewBookmarkRepository(db)
	suite.factory = testutils.NewRecipeFactory(99)
	suite.ctx = context.Background()
}

func (suite *GormRepositoryTestSuite) TestRecipeRoundTrip() {
	entity := suite.factory.Recipe(uuid.New())

	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, entity))

	stored, err := suite.recipes.FindByID(suite.ctx, entity.ID())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), entity.Title(), stored.Title())
	assert.Equal(suite.T(), entity.Ingredients(), stored.Ingredients())
	assert.Equal(suite.T(), entity.Instructions(), stored.Instructions())
}

func (suite *GormRepositoryTestSuite) TestRecipeFindByID_NotFound() {
	_, err := suite.recipes.FindByID(suite.ctx, uuid.New())

	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
}

func (suite *GormRepositoryTestSuite) TestRecipeDelete_NotFound() {
	err := suite.recipes.Delete(suite.ctx, uuid.New())

	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
}

func (suite *GormRepositoryTestSuite) TestRecipeSearch_CaseInsensitive() {
	entity, err := domain.NewRecipe(domain.Draft{
		Title:        "Miso Ramen",
		Description:  "Rich broth with noodles",
		Instructions: []string{"Simmer"},
		SourceURL:    "https://example.com/ramen",
	}, uuid.New())
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, entity))

	results, total, err := suite.recipes.Search(suite.ctx, outbound.SearchCriteria{
		Query: "RAMEN",
		Limit: 10,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
	require.Len(suite.T(), results, 1)
	assert.Equal(suite.T(), "Miso Ramen", results[0].Title())
}

func (suite *GormRepositoryTestSuite) TestRecipeFindByExternalID() {
	draft := suite.factory.RegularDraft()
	draft.ExternalID = "ext-gorm-1"
	entity, err := domain.NewRecipe(draft, uuid.New())
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, entity))

	stored, err := suite.recipes.FindByExternalID(suite.ctx, "ext-gorm-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), entity.ID(), stored.ID())
}

func (suite *GormRepositoryTestSuite) TestBookmarkDuplicate_MapsUniqueViolation() {
	entity := suite.factory.Recipe(uuid.New())
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, entity))
	userID := uuid.New()

	require.NoError(suite.T(), suite.bookmarks.Create(suite.ctx, bookmark.New(userID, entity.ID())))

	err := suite.bookmarks.Create(suite.ctx, bookmark.New(userID, entity.ID()))
	assert.ErrorIs(suite.T(), err, bookmark.ErrAlreadyBookmarked)

	// The same recipe can still be bookmarked by someone else
	err = suite.bookmarks.Create(suite.ctx, bookmark.New(uuid.New(), entity.ID()))
	assert.NoError(suite.T(), err)
}

func (suite *GormRepositoryTestSuite) TestBookmarkDelete_Absent() {
	err := suite.bookmarks.Delete(suite.ctx, uuid.New(), uuid.New())

	assert.ErrorIs(suite.T(), err, bookmark.ErrNotFound)
}

func (suite *GormRepositoryTestSuite) TestBookmarkExistsAndList() {
	entity := suite.factory.Recipe(uuid.New())
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, entity))
	userID := uuid.New()

	require.NoError(suite.T(), suite.bookmarks.Create(suite.ctx, bookmark.New(userID, entity.ID())))

	exists, err := suite.bookmarks.Exists(suite.ctx, userID, entity.ID())
	require.NoError(suite.T(), err)
	assert.True(suite.T(), exists)

	listed, err := suite.bookmarks.FindByUserID(suite.ctx, userID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), listed, 1)
	assert.Equal(suite.T(), entity.ID(), listed[0].RecipeID())
}

func TestGormRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormRepositoryTestSuite))
}
