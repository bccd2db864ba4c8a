package apiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	aiapp "github.com/recipehub/api/internal/application/ai"
	bookmarkapp "github.com/recipehub/api/internal/application/bookmark"
	recipeapp "github.com/recipehub/api/internal/application/recipe"
	userapp "github.com/recipehub/api/internal/application/user"
	"github.com/recipehub/api/internal/infrastructure/config"
	"github.com/recipehub/api/internal/infrastructure/persistence/memory"
	"github.com/recipehub/api/internal/infrastructure/security"
	"github.com/recipehub/api/internal/ports/outbound"
)

// stubLLM returns a fixed generation result.
type stubLLM struct{}

func (stubLLM) GenerateRecipe(ctx context.Context, ingredients []string, prefs outbound.AIPreferences) (*outbound.AIRecipeResponse, error) {
	return &outbound.AIRecipeResponse{
		Title: "Generated Dish",
		Ingredients: []outbound.AIIngredient{
			{Quantity: 1, Unit: "cup", Description: "rice"},
		},
		Instructions: []string{"Cook the rice"},
		CookingTime:  20,
		Servings:     2,
	}, nil
}

func (stubLLM) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "https://images.example/dish.png", nil
}

func (stubLLM) SuggestSubstitutions(ctx context.Context, ingredient string) ([]outbound.Substitution, error) {
	return []outbound.Substitution{{Name: "applesauce", Ratio: "1:1"}}, nil
}

// stubCatalog serves one provider recipe under a fixed external id.
type stubCatalog struct{}

func (stubCatalog) Search(ctx context.Context, query string) ([]outbound.ProviderRecipe, error) {
	return []outbound.ProviderRecipe{{
		ExternalID:  "ext-cat-1",
		Title:       "Catalog Dish",
		CookingTime: 30,
	}}, nil
}

func (stubCatalog) GetByID(ctx context.Context, externalID string) (*outbound.ProviderRecipe, error) {
	if externalID != "ext-cat-1" {
		return nil, nil
	}
	return &outbound.ProviderRecipe{
		ExternalID:   "ext-cat-1",
		Title:        "Catalog Dish",
		Publisher:    "Catalog Kitchen",
		Description:  "From the external catalog",
		SourceURL:    "https://catalog.example/dish",
		Ingredients:  []outbound.AIIngredient{{Description: "noodles"}},
		Instructions: []string{"Boil"},
		CookingTime:  30,
		Servings:     2,
	}, nil
}

func serverConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "recipehub"
	cfg.App.Version = "test"
	cfg.Auth.JWTSecret = "integration-test-secret"
	cfg.Auth.JWTExpiration = time.Hour
	cfg.RateLimit.RequestsPerMin = 600
	cfg.RateLimit.BurstSize = 600
	return cfg
}

type APIServerTestSuite struct {
	suite.Suite
	server *APIServer
	seq    int
}

func (suite *APIServerTestSuite) SetupTest() {
	suite.seq = 0
	log := zap.NewNop()
	cfg := serverConfig()

	recipeRepo := memory.NewRecipeRepository()
	userRepo := memory.NewUserRepository()
	bookmarkRepo := memory.NewBookmarkRepository()

	auth := security.NewAuthService(cfg, log, nil)
	userSvc := userapp.NewUserService(userRepo, auth, log)
	recipeSvc := recipeapp.NewRecipeService(recipeRepo, log)
	bookmarkSvc := bookmarkapp.NewBookmarkService(bookmarkRepo, recipeRepo, stubCatalog{}, log)
	aiSvc := aiapp.NewAIService(stubLLM{}, stubCatalog{}, nil, log)

	suite.server = NewAPIServer(cfg, log, auth, userSvc, recipeSvc, bookmarkSvc, aiSvc)
}

func (suite *APIServerTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)
	return rec
}

func (suite *APIServerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerUser creates an account and returns its access token.
func (suite *APIServerTestSuite) registerUser() string {
	suite.seq++
	rec := suite.request(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": fmt.Sprintf("cook%d", suite.seq),
		"email":    fmt.Sprintf("cook%d@example.com", suite.seq),
		"password": "kitchen-secret",
	})
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())
	return suite.decode(rec)["token"].(string)
}

func (suite *APIServerTestSuite) TestHealth() {
	rec := suite.request(http.MethodGet, "/health", "", nil)

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "ok", suite.decode(rec)["status"])
}

func (suite *APIServerTestSuite) TestRegisterAndLogin() {
	token := suite.registerUser()
	assert.NotEmpty(suite.T(), token)

	rec := suite.request(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "cook1@example.com",
		"password": "kitchen-secret",
	})
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NotEmpty(suite.T(), suite.decode(rec)["token"])
}

func (suite *APIServerTestSuite) TestLogin_BadCredentials() {
	suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "cook1@example.com",
		"password": "wrong",
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *APIServerTestSuite) TestRegister_InvalidPayload() {
	rec := suite.request(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "x",
		"email":    "not-an-email",
		"password": "123",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *APIServerTestSuite) TestProfile_RequiresAuth() {
	rec := suite.request(http.MethodGet, "/api/v1/auth/profile", "", nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *APIServerTestSuite) TestProfile() {
	token := suite.registerUser()

	rec := suite.request(http.MethodGet, "/api/v1/auth/profile", token, nil)

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	user := suite.decode(rec)["user"].(map[string]interface{})
	assert.Equal(suite.T(), "cook1", user["username"])
}

func createRecipeBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "A test recipe",
		"ingredients": []map[string]interface{}{
			{"quantity": 2, "unit": "cups", "description": "flour"},
		},
		"instructions": []string{"Mix", "Bake"},
		"cooking_time": 30,
		"servings":     4,
		"source_url":   "https://example.com/recipe",
	}
}

func (suite *APIServerTestSuite) createRecipe(token, title string) string {
	rec := suite.request(http.MethodPost, "/api/v1/recipes", token, createRecipeBody(title))
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())
	data := suite.decode(rec)["data"].(map[string]interface{})
	return data["recipe"].(map[string]interface{})["id"].(string)
}

func (suite *APIServerTestSuite) TestRecipeLifecycle() {
	token := suite.registerUser()

	id := suite.createRecipe(token, "Sourdough Bread")

	// Public read without auth
	rec := suite.request(http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	// Update
	rec = suite.request(http.MethodPut, "/api/v1/recipes/"+id, token, map[string]interface{}{
		"title": "Sourdough Loaf",
	})
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Sourdough Loaf", data["recipe"].(map[string]interface{})["title"])

	// Delete
	rec = suite.request(http.MethodDelete, "/api/v1/recipes/"+id, token, nil)
	require.Equal(suite.T(), http.StatusNoContent, rec.Code)

	rec = suite.request(http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *APIServerTestSuite) TestRecipeUpdate_NonOwnerForbidden() {
	owner := suite.registerUser()
	id := suite.createRecipe(owner, "Owner Dish")

	intruder := suite.registerUser()
	rec := suite.request(http.MethodPut, "/api/v1/recipes/"+id, intruder, map[string]interface{}{
		"title": "Stolen Dish",
	})

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
}

func (suite *APIServerTestSuite) TestRecipeCreate_RequiresAuth() {
	rec := suite.request(http.MethodPost, "/api/v1/recipes", "", createRecipeBody("Nope"))

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *APIServerTestSuite) TestRecipeSearch() {
	token := suite.registerUser()
	suite.createRecipe(token, "Pasta Carbonara")
	suite.createRecipe(token, "Fruit Salad")

	rec := suite.request(http.MethodGet, "/api/v1/recipes?search=pasta", "", nil)

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	recipes := data["recipes"].([]interface{})
	require.Len(suite.T(), recipes, 1)
	assert.Equal(suite.T(), "Pasta Carbonara", recipes[0].(map[string]interface{})["title"])
}

func (suite *APIServerTestSuite) TestListOwnRecipes() {
	token := suite.registerUser()
	suite.createRecipe(token, "Mine")

	other := suite.registerUser()
	suite.createRecipe(other, "Theirs")

	rec := suite.request(http.MethodGet, "/api/v1/recipes/user", token, nil)

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	recipes := data["recipes"].([]interface{})
	require.Len(suite.T(), recipes, 1)
	assert.Equal(suite.T(), "Mine", recipes[0].(map[string]interface{})["title"])
}

func (suite *APIServerTestSuite) TestBookmarkLocalRecipe() {
	token := suite.registerUser()
	id := suite.createRecipe(token, "Bookmarkable")

	rec := suite.request(http.MethodPost, "/api/v1/bookmarks", token, map[string]interface{}{
		"recipe_id": id,
	})
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/bookmarks", token, nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	bookmarks := data["bookmarks"].([]interface{})
	require.Len(suite.T(), bookmarks, 1)
	recipe := bookmarks[0].(map[string]interface{})["recipe"].(map[string]interface{})
	assert.Equal(suite.T(), "Bookmarkable", recipe["title"])
}

func (suite *APIServerTestSuite) TestBookmarkDuplicate_Conflict() {
	token := suite.registerUser()
	id := suite.createRecipe(token, "Once Only")

	body := map[string]interface{}{"recipe_id": id}
	rec := suite.request(http.MethodPost, "/api/v1/bookmarks", token, body)
	require.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = suite.request(http.MethodPost, "/api/v1/bookmarks", token, body)
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *APIServerTestSuite) TestBookmarkExternalRecipe() {
	token := suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/bookmarks", token, map[string]interface{}{
		"external_id": "ext-cat-1",
	})
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())

	// The external recipe was mirrored locally and shows up in listings
	rec = suite.request(http.MethodGet, "/api/v1/bookmarks", token, nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	bookmarks := data["bookmarks"].([]interface{})
	require.Len(suite.T(), bookmarks, 1)
	recipe := bookmarks[0].(map[string]interface{})["recipe"].(map[string]interface{})
	assert.Equal(suite.T(), "Catalog Dish", recipe["title"])
	assert.Equal(suite.T(), "Catalog Kitchen", recipe["publisher"])
	assert.Equal(suite.T(), "ext-cat-1", recipe["external_id"])
}

func (suite *APIServerTestSuite) TestBookmarkExternalRecipe_UnknownID() {
	token := suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/bookmarks", token, map[string]interface{}{
		"external_id": "no-such-recipe",
	})

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *APIServerTestSuite) TestBookmarkAIGeneratedRecipe() {
	token := suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/bookmarks", token, map[string]interface{}{
		"isAIGenerated": true,
		"recipe": map[string]interface{}{
			"title": "Test",
			"ingredients": []map[string]interface{}{
				{"quantity": 1, "unit": "cup", "description": "rice"},
			},
			"instructions": []string{"Cook"},
			"cooking_time": 15,
			"servings":     2,
		},
	})
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/bookmarks", token, nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	bookmarks := data["bookmarks"].([]interface{})
	require.Len(suite.T(), bookmarks, 1)
	recipe := bookmarks[0].(map[string]interface{})["recipe"].(map[string]interface{})
	assert.Equal(suite.T(), "Test", recipe["title"])
	assert.Equal(suite.T(), true, recipe["isAIGenerated"])
}

func (suite *APIServerTestSuite) TestBookmarkRemoveAndCheck() {
	token := suite.registerUser()
	id := suite.createRecipe(token, "Transient")

	rec := suite.request(http.MethodPost, "/api/v1/bookmarks", token, map[string]interface{}{
		"recipe_id": id,
	})
	require.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = suite.request(http.MethodGet, "/api/v1/bookmarks/check/"+id, token, nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), true, suite.decode(rec)["bookmarked"])

	rec = suite.request(http.MethodDelete, "/api/v1/bookmarks/"+id, token, nil)
	require.Equal(suite.T(), http.StatusNoContent, rec.Code)

	rec = suite.request(http.MethodGet, "/api/v1/bookmarks/check/"+id, token, nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), false, suite.decode(rec)["bookmarked"])

	rec = suite.request(http.MethodDelete, "/api/v1/bookmarks/"+id, token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *APIServerTestSuite) TestGenerateRecipe() {
	token := suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/ai/generate-recipe", token, map[string]interface{}{
		"ingredients": []string{"rice", "beans"},
	})

	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	data := suite.decode(rec)["data"].(map[string]interface{})
	recipe := data["recipe"].(map[string]interface{})
	assert.Equal(suite.T(), "Generated Dish", recipe["title"])
	assert.Equal(suite.T(), true, recipe["isAIGenerated"])
}

func (suite *APIServerTestSuite) TestGenerateImage() {
	token := suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/ai/generate-image", token, map[string]interface{}{
		"recipeName": "Generated Dish",
	})

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "https://images.example/dish.png", suite.decode(rec)["imageUrl"])
}

func (suite *APIServerTestSuite) TestRecommendations() {
	token := suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/ai/recommendations", token, map[string]interface{}{
		"cuisineTypes": []string{"italian"},
	})

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	recommendations := data["recommendations"].([]interface{})
	require.Len(suite.T(), recommendations, 1)
}

func (suite *APIServerTestSuite) TestSubstitutions() {
	token := suite.registerUser()

	rec := suite.request(http.MethodPost, "/api/v1/ai/substitutions", token, map[string]interface{}{
		"ingredient": "egg",
	})

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]interface{})
	substitutions := data["substitutions"].([]interface{})
	require.Len(suite.T(), substitutions, 1)
}

func (suite *APIServerTestSuite) TestAIEndpoints_RequireAuth() {
	rec := suite.request(http.MethodPost, "/api/v1/ai/generate-recipe", "", map[string]interface{}{
		"ingredients": []string{"rice"},
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func TestAPIServerTestSuite(t *testing.T) {
	suite.Run(t, new(APIServerTestSuite))
}
