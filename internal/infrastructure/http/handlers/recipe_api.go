package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/recipehub/api/internal/infrastructure/http/middleware"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

// RecipeAPIHandlers handles recipe API requests
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		logger:        logger.Named("recipe-api"),
	}
}

type createRecipeRequest struct {
	Title        string                      `json:"title" validate:"required,max=200"`
	Description  string                      `json:"description"`
	Publisher    string                      `json:"publisher"`
	Ingredients  []inbound.IngredientCommand `json:"ingredients"`
	Instructions []string                    `json:"instructions"`
	ImageURL     string                      `json:"image_url"`
	CookingTime  int                         `json:"cooking_time"`
	Servings     int                         `json:"servings"`
	AIGenerated  bool                        `json:"isAIGenerated"`
	SourceURL    string                      `json:"source_url"`
}

type updateRecipeRequest struct {
	Title        *string                     `json:"title"`
	Description  *string                     `json:"description"`
	Publisher    *string                     `json:"publisher"`
	Ingredients  []inbound.IngredientCommand `json:"ingredients"`
	Instructions []string                    `json:"instructions"`
	ImageURL     *string                     `json:"image_url"`
	CookingTime  *int                        `json:"cooking_time"`
	Servings     *int                        `json:"servings"`
	SourceURL    *string                     `json:"source_url"`
}

// Search handles GET /api/v1/recipes?search=
func (h *RecipeAPIHandlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	recipes, err := h.recipeService.SearchRecipes(r.Context(), query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"recipes": recipes},
	})
}

// GetByID handles GET /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	recipeID, appErr := parseIDParam(r, "id")
	if appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	recipe, err := h.recipeService.GetRecipeByID(r.Context(), recipeID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"recipe": recipe},
	})
}

// Create handles POST /api/v1/recipes
func (h *RecipeAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	var req createRecipeRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		CreatorID:    userID,
		Title:        req.Title,
		Description:  req.Description,
		Publisher:    req.Publisher,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		CookingTime:  req.CookingTime,
		Servings:     req.Servings,
		AIGenerated:  req.AIGenerated,
		SourceURL:    req.SourceURL,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": map[string]interface{}{"recipe": recipe},
	})
}

// Update handles PUT /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipeID, appErr := parseIDParam(r, "id")
	if appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	var req updateRecipeRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:     recipeID,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Publisher:    req.Publisher,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		CookingTime:  req.CookingTime,
		Servings:     req.Servings,
		SourceURL:    req.SourceURL,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"recipe": recipe},
	})
}

// Delete handles DELETE /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipeID, appErr := parseIDParam(r, "id")
	if appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), recipeID, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOwn handles GET /api/v1/recipes/user
func (h *RecipeAPIHandlers) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipes, err := h.recipeService.GetRecipesByUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"recipes": recipes},
	})
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, *errors.AppError) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("Invalid recipe id")
	}
	return id, nil
}
