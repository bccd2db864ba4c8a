package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/infrastructure/http/middleware"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

// BookmarkAPIHandlers handles bookmark API requests
type BookmarkAPIHandlers struct {
	bookmarkService inbound.BookmarkService
	logger          *zap.Logger
}

// NewBookmarkAPIHandlers creates a new bookmark API handlers instance
func NewBookmarkAPIHandlers(bookmarkService inbound.BookmarkService, logger *zap.Logger) *BookmarkAPIHandlers {
	return &BookmarkAPIHandlers{
		bookmarkService: bookmarkService,
		logger:          logger.Named("bookmark-api"),
	}
}

// addBookmarkRequest accepts any of the three reference shapes: a local
// recipe id, an external provider id, or an inline AI-generated recipe.
type addBookmarkRequest struct {
	RecipeID    string               `json:"recipe_id"`
	ExternalID  string               `json:"external_id"`
	Recipe      *createRecipeRequest `json:"recipe"`
	AIGenerated bool                 `json:"isAIGenerated"`
}

// Add handles POST /api/v1/bookmarks. The reference is resolved to a
// local id first, then bookmarked; the two steps stay explicit.
func (h *BookmarkAPIHandlers) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	var req addBookmarkRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	ref, appErr := refFromRequest(req)
	if appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	recipeID, err := h.bookmarkService.Resolve(r.Context(), userID, ref)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	bookmarkDTO, err := h.bookmarkService.AddBookmark(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": map[string]interface{}{"bookmark": bookmarkDTO},
	})
}

// Remove handles DELETE /api/v1/bookmarks/{recipeId}
func (h *BookmarkAPIHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipeID, appErr := parseIDParam(r, "recipeId")
	if appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	if err := h.bookmarkService.RemoveBookmark(r.Context(), userID, recipeID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/bookmarks
func (h *BookmarkAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	bookmarks, err := h.bookmarkService.ListBookmarks(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"bookmarks": bookmarks},
	})
}

// Check handles GET /api/v1/bookmarks/check/{recipeId}. Pure read; an
// unknown id simply reports false.
func (h *BookmarkAPIHandlers) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError(""))
		return
	}

	recipeID, appErr := parseIDParam(r, "recipeId")
	if appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	bookmarked, err := h.bookmarkService.IsBookmarked(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarked": bookmarked})
}

func refFromRequest(req addBookmarkRequest) (*recipe.Ref, *errors.AppError) {
	switch {
	case req.RecipeID != "":
		id, err := uuid.Parse(req.RecipeID)
		if err != nil {
			return nil, errors.NewBadRequestError("Invalid recipe id")
		}
		return recipe.LocalRef(id), nil
	case req.ExternalID != "":
		return recipe.ExternalRef(req.ExternalID), nil
	case req.Recipe != nil && req.AIGenerated:
		ingredients := make([]recipe.Ingredient, 0, len(req.Recipe.Ingredients))
		for _, ing := range req.Recipe.Ingredients {
			ingredients = append(ingredients, recipe.Ingredient{
				Quantity:    ing.Quantity,
				Unit:        ing.Unit,
				Description: ing.Description,
			})
		}
		return recipe.AIGeneratedRef(&recipe.Draft{
			Title:        req.Recipe.Title,
			Description:  req.Recipe.Description,
			Ingredients:  ingredients,
			Instructions: req.Recipe.Instructions,
			ImageURL:     req.Recipe.ImageURL,
			CookingTime:  req.Recipe.CookingTime,
			Servings:     req.Recipe.Servings,
			AIGenerated:  true,
		}), nil
	default:
		return nil, errors.NewBadRequestError("Request must carry recipe_id, external_id, or an AI-generated recipe")
	}
}
