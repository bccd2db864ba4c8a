package handlers

import (
	"net/http"

	"github.com/recipehub/api/internal/ports/inbound"
	"go.uber.org/zap"
)

// AIAPIHandlers handles AI feature API requests
type AIAPIHandlers struct {
	aiService inbound.AIService
	logger    *zap.Logger
}

// NewAIAPIHandlers creates a new AI API handlers instance
func NewAIAPIHandlers(aiService inbound.AIService, logger *zap.Logger) *AIAPIHandlers {
	return &AIAPIHandlers{
		aiService: aiService,
		logger:    logger.Named("ai-api"),
	}
}

type generateImageRequest struct {
	RecipeName string `json:"recipeName" validate:"required"`
}

type substitutionsRequest struct {
	Ingredient string `json:"ingredient" validate:"required"`
}

// GenerateRecipe handles POST /api/v1/ai/generate-recipe
func (h *AIAPIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.GenerateRecipeCommand
	if appErr := decodeAndValidate(r, &cmd); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	generated, err := h.aiService.GenerateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"recipe": generated},
	})
}

// GenerateImage handles POST /api/v1/ai/generate-image
func (h *AIAPIHandlers) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	imageURL, err := h.aiService.GenerateImage(r.Context(), req.RecipeName)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"imageUrl": imageURL})
}

// Recommendations handles POST /api/v1/ai/recommendations
func (h *AIAPIHandlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RecommendationsCommand
	if appErr := decodeAndValidate(r, &cmd); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	recommendations, err := h.aiService.Recommendations(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"recommendations": recommendations},
	})
}

// Substitutions handles POST /api/v1/ai/substitutions
func (h *AIAPIHandlers) Substitutions(w http.ResponseWriter, r *http.Request) {
	var req substitutionsRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		writeError(w, h.logger, appErr)
		return
	}

	substitutions, err := h.aiService.Substitutions(r.Context(), req.Ingredient)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"substitutions": substitutions},
	})
}
