// Package ai provides the application layer for AI-backed features:
// recipe generation, image generation, recommendations and ingredient
// substitutions. Provider calls are pass-through with no retry; their
// failures surface as generic external service errors.
package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

const (
	recommendationLimit    = 5
	recommendationCacheTTL = 10 * time.Minute
)

// AIService implements the AI use cases
type AIService struct {
	llm      outbound.AIService
	provider outbound.RecipeProvider
	cache    outbound.CacheRepository
	logger   *zap.Logger
}

// NewAIService creates a new AI application service. The cache may be
// nil; recommendations are then computed on every call.
func NewAIService(
	llm outbound.AIService,
	provider outbound.RecipeProvider,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.AIService {
	return &AIService{
		llm:      llm,
		provider: provider,
		cache:    cache,
		logger:   logger.Named("ai-service"),
	}
}

// GenerateRecipe asks the model for a recipe built from the given
// ingredients. The result is ephemeral; it gets an id only when saved
// or bookmarked.
func (s *AIService) GenerateRecipe(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*inbound.GeneratedRecipeDTO, error) {
	if len(cmd.Ingredients) == 0 {
		return nil, errors.NewValidationError("at least one ingredient is required")
	}

	resp, err := s.llm.GenerateRecipe(ctx, cmd.Ingredients, outbound.AIPreferences{
		Cuisine:  cmd.Cuisine,
		Dietary:  cmd.Dietary,
		Servings: cmd.Servings,
	})
	if err != nil {
		s.logger.Error("Recipe generation failed", zap.Error(err))
		return nil, errors.NewExternalServiceError("AI service", err)
	}

	ingredients := make([]inbound.IngredientCommand, 0, len(resp.Ingredients))
	for _, ing := range resp.Ingredients {
		ingredients = append(ingredients, inbound.IngredientCommand{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}

	return &inbound.GeneratedRecipeDTO{
		Title:        resp.Title,
		Description:  resp.Description,
		Ingredients:  ingredients,
		Instructions: resp.Instructions,
		ImageURL:     resp.ImageURL,
		CookingTime:  resp.CookingTime,
		Servings:     resp.Servings,
		AIGenerated:  true,
	}, nil
}

// GenerateImage produces an image for the named recipe and returns its URL
func (s *AIService) GenerateImage(ctx context.Context, recipeName string) (string, error) {
	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return "", errors.NewValidationError("recipe name is required")
	}

	url, err := s.llm.GenerateImage(ctx, "A professional food photograph of "+recipeName)
	if err != nil {
		s.logger.Error("Image generation failed", zap.Error(err))
		return "", errors.NewExternalServiceError("AI service", err)
	}
	return url, nil
}

// Recommendations searches the external catalog with the user's cuisine
// preferences, filters by cooking time and returns the head of the
// result. No ranking model is applied.
func (s *AIService) Recommendations(ctx context.Context, cmd inbound.RecommendationsCommand) ([]inbound.RecommendationDTO, error) {
	cacheKey := recommendationsCacheKey(cmd)
	if cached := s.cachedRecommendations(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	query := strings.Join(cmd.CuisineTypes, " ")
	if query == "" && len(cmd.DietaryRestrictions) > 0 {
		query = strings.Join(cmd.DietaryRestrictions, " ")
	}
	if query == "" {
		query = "dinner"
	}

	results, err := s.provider.Search(ctx, query)
	if err != nil {
		s.logger.Error("Provider search failed", zap.Error(err))
		return nil, errors.NewExternalServiceError("recipe provider", err)
	}

	recommendations := make([]inbound.RecommendationDTO, 0, recommendationLimit)
	for _, r := range results {
		if cmd.CookingTime > 0 && r.CookingTime > cmd.CookingTime {
			continue
		}
		recommendations = append(recommendations, inbound.RecommendationDTO{
			ExternalID:  r.ExternalID,
			Title:       r.Title,
			Publisher:   r.Publisher,
			ImageURL:    r.ImageURL,
			SourceURL:   r.SourceURL,
			CookingTime: r.CookingTime,
		})
		if len(recommendations) == recommendationLimit {
			break
		}
	}

	s.storeRecommendations(ctx, cacheKey, recommendations)
	return recommendations, nil
}

// Substitutions returns replacement suggestions for an ingredient
func (s *AIService) Substitutions(ctx context.Context, ingredient string) ([]inbound.SubstitutionDTO, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return nil, errors.NewValidationError("ingredient is required")
	}

	subs, err := s.llm.SuggestSubstitutions(ctx, ingredient)
	if err != nil {
		s.logger.Error("Substitution lookup failed", zap.Error(err))
		return nil, errors.NewExternalServiceError("AI service", err)
	}

	dtos := make([]inbound.SubstitutionDTO, 0, len(subs))
	for _, sub := range subs {
		dtos = append(dtos, inbound.SubstitutionDTO{
			Name:  sub.Name,
			Ratio: sub.Ratio,
			Notes: sub.Notes,
		})
	}
	return dtos, nil
}

func recommendationsCacheKey(cmd inbound.RecommendationsCommand) string {
	raw, _ := json.Marshal(cmd)
	return "recommendations:" + string(raw)
}

func (s *AIService) cachedRecommendations(ctx context.Context, key string) []inbound.RecommendationDTO {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil
	}
	var recommendations []inbound.RecommendationDTO
	if err := json.Unmarshal(raw, &recommendations); err != nil {
		return nil
	}
	return recommendations
}

func (s *AIService) storeRecommendations(ctx context.Context, key string, recommendations []inbound.RecommendationDTO) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(recommendations)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, recommendationCacheTTL); err != nil {
		s.logger.Warn("Failed to cache recommendations", zap.Error(err))
	}
}
