// Package openai provides recipe and image generation against an
// OpenAI-compatible chat completions API
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/recipehub/api/internal/infrastructure/config"
	"github.com/recipehub/api/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements the AIService interface using the OpenAI API
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	imageModel  string
	maxTokens   int
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new OpenAI client
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.AIService {
	return &Client{
		apiKey:      cfg.AI.APIKey,
		baseURL:     strings.TrimRight(cfg.AI.BaseURL, "/"),
		model:       cfg.AI.Model,
		imageModel:  cfg.AI.ImageModel,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
		client: &http.Client{
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		},
		logger: logger.Named("openai"),
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type imageGenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// generatedRecipe is the JSON shape the model is instructed to emit
type generatedRecipe struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	CookingTime  int                   `json:"cooking_time_minutes"`
	Servings     int                   `json:"servings"`
	Ingredients  []generatedIngredient `json:"ingredients"`
	Instructions []string              `json:"instructions"`
}

type generatedIngredient struct {
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

const systemPrompt = `You are an expert chef and recipe developer.

CRITICAL: Respond with ONLY a valid JSON object in the exact format below. No explanatory text, no markdown fences.

{
  "title": "Recipe Name",
  "description": "Brief description of the dish",
  "cooking_time_minutes": 30,
  "servings": 4,
  "ingredients": [
    {"quantity": 1.5, "unit": "cups", "description": "rice"}
  ],
  "instructions": [
    "Step 1: Detailed instruction",
    "Step 2: Next step"
  ]
}

Every ingredient must carry a positive quantity and a unit. Include at least one instruction step.`

// GenerateRecipe asks the model for a recipe built from the ingredients
func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string, prefs outbound.AIPreferences) (*outbound.AIRecipeResponse, error) {
	userPrompt := fmt.Sprintf("Create a recipe using these ingredients: %s", strings.Join(ingredients, ", "))
	if prefs.Cuisine != "" {
		userPrompt += fmt.Sprintf("\nCuisine: %s", prefs.Cuisine)
	}
	if len(prefs.Dietary) > 0 {
		userPrompt += fmt.Sprintf("\nDietary restrictions: %s", strings.Join(prefs.Dietary, ", "))
	}
	if prefs.MaxTime > 0 {
		userPrompt += fmt.Sprintf("\nMaximum cooking time: %d minutes", prefs.MaxTime)
	}
	if prefs.Servings > 0 {
		userPrompt += fmt.Sprintf("\nServings: %d", prefs.Servings)
	}

	content, err := c.chatCompletion(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	return parseRecipeResponse(content)
}

// GenerateImage produces one image for the prompt and returns its URL
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	reqBody := imageGenerationRequest{
		Model:  c.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}

	var imageResp imageGenerationResponse
	if err := c.post(ctx, "/images/generations", reqBody, &imageResp); err != nil {
		return "", err
	}
	if len(imageResp.Data) == 0 {
		return "", fmt.Errorf("no image returned")
	}
	return imageResp.Data[0].URL, nil
}

// substitutionTable maps common ingredients to replacement suggestions.
// Lookups are keyed on the lowercased ingredient; unknown ingredients
// get the default entry.
var substitutionTable = map[string][]outbound.Substitution{
	"egg": {
		{Name: "ground flaxseed + water", Ratio: "1 tbsp flax + 3 tbsp water per egg", Notes: "let sit 5 minutes to gel"},
		{Name: "unsweetened applesauce", Ratio: "1/4 cup per egg", Notes: "best in baked goods"},
		{Name: "mashed banana", Ratio: "1/4 cup per egg", Notes: "adds banana flavor"},
	},
	"milk": {
		{Name: "almond milk", Ratio: "1:1", Notes: "slightly nutty"},
		{Name: "oat milk", Ratio: "1:1", Notes: "closest texture to dairy"},
		{Name: "soy milk", Ratio: "1:1", Notes: "highest protein option"},
	},
	"butter": {
		{Name: "coconut oil", Ratio: "1:1", Notes: "use refined for neutral taste"},
		{Name: "olive oil", Ratio: "3/4 cup per 1 cup butter", Notes: "savory dishes"},
		{Name: "unsweetened applesauce", Ratio: "1/2 the amount", Notes: "reduces fat in baking"},
	},
	"flour": {
		{Name: "almond flour", Ratio: "1:1", Notes: "denser result, gluten free"},
		{Name: "oat flour", Ratio: "1:1 by weight", Notes: "blend rolled oats finely"},
		{Name: "rice flour", Ratio: "7/8 cup per 1 cup flour", Notes: "gluten free"},
	},
}

var defaultSubstitutions = []outbound.Substitution{
	{Name: "similar ingredient from the same family", Ratio: "1:1", Notes: "match texture and moisture"},
	{Name: "omit if not structural", Ratio: "", Notes: "taste and adjust seasoning"},
}

// SuggestSubstitutions returns replacement suggestions for an ingredient
func (c *Client) SuggestSubstitutions(ctx context.Context, ingredient string) ([]outbound.Substitution, error) {
	key := strings.ToLower(strings.TrimSpace(ingredient))
	if subs, ok := substitutionTable[key]; ok {
		return subs, nil
	}
	return defaultSubstitutions, nil
}

func (c *Client) chatCompletion(ctx context.Context, system, user string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var chatResp chatCompletionResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("Chat completion succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)
	return chatResp.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// parseRecipeResponse extracts the recipe JSON from the model output,
// tolerating stray text around the outermost braces.
func parseRecipeResponse(response string) (*outbound.AIRecipeResponse, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var parsed generatedRecipe
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
	}
	if parsed.Title == "" {
		return nil, fmt.Errorf("model returned a recipe without a title")
	}

	ingredients := make([]outbound.AIIngredient, 0, len(parsed.Ingredients))
	for _, ing := range parsed.Ingredients {
		ingredients = append(ingredients, outbound.AIIngredient{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}

	return &outbound.AIRecipeResponse{
		Title:        parsed.Title,
		Description:  parsed.Description,
		Ingredients:  ingredients,
		Instructions: parsed.Instructions,
		CookingTime:  parsed.CookingTime,
		Servings:     parsed.Servings,
	}, nil
}
