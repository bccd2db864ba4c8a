// Package forkify provides the external recipe catalog client
package forkify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/recipehub/api/internal/infrastructure/config"
	"github.com/recipehub/api/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements the RecipeProvider interface against the Forkify API
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new provider client
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.RecipeProvider {
	return &Client{
		baseURL: strings.TrimRight(cfg.Provider.BaseURL, "/"),
		apiKey:  cfg.Provider.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		},
		logger: logger.Named("forkify"),
	}
}

type searchResponse struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Data    struct {
		Recipes []searchRecipe `json:"recipes"`
	} `json:"data"`
}

type searchRecipe struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"image_url"`
}

type detailResponse struct {
	Status string `json:"status"`
	Data   struct {
		Recipe detailRecipe `json:"recipe"`
	} `json:"data"`
}

type detailRecipe struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Publisher   string             `json:"publisher"`
	SourceURL   string             `json:"source_url"`
	ImageURL    string             `json:"image_url"`
	Servings    int                `json:"servings"`
	CookingTime int                `json:"cooking_time"`
	Ingredients []detailIngredient `json:"ingredients"`
}

type detailIngredient struct {
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// Search queries the catalog by free text
func (c *Client) Search(ctx context.Context, query string) ([]outbound.ProviderRecipe, error) {
	endpoint := fmt.Sprintf("%s/recipes?search=%s", c.baseURL, url.QueryEscape(query))
	if c.apiKey != "" {
		endpoint += "&key=" + url.QueryEscape(c.apiKey)
	}

	var resp searchResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	recipes := make([]outbound.ProviderRecipe, 0, len(resp.Data.Recipes))
	for _, r := range resp.Data.Recipes {
		recipes = append(recipes, outbound.ProviderRecipe{
			ExternalID: r.ID,
			Title:      r.Title,
			Publisher:  r.Publisher,
			ImageURL:   r.ImageURL,
		})
	}

	c.logger.Debug("Provider search completed",
		zap.String("query", query),
		zap.Int("results", len(recipes)),
	)
	return recipes, nil
}

// GetByID fetches full recipe detail by external id. A missing recipe
// returns (nil, nil).
func (c *Client) GetByID(ctx context.Context, externalID string) (*outbound.ProviderRecipe, error) {
	endpoint := fmt.Sprintf("%s/recipes/%s", c.baseURL, url.PathEscape(externalID))
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	var resp detailResponse
	err := c.get(ctx, endpoint, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	r := resp.Data.Recipe
	ingredients := make([]outbound.AIIngredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, outbound.AIIngredient{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}

	// Forkify carries no description; mirrored records still need one
	description := "From " + r.Publisher
	if r.Publisher == "" {
		description = r.Title
	}

	return &outbound.ProviderRecipe{
		ExternalID:  r.ID,
		Title:       r.Title,
		Publisher:   r.Publisher,
		Description: description,
		ImageURL:    r.ImageURL,
		SourceURL:   r.SourceURL,
		CookingTime: r.CookingTime,
		Servings:    r.Servings,
		Ingredients: ingredients,
	}, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.code, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode, body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
