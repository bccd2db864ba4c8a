// Package recipe contains the core domain logic for recipe management.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe is the aggregate root for a locally stored recipe. A recipe is
// created by direct user submission, by saving an AI generation, or
// implicitly when an externally sourced recipe is bookmarked for the
// first time.
type Recipe struct {
	id          uuid.UUID
	title       string
	description string
	publisher   string
	creatorID   uuid.UUID

	ingredients  []Ingredient
	instructions []string

	imageURL    string
	cookingTime int // minutes
	servings    int

	aiGenerated bool
	sourceURL   string
	externalID  string

	createdAt time.Time
	updatedAt time.Time
}

// Draft carries the raw fields of a recipe before validation. Handlers and
// the AI client build drafts; NewRecipe turns them into valid entities.
type Draft struct {
	Title        string
	Description  string
	Publisher    string
	Ingredients  []Ingredient
	Instructions []string
	ImageURL     string
	CookingTime  int
	Servings     int
	AIGenerated  bool
	SourceURL    string
	ExternalID   string
}

// NewRecipe validates a draft and creates a new Recipe owned by creatorID.
// Validation branches on the AI-generated flag: AI recipes may omit
// description, image and source URL but must carry fully measured
// ingredients and at least one instruction; regular recipes require
// description and source URL while tolerating free-text ingredient data.
func NewRecipe(draft Draft, creatorID uuid.UUID) (*Recipe, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Recipe{
		id:           uuid.New(),
		title:        strings.TrimSpace(draft.Title),
		description:  draft.Description,
		publisher:    draft.Publisher,
		creatorID:    creatorID,
		ingredients:  append([]Ingredient(nil), draft.Ingredients...),
		instructions: append([]string(nil), draft.Instructions...),
		imageURL:     draft.ImageURL,
		cookingTime:  draft.CookingTime,
		servings:     draft.Servings,
		aiGenerated:  draft.AIGenerated,
		sourceURL:    draft.SourceURL,
		externalID:   draft.ExternalID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstitute rebuilds a Recipe from persisted state. It bypasses draft
// validation: stored records were validated on the way in.
func Reconstitute(
	id uuid.UUID,
	title, description, publisher string,
	creatorID uuid.UUID,
	ingredients []Ingredient,
	instructions []string,
	imageURL string,
	cookingTime, servings int,
	aiGenerated bool,
	sourceURL, externalID string,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:           id,
		title:        title,
		description:  description,
		publisher:    publisher,
		creatorID:    creatorID,
		ingredients:  ingredients,
		instructions: instructions,
		imageURL:     imageURL,
		cookingTime:  cookingTime,
		servings:     servings,
		aiGenerated:  aiGenerated,
		sourceURL:    sourceURL,
		externalID:   externalID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the recipe's unique identifier.
func (r *Recipe) ID() uuid.UUID { return r.id }

// Title returns the recipe's title.
func (r *Recipe) Title() string { return r.title }

// Description returns the recipe's description.
func (r *Recipe) Description() string { return r.description }

// Publisher returns the name of the site the recipe came from, if any.
func (r *Recipe) Publisher() string { return r.publisher }

// CreatorID returns the id of the user who owns the recipe.
func (r *Recipe) CreatorID() uuid.UUID { return r.creatorID }

// Ingredients returns the ordered ingredient list.
func (r *Recipe) Ingredients() []Ingredient { return r.ingredients }

// Instructions returns the ordered instruction steps.
func (r *Recipe) Instructions() []string { return r.instructions }

// ImageURL returns the recipe's image reference.
func (r *Recipe) ImageURL() string { return r.imageURL }

// CookingTime returns the cooking time in minutes.
func (r *Recipe) CookingTime() int { return r.cookingTime }

// Servings returns the servings count.
func (r *Recipe) Servings() int { return r.servings }

// IsAIGenerated reports whether the recipe was synthesized by the LLM.
func (r *Recipe) IsAIGenerated() bool { return r.aiGenerated }

// SourceURL returns the canonical source of the recipe, if any.
func (r *Recipe) SourceURL() string { return r.sourceURL }

// ExternalID returns the external provider id the recipe was mirrored
// from, or empty for locally authored recipes. Provenance only; it does
// not participate in identity.
func (r *Recipe) ExternalID() string { return r.externalID }

// CreatedAt returns when the recipe was created.
func (r *Recipe) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the recipe was last updated.
func (r *Recipe) UpdatedAt() time.Time { return r.updatedAt }

// IsOwnedBy reports whether userID may mutate this recipe.
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool { return r.creatorID == userID }

// Patch holds optional replacement values for an update. Nil fields are
// left untouched.
type Patch struct {
	Title        *string
	Description  *string
	Publisher    *string
	Ingredients  []Ingredient
	Instructions []string
	ImageURL     *string
	CookingTime  *int
	Servings     *int
	SourceURL    *string
}

// Apply merges a partial patch into the recipe and re-validates the
// result under the rules matching the recipe's AI-generated flag.
func (r *Recipe) Apply(patch Patch) error {
	next := Draft{
		Title:        r.title,
		Description:  r.description,
		Publisher:    r.publisher,
		Ingredients:  r.ingredients,
		Instructions: r.instructions,
		ImageURL:     r.imageURL,
		CookingTime:  r.cookingTime,
		Servings:     r.servings,
		AIGenerated:  r.aiGenerated,
		SourceURL:    r.sourceURL,
	}

	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Publisher != nil {
		next.Publisher = *patch.Publisher
	}
	if patch.Ingredients != nil {
		next.Ingredients = patch.Ingredients
	}
	if patch.Instructions != nil {
		next.Instructions = patch.Instructions
	}
	if patch.ImageURL != nil {
		next.ImageURL = *patch.ImageURL
	}
	if patch.CookingTime != nil {
		next.CookingTime = *patch.CookingTime
	}
	if patch.Servings != nil {
		next.Servings = *patch.Servings
	}
	if patch.SourceURL != nil {
		next.SourceURL = *patch.SourceURL
	}

	if err := validateDraft(next); err != nil {
		return err
	}

	r.title = strings.TrimSpace(next.Title)
	r.description = next.Description
	r.publisher = next.Publisher
	r.ingredients = next.Ingredients
	r.instructions = next.Instructions
	r.imageURL = next.ImageURL
	r.cookingTime = next.CookingTime
	r.servings = next.Servings
	r.sourceURL = next.SourceURL
	r.updatedAt = time.Now()

	return nil
}

func validateDraft(draft Draft) error {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	if len(draft.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	if draft.CookingTime < 0 {
		return ErrInvalidCookingTime
	}
	if draft.Servings < 0 {
		return ErrInvalidServings
	}

	if draft.AIGenerated {
		return validateAIDraft(draft)
	}
	return validateRegularDraft(draft)
}

// AI-generated recipes come straight out of the LLM: no description,
// image or source URL to point at, but the measurements must be usable.
func validateAIDraft(draft Draft) error {
	if len(draft.Ingredients) == 0 {
		return ErrNoIngredients
	}
	for _, ing := range draft.Ingredients {
		if err := ing.ValidateMeasured(); err != nil {
			return err
		}
	}
	if !hasInstruction(draft.Instructions) {
		return ErrNoInstructions
	}
	return nil
}

// Regular recipes describe themselves: description and source URL are
// required, while provider ingredient data may be free text.
func validateRegularDraft(draft Draft) error {
	if strings.TrimSpace(draft.Description) == "" {
		return ErrDescriptionRequired
	}
	if strings.TrimSpace(draft.SourceURL) == "" {
		return ErrSourceURLRequired
	}
	for _, ing := range draft.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func hasInstruction(instructions []string) bool {
	for _, step := range instructions {
		if strings.TrimSpace(step) != "" {
			return true
		}
	}
	return false
}
