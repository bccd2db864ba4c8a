// Package bookmark provides the application layer for saving recipes,
// including reconciliation of local, external and AI-generated recipe
// references to durable local ids.
package bookmark

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	recipeapp "github.com/recipehub/api/internal/application/recipe"
	"github.com/recipehub/api/internal/domain/bookmark"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/ports/inbound"
	"github.com/recipehub/api/internal/ports/outbound"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

// BookmarkService implements the bookmark use cases
type BookmarkService struct {
	bookmarkRepo outbound.BookmarkRepository
	recipeRepo   outbound.RecipeRepository
	provider     outbound.RecipeProvider
	logger       *zap.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(
	bookmarkRepo outbound.BookmarkRepository,
	recipeRepo outbound.RecipeRepository,
	provider outbound.RecipeProvider,
	logger *zap.Logger,
) inbound.BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		recipeRepo:   recipeRepo,
		provider:     provider,
		logger:       logger.Named("bookmark-service"),
	}
}

// Resolve reconciles a recipe reference to a single durable local id.
// A reference that already carries a local id is a pure read. External
// and AI-generated references are persisted on first resolution and the
// reference is stamped with the new id, so resolving the same reference
// again hits the read path and never creates a second record.
func (s *BookmarkService) Resolve(ctx context.Context, userID uuid.UUID, ref *recipe.Ref) (uuid.UUID, error) {
	if ref == nil {
		return uuid.Nil, errors.NewBadRequestError("recipe reference is required")
	}
	if err := ref.Validate(); err != nil {
		return uuid.Nil, errors.NewValidationError(err.Error())
	}

	if ref.Resolved() {
		return s.verifyLocal(ctx, ref.LocalID)
	}

	switch ref.Kind {
	case recipe.RefLocal:
		return s.verifyLocal(ctx, ref.LocalID)
	case recipe.RefAIGenerated:
		return s.resolveAIGenerated(ctx, userID, ref)
	case recipe.RefExternal:
		return s.resolveExternal(ctx, userID, ref)
	default:
		return uuid.Nil, errors.NewValidationError(recipe.ErrEmptyRef.Error())
	}
}

func (s *BookmarkService) verifyLocal(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if _, err := s.recipeRepo.FindByID(ctx, id); err != nil {
		if stderrors.Is(err, recipe.ErrNotFound) {
			return uuid.Nil, errors.NewRecipeNotFoundError(id.String())
		}
		return uuid.Nil, errors.NewDatabaseError("find recipe", err)
	}
	return id, nil
}

func (s *BookmarkService) resolveAIGenerated(ctx context.Context, userID uuid.UUID, ref *recipe.Ref) (uuid.UUID, error) {
	draft := *ref.Draft
	draft.AIGenerated = true

	entity, err := recipe.NewRecipe(draft, userID)
	if err != nil {
		return uuid.Nil, errors.NewValidationError(err.Error())
	}
	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return uuid.Nil, errors.NewDatabaseError("persist AI recipe", err)
	}

	ref.LocalID = entity.ID()
	s.logger.Info("Persisted AI-generated recipe",
		zap.String("recipe_id", entity.ID().String()),
		zap.String("user_id", userID.String()),
	)
	return entity.ID(), nil
}

func (s *BookmarkService) resolveExternal(ctx context.Context, userID uuid.UUID, ref *recipe.Ref) (uuid.UUID, error) {
	detail, err := s.provider.GetByID(ctx, ref.ExternalID)
	if err != nil {
		return uuid.Nil, errors.NewExternalServiceError("recipe provider", err)
	}
	if detail == nil {
		return uuid.Nil, errors.NewExternalRecipeNotFoundError(ref.ExternalID)
	}

	ingredients := make([]recipe.Ingredient, 0, len(detail.Ingredients))
	for _, ing := range detail.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}

	draft := recipe.Draft{
		Title:        detail.Title,
		Description:  detail.Description,
		Publisher:    detail.Publisher,
		Ingredients:  ingredients,
		Instructions: detail.Instructions,
		ImageURL:     detail.ImageURL,
		CookingTime:  detail.CookingTime,
		Servings:     detail.Servings,
		SourceURL:    detail.SourceURL,
		ExternalID:   detail.ExternalID,
	}

	entity, err := recipe.NewRecipe(draft, userID)
	if err != nil {
		return uuid.Nil, errors.NewValidationError(err.Error())
	}
	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return uuid.Nil, errors.NewDatabaseError("persist external recipe", err)
	}

	ref.LocalID = entity.ID()
	s.logger.Info("Mirrored external recipe",
		zap.String("recipe_id", entity.ID().String()),
		zap.String("external_id", detail.ExternalID),
	)
	return entity.ID(), nil
}

// AddBookmark saves a resolved local recipe for the user. A duplicate
// pair returns a conflict; the store's unique index decides races.
func (s *BookmarkService) AddBookmark(ctx context.Context, userID, recipeID uuid.UUID) (*inbound.BookmarkDTO, error) {
	if _, err := s.verifyLocal(ctx, recipeID); err != nil {
		return nil, err
	}

	entity := bookmark.New(userID, recipeID)
	if err := s.bookmarkRepo.Create(ctx, entity); err != nil {
		if stderrors.Is(err, bookmark.ErrAlreadyBookmarked) {
			return nil, errors.NewBookmarkAlreadyExistsError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("create bookmark", err)
	}

	s.logger.Info("Bookmark added",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
	)

	return &inbound.BookmarkDTO{
		RecipeID:  entity.RecipeID(),
		CreatedAt: entity.CreatedAt().Format(time.RFC3339),
	}, nil
}

// RemoveBookmark deletes exactly one bookmark. Removing an absent
// bookmark is NotFound, never silent.
func (s *BookmarkService) RemoveBookmark(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.bookmarkRepo.Delete(ctx, userID, recipeID); err != nil {
		if stderrors.Is(err, bookmark.ErrNotFound) {
			return errors.NewBookmarkNotFoundError(recipeID.String())
		}
		return errors.NewDatabaseError("delete bookmark", err)
	}

	s.logger.Info("Bookmark removed",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
	)
	return nil
}

// ListBookmarks returns the user's bookmarks joined with their recipes.
// Bookmarks whose recipe no longer exists are dropped from the result.
func (s *BookmarkService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]inbound.BookmarkDTO, error) {
	bookmarks, err := s.bookmarkRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list bookmarks", err)
	}
	if len(bookmarks) == 0 {
		return []inbound.BookmarkDTO{}, nil
	}

	ids := make([]uuid.UUID, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.RecipeID())
	}

	recipes, err := s.recipeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("load bookmarked recipes", err)
	}
	byID := make(map[uuid.UUID]*recipe.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID()] = r
	}

	dtos := make([]inbound.BookmarkDTO, 0, len(bookmarks))
	for _, b := range bookmarks {
		entity, ok := byID[b.RecipeID()]
		if !ok {
			s.logger.Warn("Dropping bookmark with missing recipe",
				zap.String("recipe_id", b.RecipeID().String()),
			)
			continue
		}
		dto := recipeapp.EntityToDTO(entity)
		dtos = append(dtos, inbound.BookmarkDTO{
			RecipeID:  b.RecipeID(),
			Recipe:    &dto,
			CreatedAt: b.CreatedAt().Format(time.RFC3339),
		})
	}
	return dtos, nil
}

// IsBookmarked reports whether the pair exists. Pure read, never
// resolves or persists anything.
func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	exists, err := s.bookmarkRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return false, errors.NewDatabaseError("check bookmark", err)
	}
	return exists, nil
}
