// Package memory provides in-memory repository implementations used by
// tests and the development server.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/recipehub/api/internal/domain/bookmark"
	"github.com/recipehub/api/internal/domain/recipe"
	"github.com/recipehub/api/internal/domain/user"
	"github.com/recipehub/api/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository in memory
type RecipeRepository struct {
	mutex   sync.RWMutex
	recipes map[uuid.UUID]*recipe.Recipe
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() outbound.RecipeRepository {
	return &RecipeRepository{recipes: make(map[uuid.UUID]*recipe.Recipe)}
}

// Create stores a new recipe
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.recipes[entity.ID()] = entity
	return nil
}

// Update replaces a stored recipe
func (r *RecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.recipes[entity.ID()]; !ok {
		return recipe.ErrNotFound
	}
	r.recipes[entity.ID()] = entity
	return nil
}

// Delete removes a recipe
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.recipes[id]; !ok {
		return recipe.ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

// FindByID returns a recipe by id
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	entity, ok := r.recipes[id]
	if !ok {
		return nil, recipe.ErrNotFound
	}
	return entity, nil
}

// FindByIDs returns the recipes present for the given ids
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make([]*recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		if entity, ok := r.recipes[id]; ok {
			result = append(result, entity)
		}
	}
	return result, nil
}

// FindByExternalID returns the recipe mirrored from a provider id
func (r *RecipeRepository) FindByExternalID(ctx context.Context, externalID string) (*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for _, entity := range r.recipes {
		if entity.ExternalID() == externalID {
			return entity, nil
		}
	}
	return nil, recipe.ErrNotFound
}

// FindByUserID returns a user's recipes, newest first
func (r *RecipeRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	matched := make([]*recipe.Recipe, 0)
	for _, entity := range r.recipes {
		if entity.CreatorID() == userID {
			matched = append(matched, entity)
		}
	}
	sortNewestFirst(matched)
	return paginate(matched, offset, limit), len(matched), nil
}

// Search matches recipes case-insensitively against title and
// description, newest first
func (r *RecipeRepository) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	term := strings.ToLower(strings.TrimSpace(criteria.Query))
	matched := make([]*recipe.Recipe, 0)
	for _, entity := range r.recipes {
		if term != "" &&
			!strings.Contains(strings.ToLower(entity.Title()), term) &&
			!strings.Contains(strings.ToLower(entity.Description()), term) {
			continue
		}
		if criteria.AuthorID != nil && entity.CreatorID() != *criteria.AuthorID {
			continue
		}
		if criteria.MaxCookingTime != nil && entity.CookingTime() > *criteria.MaxCookingTime {
			continue
		}
		matched = append(matched, entity)
	}
	sortNewestFirst(matched)
	return paginate(matched, criteria.Offset, criteria.Limit), len(matched), nil
}

func sortNewestFirst(recipes []*recipe.Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt().After(recipes[j].CreatedAt())
	})
}

func paginate(recipes []*recipe.Recipe, offset, limit int) []*recipe.Recipe {
	if offset >= len(recipes) {
		return []*recipe.Recipe{}
	}
	recipes = recipes[offset:]
	if limit > 0 && limit < len(recipes) {
		recipes = recipes[:limit]
	}
	return recipes
}

// UserRepository implements the user repository in memory
type UserRepository struct {
	mutex sync.RWMutex
	users map[uuid.UUID]*user.User
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() outbound.UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*user.User)}
}

// Create stores a new user
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.users[entity.ID()] = entity
	return nil
}

// Update replaces a stored user
func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.users[entity.ID()]; !ok {
		return user.ErrNotFound
	}
	r.users[entity.ID()] = entity
	return nil
}

// FindByID returns a user by id
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	entity, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return entity, nil
}

// FindByEmail returns a user by lowercased email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, entity := range r.users {
		if entity.Email() == email {
			return entity, nil
		}
	}
	return nil, user.ErrNotFound
}

// FindByUsername returns a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	username = strings.TrimSpace(username)
	for _, entity := range r.users {
		if entity.Username() == username {
			return entity, nil
		}
	}
	return nil, user.ErrNotFound
}

type bookmarkKey struct {
	userID   uuid.UUID
	recipeID uuid.UUID
}

// BookmarkRepository implements the bookmark repository in memory. The
// map key plays the role of the composite unique index.
type BookmarkRepository struct {
	mutex     sync.Mutex
	bookmarks map[bookmarkKey]*bookmark.Bookmark
}

// NewBookmarkRepository creates a new in-memory bookmark repository
func NewBookmarkRepository() outbound.BookmarkRepository {
	return &BookmarkRepository{bookmarks: make(map[bookmarkKey]*bookmark.Bookmark)}
}

// Create stores a bookmark, failing on a duplicate pair
func (r *BookmarkRepository) Create(ctx context.Context, entity *bookmark.Bookmark) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	key := bookmarkKey{userID: entity.UserID(), recipeID: entity.RecipeID()}
	if _, ok := r.bookmarks[key]; ok {
		return bookmark.ErrAlreadyBookmarked
	}
	r.bookmarks[key] = entity
	return nil
}

// Delete removes exactly one bookmark
func (r *BookmarkRepository) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	key := bookmarkKey{userID: userID, recipeID: recipeID}
	if _, ok := r.bookmarks[key]; !ok {
		return bookmark.ErrNotFound
	}
	delete(r.bookmarks, key)
	return nil
}

// Exists reports whether the pair is bookmarked
func (r *BookmarkRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, ok := r.bookmarks[bookmarkKey{userID: userID, recipeID: recipeID}]
	return ok, nil
}

// FindByUserID returns the user's bookmarks, newest first
func (r *BookmarkRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*bookmark.Bookmark, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	result := make([]*bookmark.Bookmark, 0)
	for key, entity := range r.bookmarks {
		if key.userID == userID {
			result = append(result, entity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}
