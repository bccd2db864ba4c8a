// Package bookmark defines the bookmark domain entity: a user's saved
// reference to a recipe, unique per (user, recipe).
package bookmark

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyBookmarked is returned when a (user, recipe) pair is
	// bookmarked twice. The store-level uniqueness constraint is the
	// authoritative backstop; this error is its domain-side face.
	ErrAlreadyBookmarked = errors.New("recipe already bookmarked")
	// ErrNotFound is returned when removing or resolving a bookmark
	// that does not exist.
	ErrNotFound = errors.New("bookmark not found")
)

// Bookmark links a user to a locally persisted recipe. Bookmarks are
// created and destroyed through explicit user action, never updated in
// place.
type Bookmark struct {
	userID    uuid.UUID
	recipeID  uuid.UUID
	createdAt time.Time
}

// New creates a bookmark for an already resolved local recipe id.
func New(userID, recipeID uuid.UUID) *Bookmark {
	return &Bookmark{
		userID:    userID,
		recipeID:  recipeID,
		createdAt: time.Now(),
	}
}

// Reconstitute rebuilds a bookmark from persisted state.
func Reconstitute(userID, recipeID uuid.UUID, createdAt time.Time) *Bookmark {
	return &Bookmark{userID: userID, recipeID: recipeID, createdAt: createdAt}
}

// UserID returns the owning user's id.
func (b *Bookmark) UserID() uuid.UUID { return b.userID }

// RecipeID returns the referenced local recipe id.
func (b *Bookmark) RecipeID() uuid.UUID { return b.recipeID }

// CreatedAt returns when the bookmark was created.
func (b *Bookmark) CreatedAt() time.Time { return b.createdAt }
