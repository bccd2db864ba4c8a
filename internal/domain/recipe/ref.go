package recipe

import "github.com/google/uuid"

// RefKind tags the origin of a recipe reference.
type RefKind int

const (
	// RefLocal references a recipe already persisted locally.
	RefLocal RefKind = iota
	// RefExternal references a recipe that lives in the external
	// provider and has no local record yet.
	RefExternal
	// RefAIGenerated references an ephemeral AI-generated recipe that
	// must be persisted before it can be bookmarked.
	RefAIGenerated
)

// Ref is a tagged reference to a recipe in any of its three origins.
// The reconciliation service resolves a Ref to a single durable local
// id; on success it stamps LocalID so that resolving the same Ref again
// is a pure read.
type Ref struct {
	Kind       RefKind
	LocalID    uuid.UUID
	ExternalID string
	Draft      *Draft
}

// LocalRef builds a reference to an already persisted recipe.
func LocalRef(id uuid.UUID) *Ref {
	return &Ref{Kind: RefLocal, LocalID: id}
}

// ExternalRef builds a reference to a provider recipe by external id.
func ExternalRef(externalID string) *Ref {
	return &Ref{Kind: RefExternal, ExternalID: externalID}
}

// AIGeneratedRef builds a reference to an ephemeral AI-generated payload.
func AIGeneratedRef(draft *Draft) *Ref {
	return &Ref{Kind: RefAIGenerated, Draft: draft}
}

// Resolved reports whether the reference already carries a local id.
func (r *Ref) Resolved() bool {
	return r.LocalID != uuid.Nil
}

// Validate checks that the reference carries enough identity to be
// resolved at all.
func (r *Ref) Validate() error {
	switch r.Kind {
	case RefLocal:
		if r.LocalID == uuid.Nil {
			return ErrEmptyRef
		}
	case RefExternal:
		if r.ExternalID == "" && !r.Resolved() {
			return ErrEmptyRef
		}
	case RefAIGenerated:
		if r.Draft == nil && !r.Resolved() {
			return ErrMissingDraft
		}
	default:
		return ErrEmptyRef
	}
	return nil
}
