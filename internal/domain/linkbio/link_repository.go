package linkbio

import (
	"context"

	"github.com/google/uuid"
)

// LinkChanges describes a partial link update. Nil fields are left
// unchanged; non-nil fields are written even when they hold the zero value
// (an empty description clears it, false deactivates).
type LinkChanges struct {
	Title       *string
	URL         *string
	Description *string
	IsActive    *bool
	OrderIndex  *int
}

// IsEmpty reports whether no field is set
func (c LinkChanges) IsEmpty() bool {
	return c.Title == nil && c.URL == nil && c.Description == nil &&
		c.IsActive == nil && c.OrderIndex == nil
}

// LinkRepository defines the interface for link persistence.
//
// The mutating owner-scoped operations (UpdateOwned, DeleteOwned,
// SetOrderIndex) filter on both link ID and owner ID and report how many
// rows matched; a mismatched owner matches zero rows and is not an error.
type LinkRepository interface {
	// Create creates a new link
	Create(ctx context.Context, link *Link) error

	// FindByUser returns all of a user's links ordered by order_index ascending
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Link, error)

	// FindActiveByUser returns a user's active links ordered by order_index ascending
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*Link, error)

	// FindOwned finds a link by ID scoped to its owner
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*Link, error)

	// NextOrderIndex returns max(order_index)+1 for the user, or 0 when the
	// user has no links. Gaps left by deletions are never compacted.
	NextOrderIndex(ctx context.Context, userID uuid.UUID) (int, error)

	// UpdateOwned applies a partial update scoped to the owner
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, changes LinkChanges) (int64, error)

	// DeleteOwned hard-deletes a link scoped to the owner
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)

	// SetOrderIndex writes a single link's position scoped to the owner
	SetOrderIndex(ctx context.Context, id, userID uuid.UUID, index int) (int64, error)

	// IncrementClickCount atomically increments a link's click counter by one
	// server-side. Never read-modify-write.
	IncrementClickCount(ctx context.Context, id uuid.UUID) error
}
