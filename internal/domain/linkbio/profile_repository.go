package linkbio

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// Create creates a new profile
	Create(ctx context.Context, profile *Profile) error

	// Update updates an existing profile
	Update(ctx context.Context, profile *Profile) error

	// FindByID finds a profile by its account ID
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// FindByUsername finds a profile by its normalized username
	FindByUsername(ctx context.Context, username string) (*Profile, error)

	// IsUsernameTaken reports whether another profile already holds the
	// username. excludeID skips the caller's own row; uuid.Nil excludes
	// nothing.
	IsUsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
}
