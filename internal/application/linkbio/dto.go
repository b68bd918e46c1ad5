package linkbio

import (
	"github.com/google/uuid"

	"github.com/linkbio/backend/internal/domain/linkbio"
)

// ProfileView is the caller's own profile. Profile is nil when the account
// has no profile row yet; AccountID and Email are always set so the
// dashboard can render a minimal view and create the profile lazily.
type ProfileView struct {
	Profile   *linkbio.Profile
	AccountID uuid.UUID
	Email     string
}

// UpdateProfileInput is a partial profile update. Nil fields are left
// unchanged; non-nil fields are written even when empty, so the bio and
// avatar can be cleared.
type UpdateProfileInput struct {
	Username        *string
	DisplayName     *string
	Bio             *string
	AvatarURL       *string
	ThemeColor      *string
	BackgroundColor *string
}

// CreateLinkInput contains the input for creating a link
type CreateLinkInput struct {
	Title       string
	URL         string
	Description string
}

// UpdateLinkInput is a partial link update with the same nil-means-unchanged
// convention as UpdateProfileInput.
type UpdateLinkInput struct {
	Title       *string
	URL         *string
	Description *string
	IsActive    *bool
	OrderIndex  *int
}

// PublicProfileView is what the public page sees: the profile's display
// fields plus its active links in order. Account identity never leaves
// this shape.
type PublicProfileView struct {
	Profile *linkbio.Profile
	Links   []*linkbio.Link
}
