package linkbio

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkbio/backend/internal/domain/shared"
)

// Default colors applied when a profile does not customize them.
const (
	DefaultThemeColor      = "#3b82f6"
	DefaultBackgroundColor = "#ffffff"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// NormalizeUsername lowercases a username and strips everything outside
// [a-z0-9]. The result is the URL slug of the public page.
func NormalizeUsername(username string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(strings.TrimSpace(username)), "")
}

// Profile is an account's public identity and customization settings.
// It shares its ID with the owning account; one profile per account.
type Profile struct {
	shared.BaseAggregateRoot
	Username        string
	DisplayName     string
	Bio             string
	AvatarURL       string
	ThemeColor      string
	BackgroundColor string
}

// NewProfile creates a profile for the given account. The username is
// normalized; uniqueness is enforced by the caller against the repository.
func NewProfile(accountID uuid.UUID, username, displayName string) (*Profile, error) {
	normalized := NormalizeUsername(username)
	if err := validateUsername(normalized); err != nil {
		return nil, err
	}

	return &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithID(accountID),
		Username:          normalized,
		DisplayName:       strings.TrimSpace(displayName),
		ThemeColor:        DefaultThemeColor,
		BackgroundColor:   DefaultBackgroundColor,
	}, nil
}

// SetUsername changes the profile's URL slug. The caller must check
// uniqueness against other profiles before persisting.
func (p *Profile) SetUsername(username string) error {
	normalized := NormalizeUsername(username)
	if err := validateUsername(normalized); err != nil {
		return err
	}

	p.Username = normalized
	p.touch()
	return nil
}

// SetDisplayName sets the profile's display name
func (p *Profile) SetDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}

	p.DisplayName = displayName
	p.touch()
	return nil
}

// SetBio sets the profile's bio. An empty string clears it.
func (p *Profile) SetBio(bio string) error {
	if len(bio) > 1000 {
		return shared.NewDomainError("INVALID_BIO", "Bio cannot exceed 1000 characters")
	}

	p.Bio = bio
	p.touch()
	return nil
}

// SetAvatarURL sets the profile's avatar URL. An empty string clears it.
func (p *Profile) SetAvatarURL(avatarURL string) error {
	if len(avatarURL) > 500 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot exceed 500 characters")
	}

	p.AvatarURL = avatarURL
	p.touch()
	return nil
}

// SetThemeColor sets the accent color used on the public page
func (p *Profile) SetThemeColor(color string) error {
	if err := validateColor(color); err != nil {
		return err
	}

	p.ThemeColor = color
	p.touch()
	return nil
}

// SetBackgroundColor sets the background color of the public page
func (p *Profile) SetBackgroundColor(color string) error {
	if err := validateColor(color); err != nil {
		return err
	}

	p.BackgroundColor = color
	p.touch()
	return nil
}

func (p *Profile) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Validation functions

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 50 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 50 characters")
	}
	return nil
}

var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateColor(color string) error {
	if !colorRegex.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #3b82f6")
	}
	return nil
}
