package linkbio

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkbio/backend/internal/domain/shared"
)

// Link is one outbound URL entry owned by a profile, with display order,
// active flag, and click counter.
type Link struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID
	Title       string
	URL         string
	Description string
	OrderIndex  int
	IsActive    bool
	ClickCount  int64
}

// NewLink creates a link at the given position in its owner's list.
// New links are active and start with zero clicks.
func NewLink(userID uuid.UUID, title, linkURL, description string, orderIndex int) (*Link, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateURL(linkURL); err != nil {
		return nil, err
	}
	if orderIndex < 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order index cannot be negative")
	}

	return &Link{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Title:             title,
		URL:               linkURL,
		Description:       description,
		OrderIndex:        orderIndex,
		IsActive:          true,
		ClickCount:        0,
	}, nil
}

// SetTitle sets the link's title
func (l *Link) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}

	l.Title = title
	l.touch()
	return nil
}

// SetURL sets the link's target URL
func (l *Link) SetURL(linkURL string) error {
	if err := validateURL(linkURL); err != nil {
		return err
	}

	l.URL = linkURL
	l.touch()
	return nil
}

// SetDescription sets the link's description. An empty string clears it.
func (l *Link) SetDescription(description string) error {
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	l.Description = description
	l.touch()
	return nil
}

// SetActive toggles the link's visibility on the public page
func (l *Link) SetActive(active bool) {
	l.IsActive = active
	l.touch()
}

// SetOrderIndex moves the link to a new position
func (l *Link) SetOrderIndex(index int) error {
	if index < 0 {
		return shared.NewDomainError("INVALID_ORDER", "Order index cannot be negative")
	}

	l.OrderIndex = index
	l.touch()
	return nil
}

func (l *Link) touch() {
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Validation functions

func validateTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

func validateURL(linkURL string) error {
	if linkURL == "" {
		return shared.NewDomainError("INVALID_URL", "URL cannot be empty")
	}
	if len(linkURL) > 2000 {
		return shared.NewDomainError("INVALID_URL", "URL cannot exceed 2000 characters")
	}

	parsed, err := url.Parse(linkURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return shared.NewDomainError("INVALID_URL", "URL must be absolute, like https://example.com")
	}
	return nil
}
