package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/linkbio/backend/internal/domain/linkbio"
)

// SuccessResponse is the wire shape of operations that return no row
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewSuccessResponse creates a {"success": true} body
func NewSuccessResponse() SuccessResponse {
	return SuccessResponse{Success: true}
}

// ProfileRow is a profile as the owner sees it
type ProfileRow struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	AvatarURL       string    `json:"avatar_url"`
	ThemeColor      string    `json:"theme_color"`
	BackgroundColor string    `json:"background_color"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProfileRow converts a profile to its wire shape
func NewProfileRow(p *linkbio.Profile) ProfileRow {
	return ProfileRow{
		ID:              p.ID,
		Username:        p.Username,
		DisplayName:     p.DisplayName,
		Bio:             p.Bio,
		AvatarURL:       p.AvatarURL,
		ThemeColor:      p.ThemeColor,
		BackgroundColor: p.BackgroundColor,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// AccountStub replaces the profile row for accounts that have none yet
type AccountStub struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// LinkRow is a link as the owner sees it
type LinkRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
	IsActive    bool      `json:"is_active"`
	ClickCount  int64     `json:"click_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewLinkRow converts a link to its wire shape
func NewLinkRow(l *linkbio.Link) LinkRow {
	return LinkRow{
		ID:          l.ID,
		UserID:      l.UserID,
		Title:       l.Title,
		URL:         l.URL,
		Description: l.Description,
		OrderIndex:  l.OrderIndex,
		IsActive:    l.IsActive,
		ClickCount:  l.ClickCount,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// NewLinkRows converts a slice of links, mapping nil to an empty array so
// the body is always [] rather than null
func NewLinkRows(links []*linkbio.Link) []LinkRow {
	rows := make([]LinkRow, 0, len(links))
	for _, l := range links {
		rows = append(rows, NewLinkRow(l))
	}
	return rows
}

// PublicProfile is the subset of a profile shown to anonymous visitors.
// It deliberately carries no account id and no email.
type PublicProfile struct {
	Username        string `json:"username"`
	DisplayName     string `json:"display_name"`
	Bio             string `json:"bio"`
	AvatarURL       string `json:"avatar_url"`
	ThemeColor      string `json:"theme_color"`
	BackgroundColor string `json:"background_color"`
}

// PublicLink is a link as anonymous visitors see it. The id stays because
// click tracking needs it.
type PublicLink struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
}

// PublicProfileResponse is the body of the public profile endpoint
type PublicProfileResponse struct {
	Profile PublicProfile `json:"profile"`
	Links   []PublicLink  `json:"links"`
}

// NewPublicProfileResponse converts a profile and its active links to the
// public wire shape
func NewPublicProfileResponse(p *linkbio.Profile, activeLinks []*linkbio.Link) PublicProfileResponse {
	links := make([]PublicLink, 0, len(activeLinks))
	for _, l := range activeLinks {
		links = append(links, PublicLink{
			ID:          l.ID,
			Title:       l.Title,
			URL:         l.URL,
			Description: l.Description,
			OrderIndex:  l.OrderIndex,
		})
	}

	return PublicProfileResponse{
		Profile: PublicProfile{
			Username:        p.Username,
			DisplayName:     p.DisplayName,
			Bio:             p.Bio,
			AvatarURL:       p.AvatarURL,
			ThemeColor:      p.ThemeColor,
			BackgroundColor: p.BackgroundColor,
		},
		Links: links,
	}
}
