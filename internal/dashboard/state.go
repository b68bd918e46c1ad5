// Package dashboard implements the owner dashboard's state logic as an
// explicit command, result, reducer flow. A Client issues HTTP commands
// against the API; each successful command yields a Patch; Reduce applies
// the patch to a State. A failed command yields no patch, so the state is
// never rolled back because it is never changed.
package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Session is the signed-in identity held by the dashboard.
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    uuid.UUID
	Email     string
}

// ProfileRow mirrors the API's profile response.
type ProfileRow struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	AvatarURL       string    `json:"avatar_url"`
	ThemeColor      string    `json:"theme_color"`
	BackgroundColor string    `json:"background_color"`
}

// LinkRow mirrors the API's link response.
type LinkRow struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
	IsActive    bool      `json:"is_active"`
	ClickCount  int64     `json:"click_count"`
}

// State is the dashboard's single source of truth. It is patched locally
// after each successful command, never re-fetched wholesale.
//
// EditingLink enforces that at most one link is being edited at a time;
// StartEditing refuses a second concurrent edit.
type State struct {
	Session     *Session
	Profile     *ProfileRow
	Links       []LinkRow
	EditingLink *uuid.UUID
}

// SignedIn reports whether the dashboard holds a session.
func (s State) SignedIn() bool {
	return s.Session != nil
}

// StartEditing marks a link as being edited. Only one link may be in the
// editing state at a time.
func (s State) StartEditing(linkID uuid.UUID) (State, error) {
	if s.EditingLink != nil {
		return s, ErrAlreadyEditing
	}
	found := false
	for _, l := range s.Links {
		if l.ID == linkID {
			found = true
			break
		}
	}
	if !found {
		return s, ErrUnknownLink
	}
	id := linkID
	s.EditingLink = &id
	return s, nil
}

// StopEditing clears the editing state, whether the edit was saved or
// cancelled.
func (s State) StopEditing() State {
	s.EditingLink = nil
	return s
}

// Link returns the link with the given id, if present.
func (s State) Link(linkID uuid.UUID) (LinkRow, bool) {
	for _, l := range s.Links {
		if l.ID == linkID {
			return l, true
		}
	}
	return LinkRow{}, false
}
