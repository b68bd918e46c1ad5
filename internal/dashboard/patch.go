package dashboard

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyEditing is returned when a second link edit is started
	// before the first one finishes.
	ErrAlreadyEditing = errors.New("another link is already being edited")

	// ErrUnknownLink is returned when an operation names a link that is
	// not in the local state.
	ErrUnknownLink = errors.New("link not found in local state")
)

// Patch describes one state change produced by a successful command.
type Patch interface {
	isPatch()
}

// SignedInPatch installs a fresh session. The caller is expected to follow
// up with profile and link loads, which arrive as their own patches.
type SignedInPatch struct {
	Session Session
}

// SignedOutPatch drops the session and everything loaded under it.
type SignedOutPatch struct{}

// ProfileLoadedPatch replaces the local profile with the server's row.
type ProfileLoadedPatch struct {
	Profile *ProfileRow
}

// LinksLoadedPatch replaces the local link list.
type LinksLoadedPatch struct {
	Links []LinkRow
}

// LinkAddedPatch appends a newly created link.
type LinkAddedPatch struct {
	Link LinkRow
}

// LinkUpdatedPatch replaces a single link with the server's returned row
// and ends any edit of it.
type LinkUpdatedPatch struct {
	Link LinkRow
}

// LinkDeletedPatch removes a single link.
type LinkDeletedPatch struct {
	ID uuid.UUID
}

// LinksReorderedPatch assigns each listed link's order index to its
// position in the list, mirroring what the server did.
type LinksReorderedPatch struct {
	IDs []uuid.UUID
}

func (SignedInPatch) isPatch()       {}
func (SignedOutPatch) isPatch()      {}
func (ProfileLoadedPatch) isPatch()  {}
func (LinksLoadedPatch) isPatch()    {}
func (LinkAddedPatch) isPatch()      {}
func (LinkUpdatedPatch) isPatch()    {}
func (LinkDeletedPatch) isPatch()    {}
func (LinksReorderedPatch) isPatch() {}

// Reduce applies a patch to a state and returns the new state. It is a
// pure function: the input state is not mutated, and applying the same
// patch to the same state always yields the same result.
func Reduce(s State, p Patch) State {
	switch patch := p.(type) {
	case SignedInPatch:
		session := patch.Session
		s.Session = &session
		s.Profile = nil
		s.Links = nil
		s.EditingLink = nil

	case SignedOutPatch:
		s = State{}

	case ProfileLoadedPatch:
		if patch.Profile != nil {
			profile := *patch.Profile
			s.Profile = &profile
		} else {
			s.Profile = nil
		}

	case LinksLoadedPatch:
		s.Links = append([]LinkRow(nil), patch.Links...)
		s.EditingLink = nil

	case LinkAddedPatch:
		s.Links = append(append([]LinkRow(nil), s.Links...), patch.Link)

	case LinkUpdatedPatch:
		links := append([]LinkRow(nil), s.Links...)
		for i := range links {
			if links[i].ID == patch.Link.ID {
				links[i] = patch.Link
				break
			}
		}
		s.Links = links
		if s.EditingLink != nil && *s.EditingLink == patch.Link.ID {
			s.EditingLink = nil
		}

	case LinkDeletedPatch:
		links := make([]LinkRow, 0, len(s.Links))
		for _, l := range s.Links {
			if l.ID != patch.ID {
				links = append(links, l)
			}
		}
		s.Links = links
		if s.EditingLink != nil && *s.EditingLink == patch.ID {
			s.EditingLink = nil
		}

	case LinksReorderedPatch:
		position := make(map[uuid.UUID]int, len(patch.IDs))
		for i, id := range patch.IDs {
			position[id] = i
		}
		links := append([]LinkRow(nil), s.Links...)
		for i := range links {
			if pos, ok := position[links[i].ID]; ok {
				links[i].OrderIndex = pos
			}
		}
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].OrderIndex < links[j].OrderIndex
		})
		s.Links = links
	}
	return s
}
