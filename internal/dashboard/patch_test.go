package dashboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func link(title string, order int) LinkRow {
	return LinkRow{ID: uuid.New(), Title: title, URL: "https://" + title + ".example", OrderIndex: order, IsActive: true}
}

func TestReduceSignin(t *testing.T) {
	blog := link("blog", 0)
	state := State{
		Session: &Session{Email: "old@x.com"},
		Profile: &ProfileRow{Username: "old"},
		Links:   []LinkRow{blog},
	}

	state = Reduce(state, SignedInPatch{Session: Session{Email: "alice@x.com"}})

	require.NotNil(t, state.Session)
	assert.Equal(t, "alice@x.com", state.Session.Email)
	// A new session invalidates everything loaded under the old one
	assert.Nil(t, state.Profile)
	assert.Empty(t, state.Links)
}

func TestReduceSignout(t *testing.T) {
	state := State{
		Session: &Session{Email: "alice@x.com"},
		Profile: &ProfileRow{Username: "alice"},
		Links:   []LinkRow{link("blog", 0)},
	}

	state = Reduce(state, SignedOutPatch{})

	assert.Equal(t, State{}, state)
}

func TestReduceLinkLifecycle(t *testing.T) {
	state := State{Session: &Session{}}

	blog := link("blog", 0)
	shop := link("shop", 1)
	state = Reduce(state, LinksLoadedPatch{Links: []LinkRow{blog, shop}})
	require.Len(t, state.Links, 2)

	video := link("video", 2)
	state = Reduce(state, LinkAddedPatch{Link: video})
	require.Len(t, state.Links, 3)
	assert.Equal(t, "video", state.Links[2].Title)

	renamed := blog
	renamed.Title = "Blog v2"
	state = Reduce(state, LinkUpdatedPatch{Link: renamed})
	assert.Equal(t, "Blog v2", state.Links[0].Title)

	state = Reduce(state, LinkDeletedPatch{ID: shop.ID})
	require.Len(t, state.Links, 2)
	_, found := state.Link(shop.ID)
	assert.False(t, found)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	blog := link("blog", 0)
	before := State{Session: &Session{}, Links: []LinkRow{blog}}

	renamed := blog
	renamed.Title = "changed"
	after := Reduce(before, LinkUpdatedPatch{Link: renamed})

	assert.Equal(t, "blog", before.Links[0].Title)
	assert.Equal(t, "changed", after.Links[0].Title)
}

func TestReduceReorder(t *testing.T) {
	blog := link("blog", 0)
	shop := link("shop", 1)
	video := link("video", 2)
	state := State{Session: &Session{}, Links: []LinkRow{blog, shop, video}}

	order := []uuid.UUID{video.ID, blog.ID, shop.ID}
	state = Reduce(state, LinksReorderedPatch{IDs: order})

	require.Len(t, state.Links, 3)
	assert.Equal(t, "video", state.Links[0].Title)
	assert.Equal(t, "blog", state.Links[1].Title)
	assert.Equal(t, "shop", state.Links[2].Title)
	assert.Equal(t, 0, state.Links[0].OrderIndex)
	assert.Equal(t, 2, state.Links[2].OrderIndex)

	// Applying the same ordering again changes nothing
	again := Reduce(state, LinksReorderedPatch{IDs: order})
	assert.Equal(t, state, again)
}

func TestEditMutualExclusion(t *testing.T) {
	blog := link("blog", 0)
	shop := link("shop", 1)
	state := State{Session: &Session{}, Links: []LinkRow{blog, shop}}

	state, err := state.StartEditing(blog.ID)
	require.NoError(t, err)
	require.NotNil(t, state.EditingLink)

	_, err = state.StartEditing(shop.ID)
	assert.ErrorIs(t, err, ErrAlreadyEditing)

	state = state.StopEditing()
	state, err = state.StartEditing(shop.ID)
	assert.NoError(t, err)
	assert.Equal(t, shop.ID, *state.EditingLink)
}

func TestStartEditingUnknownLink(t *testing.T) {
	state := State{Session: &Session{}, Links: []LinkRow{link("blog", 0)}}

	_, err := state.StartEditing(uuid.New())
	assert.ErrorIs(t, err, ErrUnknownLink)
}

func TestEditClearedByUpdateAndDelete(t *testing.T) {
	blog := link("blog", 0)
	state := State{Session: &Session{}, Links: []LinkRow{blog}}

	state, err := state.StartEditing(blog.ID)
	require.NoError(t, err)

	updated := blog
	updated.Title = "saved"
	state = Reduce(state, LinkUpdatedPatch{Link: updated})
	assert.Nil(t, state.EditingLink)

	state, err = state.StartEditing(blog.ID)
	require.NoError(t, err)
	state = Reduce(state, LinkDeletedPatch{ID: blog.ID})
	assert.Nil(t, state.EditingLink)
}
