package linkbio

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLink(t *testing.T) {
	userID := uuid.New()

	t.Run("creates active link with zero clicks", func(t *testing.T) {
		link, err := NewLink(userID, "Blog", "https://a.example", "my blog", 0)

		require.NoError(t, err)
		assert.Equal(t, userID, link.UserID)
		assert.Equal(t, "Blog", link.Title)
		assert.Equal(t, "https://a.example", link.URL)
		assert.Equal(t, "my blog", link.Description)
		assert.Equal(t, 0, link.OrderIndex)
		assert.True(t, link.IsActive)
		assert.Zero(t, link.ClickCount)
	})

	t.Run("trims title", func(t *testing.T) {
		link, err := NewLink(userID, "  Blog  ", "https://a.example", "", 3)

		require.NoError(t, err)
		assert.Equal(t, "Blog", link.Title)
		assert.Equal(t, 3, link.OrderIndex)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewLink(userID, "", "https://a.example", "", 0)
		assert.Error(t, err)
	})

	t.Run("fails with empty url", func(t *testing.T) {
		_, err := NewLink(userID, "Blog", "", "", 0)
		assert.Error(t, err)
	})

	t.Run("fails with relative url", func(t *testing.T) {
		_, err := NewLink(userID, "Blog", "/just/a/path", "", 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "absolute")
	})

	t.Run("fails with negative order index", func(t *testing.T) {
		_, err := NewLink(userID, "Blog", "https://a.example", "", -1)
		assert.Error(t, err)
	})
}

func TestLink_Setters(t *testing.T) {
	link, err := NewLink(uuid.New(), "Blog", "https://a.example", "", 0)
	require.NoError(t, err)

	t.Run("SetActive toggles visibility", func(t *testing.T) {
		link.SetActive(false)
		assert.False(t, link.IsActive)

		link.SetActive(true)
		assert.True(t, link.IsActive)
	})

	t.Run("SetOrderIndex rejects negative positions", func(t *testing.T) {
		require.NoError(t, link.SetOrderIndex(4))
		assert.Equal(t, 4, link.OrderIndex)

		assert.Error(t, link.SetOrderIndex(-2))
		assert.Equal(t, 4, link.OrderIndex)
	})

	t.Run("SetDescription clears with empty string", func(t *testing.T) {
		require.NoError(t, link.SetDescription("notes"))
		require.NoError(t, link.SetDescription(""))
		assert.Empty(t, link.Description)
	})

	t.Run("SetURL validates", func(t *testing.T) {
		assert.Error(t, link.SetURL("not a url"))
		require.NoError(t, link.SetURL("https://b.example/path"))
		assert.Equal(t, "https://b.example/path", link.URL)
	})
}

func TestLinkChanges_IsEmpty(t *testing.T) {
	assert.True(t, LinkChanges{}.IsEmpty())

	title := "Blog"
	assert.False(t, LinkChanges{Title: &title}.IsEmpty())

	active := false
	assert.False(t, LinkChanges{IsActive: &active}.IsEmpty())
}
