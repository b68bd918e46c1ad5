package linkbio

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkbio/backend/internal/domain/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
)

func newTestPublicService(t *testing.T) (*PublicProfileService, *MockProfileRepository, *MockLinkRepository) {
	t.Helper()
	profileRepo := new(MockProfileRepository)
	linkRepo := new(MockLinkRepository)
	service := NewPublicProfileService(profileRepo, linkRepo, zap.NewNop())
	return service, profileRepo, linkRepo
}

func TestPublicProfileService_GetPublicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns profile with its active links", func(t *testing.T) {
		service, profileRepo, linkRepo := newTestPublicService(t)

		profile, err := linkbio.NewProfile(uuid.New(), "alice", "Alice")
		require.NoError(t, err)
		blog, err := linkbio.NewLink(profile.ID, "Blog", "https://a.example", "", 0)
		require.NoError(t, err)
		shop, err := linkbio.NewLink(profile.ID, "Shop", "https://b.example", "", 1)
		require.NoError(t, err)

		profileRepo.On("FindByUsername", ctx, "alice").Return(profile, nil)
		linkRepo.On("FindActiveByUser", ctx, profile.ID).Return([]*linkbio.Link{blog, shop}, nil)

		view, err := service.GetPublicProfile(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, "alice", view.Profile.Username)
		require.Len(t, view.Links, 2)
		assert.Equal(t, "Blog", view.Links[0].Title)
		assert.Equal(t, "Shop", view.Links[1].Title)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		service, profileRepo, linkRepo := newTestPublicService(t)

		profileRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := service.GetPublicProfile(ctx, "ghost")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		linkRepo.AssertNotCalled(t, "FindActiveByUser", nil, nil)
	})

	t.Run("maps store failures to internal error", func(t *testing.T) {
		service, profileRepo, _ := newTestPublicService(t)

		profileRepo.On("FindByUsername", ctx, "alice").Return(nil, errors.New("boom"))

		_, err := service.GetPublicProfile(ctx, "alice")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	})
}
