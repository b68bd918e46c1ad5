package linkbio

import (
	"context"

	"go.uber.org/zap"

	"github.com/linkbio/backend/internal/domain/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
)

// PublicProfileService serves the unauthenticated public page: a profile
// looked up by username plus its active links.
type PublicProfileService struct {
	profileRepo linkbio.ProfileRepository
	linkRepo    linkbio.LinkRepository
	logger      *zap.Logger
}

// NewPublicProfileService creates a new public profile service
func NewPublicProfileService(
	profileRepo linkbio.ProfileRepository,
	linkRepo linkbio.LinkRepository,
	logger *zap.Logger,
) *PublicProfileService {
	return &PublicProfileService{
		profileRepo: profileRepo,
		linkRepo:    linkRepo,
		logger:      logger,
	}
}

// GetPublicProfile returns the public view for a username: display fields
// and active links ordered by position. Unknown usernames are a NOT_FOUND,
// the only 404 on the API surface.
func (s *PublicProfileService) GetPublicProfile(ctx context.Context, username string) (*PublicProfileView, error) {
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("NOT_FOUND", "Profile not found")
		}
		s.logger.Error("Failed to load public profile",
			zap.String("username", username),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load profile")
	}

	links, err := s.linkRepo.FindActiveByUser(ctx, profile.ID)
	if err != nil {
		s.logger.Error("Failed to load public links",
			zap.String("username", profile.Username),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load profile")
	}

	return &PublicProfileView{
		Profile: profile,
		Links:   links,
	}, nil
}
