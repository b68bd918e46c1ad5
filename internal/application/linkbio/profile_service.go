package linkbio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkbio/backend/internal/domain/identity"
	"github.com/linkbio/backend/internal/domain/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
)

// ProfileService handles the signed-in owner's profile operations
type ProfileService struct {
	profileRepo linkbio.ProfileRepository
	accountRepo identity.AccountRepository
	logger      *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo linkbio.ProfileRepository,
	accountRepo identity.AccountRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// GetProfile returns the caller's profile. When no profile row exists yet
// (a signup whose profile insert failed), the view carries only the account
// ID and email.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	account, err := s.accountRepo.FindByID(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Account not found")
		}
		s.logger.Error("Failed to load account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load profile")
	}

	view := &ProfileView{
		AccountID: account.ID,
		Email:     account.Email,
	}

	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return view, nil
		}
		s.logger.Error("Failed to load profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load profile")
	}

	view.Profile = profile
	return view, nil
}

// UpdateProfile applies a partial update to the caller's profile. A changed
// username is checked for uniqueness against every other profile first.
// When the caller has no profile row yet, a username in the input creates
// one, which is how the dashboard backfills a profile lost during signup.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*linkbio.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return s.createProfile(ctx, userID, input)
		}
		s.logger.Error("Failed to load profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	if input.Username != nil {
		normalized := linkbio.NormalizeUsername(*input.Username)
		if normalized != profile.Username {
			taken, err := s.profileRepo.IsUsernameTaken(ctx, normalized, userID)
			if err != nil {
				s.logger.Error("Failed to check username availability", zap.Error(err))
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
			}
			if taken {
				return nil, shared.NewDomainError("USERNAME_TAKEN", "Username already taken")
			}
		}
		if err := profile.SetUsername(*input.Username); err != nil {
			return nil, err
		}
	}
	if input.DisplayName != nil {
		if err := profile.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}
	if input.Bio != nil {
		if err := profile.SetBio(*input.Bio); err != nil {
			return nil, err
		}
	}
	if input.AvatarURL != nil {
		if err := profile.SetAvatarURL(*input.AvatarURL); err != nil {
			return nil, err
		}
	}
	if input.ThemeColor != nil {
		if err := profile.SetThemeColor(*input.ThemeColor); err != nil {
			return nil, err
		}
	}
	if input.BackgroundColor != nil {
		if err := profile.SetBackgroundColor(*input.BackgroundColor); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update profile",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	return profile, nil
}

func (s *ProfileService) createProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*linkbio.Profile, error) {
	if input.Username == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Profile not found")
	}

	normalized := linkbio.NormalizeUsername(*input.Username)
	taken, err := s.profileRepo.IsUsernameTaken(ctx, normalized, userID)
	if err != nil {
		s.logger.Error("Failed to check username availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}
	if taken {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username already taken")
	}

	displayName := ""
	if input.DisplayName != nil {
		displayName = *input.DisplayName
	}

	profile, err := linkbio.NewProfile(userID, *input.Username, displayName)
	if err != nil {
		return nil, err
	}
	if input.Bio != nil {
		if err := profile.SetBio(*input.Bio); err != nil {
			return nil, err
		}
	}
	if input.AvatarURL != nil {
		if err := profile.SetAvatarURL(*input.AvatarURL); err != nil {
			return nil, err
		}
	}
	if input.ThemeColor != nil {
		if err := profile.SetThemeColor(*input.ThemeColor); err != nil {
			return nil, err
		}
	}
	if input.BackgroundColor != nil {
		if err := profile.SetBackgroundColor(*input.BackgroundColor); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.logger.Error("Failed to create profile",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	s.logger.Info("Profile created on first update",
		zap.String("user_id", userID.String()),
		zap.String("username", profile.Username))

	return profile, nil
}
