package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkbio/backend/internal/domain/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
	"github.com/linkbio/backend/internal/infrastructure/persistence/models"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Create creates a new profile
func (r *GormProfileRepository) Create(ctx context.Context, profile *linkbio.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing profile
func (r *GormProfileRepository) Update(ctx context.Context, profile *linkbio.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"username":         model.Username,
			"display_name":     model.DisplayName,
			"bio":              model.Bio,
			"avatar_url":       model.AvatarURL,
			"theme_color":      model.ThemeColor,
			"background_color": model.BackgroundColor,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a profile by its account ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*linkbio.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a profile by its normalized username
func (r *GormProfileRepository) FindByUsername(ctx context.Context, username string) (*linkbio.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", linkbio.NormalizeUsername(username)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// IsUsernameTaken reports whether another profile already holds the username
func (r *GormProfileRepository) IsUsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ProfileModel{}).
		Where("username = ?", linkbio.NormalizeUsername(username))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormProfileRepository implements ProfileRepository
var _ linkbio.ProfileRepository = (*GormProfileRepository)(nil)
