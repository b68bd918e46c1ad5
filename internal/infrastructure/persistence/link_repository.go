package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkbio/backend/internal/domain/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
	"github.com/linkbio/backend/internal/infrastructure/persistence/models"
)

// GormLinkRepository implements LinkRepository using GORM
type GormLinkRepository struct {
	db *gorm.DB
}

// NewGormLinkRepository creates a new GormLinkRepository
func NewGormLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// Create creates a new link
func (r *GormLinkRepository) Create(ctx context.Context, link *linkbio.Link) error {
	model := models.LinkModelFromDomain(link)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByUser returns all of a user's links ordered by order_index ascending
func (r *GormLinkRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*linkbio.Link, error) {
	var linkModels []models.LinkModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_index ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]*linkbio.Link, len(linkModels))
	for i := range linkModels {
		links[i] = linkModels[i].ToDomain()
	}
	return links, nil
}

// FindActiveByUser returns a user's active links ordered by order_index ascending
func (r *GormLinkRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*linkbio.Link, error) {
	var linkModels []models.LinkModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("order_index ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]*linkbio.Link, len(linkModels))
	for i := range linkModels {
		links[i] = linkModels[i].ToDomain()
	}
	return links, nil
}

// FindOwned finds a link by ID scoped to its owner
func (r *GormLinkRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*linkbio.Link, error) {
	var model models.LinkModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// NextOrderIndex returns max(order_index)+1 for the user, or 0 when the
// user has no links.
func (r *GormLinkRepository) NextOrderIndex(ctx context.Context, userID uuid.UUID) (int, error) {
	var maxIndex *int
	if err := r.db.WithContext(ctx).
		Model(&models.LinkModel{}).
		Where("user_id = ?", userID).
		Select("MAX(order_index)").
		Scan(&maxIndex).Error; err != nil {
		return 0, err
	}
	if maxIndex == nil {
		return 0, nil
	}
	return *maxIndex + 1, nil
}

// UpdateOwned applies a partial update scoped to the owner. Returns the
// number of rows matched; zero rows is not an error.
func (r *GormLinkRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, changes linkbio.LinkChanges) (int64, error) {
	updates := map[string]interface{}{}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.URL != nil {
		updates["url"] = *changes.URL
	}
	if changes.Description != nil {
		updates["description"] = *changes.Description
	}
	if changes.IsActive != nil {
		updates["is_active"] = *changes.IsActive
	}
	if changes.OrderIndex != nil {
		updates["order_index"] = *changes.OrderIndex
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.LinkModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOwned hard-deletes a link scoped to the owner. Returns the number
// of rows matched; zero rows is not an error.
func (r *GormLinkRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.LinkModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetOrderIndex writes a single link's position scoped to the owner
func (r *GormLinkRepository) SetOrderIndex(ctx context.Context, id, userID uuid.UUID, index int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LinkModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"order_index": index,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementClickCount atomically increments a link's click counter by one.
// The increment happens server-side so concurrent clicks are never lost.
func (r *GormLinkRepository) IncrementClickCount(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.LinkModel{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLinkRepository implements LinkRepository
var _ linkbio.LinkRepository = (*GormLinkRepository)(nil)
