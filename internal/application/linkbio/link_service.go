package linkbio

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkbio/backend/internal/domain/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
)

// LinkService handles the signed-in owner's link operations plus the public
// click counter.
type LinkService struct {
	linkRepo linkbio.LinkRepository
	logger   *zap.Logger
}

// NewLinkService creates a new link service
func NewLinkService(linkRepo linkbio.LinkRepository, logger *zap.Logger) *LinkService {
	return &LinkService{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

// ListLinks returns the caller's links ordered by position
func (s *LinkService) ListLinks(ctx context.Context, userID uuid.UUID) ([]*linkbio.Link, error) {
	links, err := s.linkRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list links",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load links")
	}
	return links, nil
}

// CreateLink appends a link at the end of the caller's list. The position is
// max(order_index)+1; gaps left by deletions are never reclaimed.
func (s *LinkService) CreateLink(ctx context.Context, userID uuid.UUID, input CreateLinkInput) (*linkbio.Link, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.URL) == "" {
		return nil, shared.NewDomainError("MISSING_FIELDS", "Title and URL are required")
	}

	orderIndex, err := s.linkRepo.NextOrderIndex(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to compute next order index",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create link")
	}

	link, err := linkbio.NewLink(userID, input.Title, input.URL, input.Description, orderIndex)
	if err != nil {
		return nil, err
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		s.logger.Error("Failed to create link",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create link")
	}

	s.logger.Info("Link created",
		zap.String("user_id", userID.String()),
		zap.String("link_id", link.ID.String()),
		zap.Int("order_index", link.OrderIndex))

	return link, nil
}

// UpdateLink applies a partial update scoped to the caller's own rows. When
// the id does not exist or belongs to someone else, zero rows match and the
// call succeeds with a nil link. An update with no fields set is a read:
// the caller's own link comes back unchanged.
func (s *LinkService) UpdateLink(ctx context.Context, userID, linkID uuid.UUID, input UpdateLinkInput) (*linkbio.Link, error) {
	changes := linkbio.LinkChanges{
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
		IsActive:    input.IsActive,
		OrderIndex:  input.OrderIndex,
	}

	if changes.IsEmpty() {
		link, err := s.linkRepo.FindOwned(ctx, linkID, userID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			s.logger.Error("Failed to load link",
				zap.String("user_id", userID.String()),
				zap.String("link_id", linkID.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update link")
		}
		return link, nil
	}

	rows, err := s.linkRepo.UpdateOwned(ctx, linkID, userID, changes)
	if err != nil {
		s.logger.Error("Failed to update link",
			zap.String("user_id", userID.String()),
			zap.String("link_id", linkID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update link")
	}
	if rows == 0 {
		return nil, nil
	}

	link, err := s.linkRepo.FindOwned(ctx, linkID, userID)
	if err != nil {
		s.logger.Error("Failed to reload link after update",
			zap.String("link_id", linkID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update link")
	}
	return link, nil
}

// DeleteLink removes a link scoped to the caller's own rows. A mismatched
// id deletes nothing and still succeeds.
func (s *LinkService) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	rows, err := s.linkRepo.DeleteOwned(ctx, linkID, userID)
	if err != nil {
		s.logger.Error("Failed to delete link",
			zap.String("user_id", userID.String()),
			zap.String("link_id", linkID.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete link")
	}
	if rows == 0 {
		s.logger.Debug("Delete matched no rows",
			zap.String("user_id", userID.String()),
			zap.String("link_id", linkID.String()))
	}
	return nil
}

// ReorderLinks sets each link's order_index to its position in the given
// list, scoped to the caller's own rows. The writes run concurrently with
// no atomicity across them; a partial failure leaves a mixed ordering and
// is only logged. Applying the same list twice yields the same indexes.
func (s *LinkService) ReorderLinks(ctx context.Context, userID uuid.UUID, linkIDs []uuid.UUID) error {
	if len(linkIDs) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for position, id := range linkIDs {
		wg.Add(1)
		go func(id uuid.UUID, position int) {
			defer wg.Done()
			if _, err := s.linkRepo.SetOrderIndex(ctx, id, userID, position); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(id, position)
	}
	wg.Wait()

	if firstErr != nil {
		s.logger.Error("Reorder partially failed",
			zap.String("user_id", userID.String()),
			zap.Int("count", len(linkIDs)),
			zap.Error(firstErr))
	}
	return nil
}

// TrackClick bumps a link's click counter with a single server-side
// increment. The id arrives from anonymous visitors, so a malformed one
// counts the same as a missing row; failures are logged and swallowed so
// tracking never blocks the visitor's navigation.
func (s *LinkService) TrackClick(ctx context.Context, rawLinkID string) {
	linkID, err := uuid.Parse(rawLinkID)
	if err != nil {
		s.logger.Warn("Ignoring click for malformed link id",
			zap.String("link_id", rawLinkID))
		return
	}

	if err := s.linkRepo.IncrementClickCount(ctx, linkID); err != nil {
		s.logger.Warn("Failed to track click",
			zap.String("link_id", linkID.String()),
			zap.Error(err))
	}
}
