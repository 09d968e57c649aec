package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/telemetry"
	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/simplemarket/services/item/domain/services"
)

// ViewerState is what the caller of an item detail request may additionally see.
type ViewerState struct {
	HasMarked bool
	// Interests is set only when the viewer sells the item.
	Interests []*models.ItemInterest
}

// InterestService records buyer interest in listings. Sellers can never mark
// interest in their own listing.
type InterestService struct {
	interests repositories.InterestRepository
	items     repositories.ItemRepository
	metrics   *telemetry.MarketMetrics
	log       logger.Logger
}

// NewInterestService returns an InterestService. metrics may be nil.
func NewInterestService(interests repositories.InterestRepository, items repositories.ItemRepository, metrics *telemetry.MarketMetrics, log logger.Logger) *InterestService {
	return &InterestService{interests: interests, items: items, metrics: metrics, log: log}
}

// Mark records buyerID's interest in itemID. It reports false when the
// interest already existed.
func (s *InterestService) Mark(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("get item: %w", err)
	}
	if err := domainsvcs.EnsureNotSeller(item, buyerID); err != nil {
		return false, err
	}

	marked, err := s.interests.Mark(ctx, buyerID, itemID)
	if err != nil {
		return false, fmt.Errorf("mark interest: %w", err)
	}
	if marked {
		s.metrics.InterestMarked(ctx)
		s.log.InfoContext(ctx, "interest marked", "item_id", itemID, "buyer_id", buyerID)
	}
	return marked, nil
}

// Remove withdraws buyerID's interest and reports whether one existed.
func (s *InterestService) Remove(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	removed, err := s.interests.Remove(ctx, buyerID, itemID)
	if err != nil {
		return false, fmt.Errorf("remove interest: %w", err)
	}
	return removed, nil
}

func (s *InterestService) HasMarked(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	marked, err := s.interests.HasMarked(ctx, buyerID, itemID)
	if err != nil {
		return false, fmt.Errorf("check interest: %w", err)
	}
	return marked, nil
}

// ListForBuyer returns the buyer's interests with their listings, newest first.
func (s *InterestService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*models.BuyerInterest, error) {
	list, err := s.interests.ListForBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list buyer interests: %w", err)
	}
	return list, nil
}

// ListForItem returns who is interested in a listing. Only its seller may ask.
func (s *InterestService) ListForItem(ctx context.Context, actorID, itemID uuid.UUID) ([]*models.ItemInterest, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := domainsvcs.EnsureOwner(item, actorID); err != nil {
		return nil, err
	}

	list, err := s.interests.ListForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item interests: %w", err)
	}
	return list, nil
}

// Viewer computes the viewer-specific part of an item detail. An anonymous
// viewer (uuid.Nil) gets the zero state.
func (s *InterestService) Viewer(ctx context.Context, viewerID uuid.UUID, item *models.Item) (ViewerState, error) {
	var st ViewerState
	if viewerID == uuid.Nil {
		return st, nil
	}

	if item.IsOwnedBy(viewerID) {
		list, err := s.interests.ListForItem(ctx, item.ID)
		if err != nil {
			return st, fmt.Errorf("list item interests: %w", err)
		}
		st.Interests = list
		return st, nil
	}

	marked, err := s.HasMarked(ctx, viewerID, item.ID)
	if err != nil {
		return st, err
	}
	st.HasMarked = marked
	return st, nil
}
