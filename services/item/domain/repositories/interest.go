package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/services/item/domain/models"
)

// InterestRepository is the persistence port for buyer interests. The
// (buyer, item) pair is unique at the storage level; Mark turns a conflict
// into false instead of checking first.
type InterestRepository interface {
	// Mark records the interest and reports false when it already existed.
	// Returns domain.ErrItemNotFound when the listing does not exist.
	Mark(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error)

	// Remove deletes the interest and reports whether one existed.
	Remove(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error)

	HasMarked(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error)

	// ListForBuyer joins each interest with its listing and seller, newest mark first.
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*models.BuyerInterest, error)

	// ListForItem joins each interest with its buyer, newest mark first.
	ListForItem(ctx context.Context, itemID uuid.UUID) ([]*models.ItemInterest, error)
}
