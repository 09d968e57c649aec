package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/services/item/domain/models"
)

// SearchQuery filters available listings. An empty Term and a CategoryID <= 0
// mean "no filter" for that dimension.
type SearchQuery struct {
	Term       string
	CategoryID int32
}

// ItemRepository is the persistence port for listings. It does not check
// ownership; callers compare SellerID against the acting user first.
// Every list is ordered by DatePosted, newest first.
type ItemRepository interface {
	// ListAvailable returns every unsold listing.
	ListAvailable(ctx context.Context) ([]*models.Item, error)

	// Search returns unsold listings whose title or description contains
	// q.Term (case-insensitive) and, when q.CategoryID > 0, whose category matches.
	Search(ctx context.Context, q SearchQuery) ([]*models.Item, error)

	// GetByID returns domain.ErrItemNotFound when no listing has this id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// ListBySeller returns sold and unsold listings of one seller.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Item, error)

	// Create persists a new listing as given.
	Create(ctx context.Context, item *models.Item) error

	// Update replaces the mutable fields and reports whether a row changed.
	Update(ctx context.Context, item *models.Item) (bool, error)

	// Delete removes the listing and its interests. It reports false when
	// the listing was already absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkSold sets IsSold and reports whether a listing matched, including
	// one that was already sold.
	MarkSold(ctx context.Context, id uuid.UUID) (bool, error)
}
