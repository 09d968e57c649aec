package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/simplemarket/pkg/cache"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/telemetry"
	itemdomain "github.com/ghuser/simplemarket/services/item/domain"
	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/simplemarket/services/item/domain/services"
)

// ItemInput is the raw listing data accepted from callers. Price is a decimal
// string such as "10.00".
type ItemInput struct {
	Title       string
	Description string
	Price       string
	CategoryID  *int32
	ImageRef    string
}

// Details converts the input into validated listing fields. Every failure
// wraps ErrInvalidItem.
func (in ItemInput) Details() (models.ItemDetails, error) {
	title, err := models.NewTitle(in.Title)
	if err != nil {
		return models.ItemDetails{}, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	desc, err := models.NewDescription(in.Description)
	if err != nil {
		return models.ItemDetails{}, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	price, err := models.ParsePrice(in.Price)
	if err != nil {
		return models.ItemDetails{}, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	d := models.ItemDetails{
		Title:       title,
		Description: desc,
		Price:       price,
		CategoryID:  in.CategoryID,
		ImageRef:    strings.TrimSpace(in.ImageRef),
	}
	if err := domainsvcs.ValidateDetails(d); err != nil {
		return models.ItemDetails{}, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	return d, nil
}

// ItemService orchestrates listing reads and seller-only mutations.
// Event publishing is handled by the repository layer (outbox pattern).
// Single-listing reads are served from Redis when a cache is configured.
type ItemService struct {
	repo    repositories.ItemRepository
	cache   *pkgcache.ItemCache
	metrics *telemetry.MarketMetrics
	log     logger.Logger
}

// NewItemService returns an ItemService. itemCache and metrics may be nil.
func NewItemService(repo repositories.ItemRepository, itemCache *pkgcache.ItemCache, metrics *telemetry.MarketMetrics, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, cache: itemCache, metrics: metrics, log: log}
}

// List returns available listings. With neither a term nor a category it is
// the plain availability listing; otherwise the search filters apply.
func (s *ItemService) List(ctx context.Context, q repositories.SearchQuery) ([]*models.Item, error) {
	q.Term = strings.TrimSpace(q.Term)
	if q.Term == "" && q.CategoryID <= 0 {
		items, err := s.repo.ListAvailable(ctx)
		if err != nil {
			return nil, fmt.Errorf("list available items: %w", err)
		}
		return items, nil
	}

	items, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a listing using a read-through cache:
//  1. Check Redis first.
//  2. On a miss (or cache error), query Postgres.
//  3. Write the Postgres result back to Redis unless the listing was
//     invalidated while it was being loaded.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	gen, cacheable := "", false
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
		if gen, err = s.cache.Generation(ctx, id); err == nil {
			cacheable = true
		} else {
			s.log.WarnContext(ctx, "item cache generation read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if cacheable {
		if _, err := s.cache.Set(ctx, toCached(item), gen); err != nil {
			s.log.WarnContext(ctx, "item cache write failed", "item_id", id, "error", err)
		}
	}
	return item, nil
}

// ListBySeller returns every listing of sellerID, sold ones included.
func (s *ItemService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Item, error) {
	items, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller items: %w", err)
	}
	return items, nil
}

// Create validates and persists a listing owned by sellerID. The repository
// publishes ItemCreatedEvent.
func (s *ItemService) Create(ctx context.Context, sellerID uuid.UUID, in ItemInput) (*models.Item, error) {
	d, err := in.Details()
	if err != nil {
		return nil, err
	}

	item := models.NewItem(sellerID, d)
	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.metrics.ItemCreated(ctx, item.CategoryID != nil)
	s.log.InfoContext(ctx, "item created", "item_id", item.ID, "seller_id", sellerID)
	return item, nil
}

// Update replaces the listing's mutable fields. Only the seller may update.
func (s *ItemService) Update(ctx context.Context, actorID, id uuid.UUID, in ItemInput) (*models.Item, error) {
	item, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	d, err := in.Details()
	if err != nil {
		return nil, err
	}
	item.Apply(d)

	changed, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.evict(ctx, id)
	if !changed {
		return nil, itemdomain.ErrItemNotFound
	}
	return item, nil
}

// Delete removes the listing and its interests. Only the seller may delete.
func (s *ItemService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.evict(ctx, id)
	if !deleted {
		return itemdomain.ErrItemNotFound
	}

	s.metrics.ItemDeleted(ctx)
	s.log.InfoContext(ctx, "item deleted", "item_id", id, "seller_id", actorID)
	return nil
}

// MarkSold flags the listing as sold. Repeating it is harmless. Only the
// seller may mark a listing sold.
func (s *ItemService) MarkSold(ctx context.Context, actorID, id uuid.UUID) (*models.Item, error) {
	item, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	matched, err := s.repo.MarkSold(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark item sold: %w", err)
	}
	s.evict(ctx, id)
	if !matched {
		return nil, itemdomain.ErrItemNotFound
	}

	if !item.IsSold {
		s.metrics.ItemSold(ctx)
		s.log.InfoContext(ctx, "item sold", "item_id", id, "seller_id", actorID)
	}
	item.IsSold = true
	return item, nil
}

// Refresh loads a listing from the repository into the cache. A listing that
// no longer exists stays uncached.
func (s *ItemService) Refresh(ctx context.Context, id uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	gen, err := s.cache.Generation(ctx, id)
	if err != nil {
		return err
	}

	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, itemdomain.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}

	if _, err := s.cache.Set(ctx, toCached(item), gen); err != nil {
		return err
	}
	return nil
}

// Evict drops the cached copy of a listing.
func (s *ItemService) Evict(ctx context.Context, id uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, id)
}

// owned loads a listing straight from the repository and checks that actorID
// sells it. The cache is bypassed so ownership is always judged on fresh data.
func (s *ItemService) owned(ctx context.Context, actorID, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := domainsvcs.EnsureOwner(item, actorID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) evict(ctx context.Context, id uuid.UUID) {
	if err := s.Evict(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache evict failed", "item_id", id, "error", err)
	}
}

func toCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:          item.ID,
		SellerID:    item.SellerID,
		CategoryID:  item.CategoryID,
		Title:       item.Title.String(),
		Description: item.Description.String(),
		PriceCents:  item.Price.Cents(),
		ImageRef:    item.ImageRef,
		IsSold:      item.IsSold,
		DatePosted:  item.DatePosted,
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:          c.ID,
		SellerID:    c.SellerID,
		CategoryID:  c.CategoryID,
		Title:       models.Title(c.Title),
		Description: models.Description(c.Description),
		Price:       models.Price(c.PriceCents),
		ImageRef:    c.ImageRef,
		IsSold:      c.IsSold,
		DatePosted:  c.DatePosted,
	}
}
