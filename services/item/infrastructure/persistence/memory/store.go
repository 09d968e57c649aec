// Package memory is an in-process implementation of the item and interest
// repositories. It mirrors the Postgres constraints that the domain relies on:
// unique (buyer, item) pairs, cascade of interests on item delete and the
// foreign key from interests to items.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	itemdomain "github.com/ghuser/simplemarket/services/item/domain"
	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
)

type pair struct {
	buyerID uuid.UUID
	itemID  uuid.UUID
}

// Store satisfies both repositories.ItemRepository and repositories.InterestRepository.
type Store struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]models.Item
	interests map[pair]models.Interest
	names     map[uuid.UUID]string
	now       func() time.Time
}

var (
	_ repositories.ItemRepository     = (*Store)(nil)
	_ repositories.InterestRepository = (*Store)(nil)
)

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		items:     make(map[uuid.UUID]models.Item),
		interests: make(map[pair]models.Interest),
		names:     make(map[uuid.UUID]string),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetDisplayName registers the name joined into interest listings for userID.
func (s *Store) SetDisplayName(userID uuid.UUID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[userID] = name
}

func (s *Store) ListAvailable(ctx context.Context) ([]*models.Item, error) {
	return s.Search(ctx, repositories.SearchQuery{})
}

func (s *Store) Search(_ context.Context, q repositories.SearchQuery) ([]*models.Item, error) {
	term := strings.ToLower(strings.TrimSpace(q.Term))

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(it models.Item) bool {
		if it.IsSold {
			return false
		}
		if q.CategoryID > 0 && (it.CategoryID == nil || *it.CategoryID != q.CategoryID) {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(it.Title.String()), term) ||
			strings.Contains(strings.ToLower(it.Description.String()), term)
	}), nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	return cloneItem(it), nil
}

func (s *Store) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(it models.Item) bool { return it.SellerID == sellerID }), nil
}

func (s *Store) Create(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.ID] = *cloneItem(*item)
	return nil
}

func (s *Store) Update(_ context.Context, item *models.Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[item.ID]
	if !ok {
		return false, nil
	}
	cur.Apply(models.ItemDetails{
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		CategoryID:  item.CategoryID,
		ImageRef:    item.ImageRef,
	})
	s.items[item.ID] = *cloneItem(cur)
	return true, nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	for k := range s.interests {
		if k.itemID == id {
			delete(s.interests, k)
		}
	}
	return true, nil
}

func (s *Store) MarkSold(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return false, nil
	}
	it.IsSold = true
	s.items[id] = it
	return true, nil
}

func (s *Store) Mark(_ context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return false, itemdomain.ErrItemNotFound
	}
	k := pair{buyerID: buyerID, itemID: itemID}
	if _, exists := s.interests[k]; exists {
		return false, nil
	}
	in := models.NewInterest(buyerID, itemID)
	in.DateMarked = s.now()
	s.interests[k] = *in
	return true, nil
}

func (s *Store) Remove(_ context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := pair{buyerID: buyerID, itemID: itemID}
	if _, ok := s.interests[k]; !ok {
		return false, nil
	}
	delete(s.interests, k)
	return true, nil
}

func (s *Store) HasMarked(_ context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.interests[pair{buyerID: buyerID, itemID: itemID}]
	return ok, nil
}

func (s *Store) ListForBuyer(_ context.Context, buyerID uuid.UUID) ([]*models.BuyerInterest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.BuyerInterest, 0)
	for k, in := range s.interests {
		if k.buyerID != buyerID {
			continue
		}
		it := s.items[k.itemID]
		out = append(out, &models.BuyerInterest{
			Interest:   in,
			Item:       *cloneItem(it),
			SellerName: s.names[it.SellerID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interest.DateMarked.After(out[j].Interest.DateMarked)
	})
	return out, nil
}

func (s *Store) ListForItem(_ context.Context, itemID uuid.UUID) ([]*models.ItemInterest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ItemInterest, 0)
	for k, in := range s.interests {
		if k.itemID != itemID {
			continue
		}
		out = append(out, &models.ItemInterest{Interest: in, BuyerName: s.names[k.buyerID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interest.DateMarked.After(out[j].Interest.DateMarked)
	})
	return out, nil
}

// collect returns clones of matching items, newest first. Callers hold s.mu.
func (s *Store) collect(match func(models.Item) bool) []*models.Item {
	out := make([]*models.Item, 0)
	for _, it := range s.items {
		if match(it) {
			out = append(out, cloneItem(it))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DatePosted.After(out[j].DatePosted)
	})
	return out
}

func cloneItem(it models.Item) *models.Item {
	if it.CategoryID != nil {
		c := *it.CategoryID
		it.CategoryID = &c
	}
	return &it
}
