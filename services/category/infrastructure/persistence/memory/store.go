// Package memory is an in-process CategoryRepository for tests and local runs.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	categorydomain "github.com/ghuser/simplemarket/services/category/domain"
	"github.com/ghuser/simplemarket/services/category/domain/models"
	"github.com/ghuser/simplemarket/services/category/domain/repositories"
)

type Store struct {
	mu         sync.RWMutex
	nextID     int32
	categories map[int32]models.Category
	items      map[int32][]models.ItemSummary
}

var _ repositories.CategoryRepository = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		categories: make(map[int32]models.Category),
		items:      make(map[int32][]models.ItemSummary),
	}
}

// AttachItem records a listing under categoryID, standing in for the items
// table that references categories in Postgres.
func (s *Store) AttachItem(categoryID int32, item models.ItemSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[categoryID] = append(s.items[categoryID], item)
}

func (s *Store) ListAll(_ context.Context) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		c := c
		out = append(out, &c)
	}
	slices.SortFunc(out, compareCategories)
	return out, nil
}

// compareCategories matches ListAll's ORDER BY lower(name), name, id under the "C" collation.
func compareCategories(a, b *models.Category) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
		strings.Compare(a.Name, b.Name),
		cmp.Compare(a.ID, b.ID),
	)
}

func (s *Store) GetByID(_ context.Context, id int32) (*models.CategoryDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, categorydomain.ErrCategoryNotFound
	}
	items := append([]models.ItemSummary{}, s.items[id]...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DatePosted.After(items[j].DatePosted)
	})
	return &models.CategoryDetail{Category: c, Items: items}, nil
}

func (s *Store) Create(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insert(c)
	return nil
}

func (s *Store) SeedDefaults(_ context.Context, defaults []models.Category) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.categories) > 0 {
		return 0, nil
	}
	for _, c := range defaults {
		c := c
		s.insert(&c)
	}
	return len(defaults), nil
}

// insert assigns the next ID. Callers hold s.mu.
func (s *Store) insert(c *models.Category) {
	s.nextID++
	c.ID = s.nextID
	s.categories[c.ID] = *c
}
