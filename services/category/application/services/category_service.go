package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ghuser/simplemarket/pkg/logger"
	categorydomain "github.com/ghuser/simplemarket/services/category/domain"
	"github.com/ghuser/simplemarket/services/category/domain/models"
	"github.com/ghuser/simplemarket/services/category/domain/repositories"
)

const listAllKey = "all"

// CategoryService serves categories. The full list changes rarely, so it is
// memoised in process and dropped whenever this process writes a category.
type CategoryService struct {
	repo  repositories.CategoryRepository
	cache *expirable.LRU[string, []models.Category]
	log   logger.Logger
}

// NewCategoryService memoises ListAll for ttl.
func NewCategoryService(repo repositories.CategoryRepository, ttl time.Duration, log logger.Logger) *CategoryService {
	return &CategoryService{
		repo:  repo,
		cache: expirable.NewLRU[string, []models.Category](1, nil, ttl),
		log:   log,
	}
}

// ListAll returns every category ordered by name.
func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	if cached, ok := s.cache.Get(listAllKey); ok {
		return append([]models.Category(nil), cached...), nil
	}

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]models.Category, 0, len(rows))
	for _, c := range rows {
		list = append(list, *c)
	}
	s.cache.Add(listAllKey, list)
	return append([]models.Category(nil), list...), nil
}

// GetByID returns the category with its listings, or ErrCategoryNotFound.
func (s *CategoryService) GetByID(ctx context.Context, id int32) (*models.CategoryDetail, error) {
	if id <= 0 {
		return nil, categorydomain.ErrCategoryNotFound
	}
	detail, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return detail, nil
}

// Create validates and stores a category. Names need not be unique.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	c, err := models.NewCategory(name, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", categorydomain.ErrInvalidCategory, err)
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	s.cache.Purge()
	s.log.InfoContext(ctx, "category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// SeedDefaults inserts the default categories into an empty store and
// reports how many were added.
func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.SeedDefaults(ctx, models.Defaults())
	if err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	if n > 0 {
		s.cache.Purge()
		s.log.InfoContext(ctx, "default categories seeded", "count", n)
	}
	return n, nil
}
