package repositories

import (
	"context"

	"github.com/ghuser/simplemarket/services/category/domain/models"
)

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	// ListAll returns every category ordered by name.
	ListAll(ctx context.Context) ([]*models.Category, error)
	// GetByID returns the category with the listings referencing it, newest
	// first, or domain.ErrCategoryNotFound.
	GetByID(ctx context.Context, id int32) (*models.CategoryDetail, error)
	// Create persists c and sets its ID.
	Create(ctx context.Context, c *models.Category) error
	// SeedDefaults inserts defaults only when no category exists and returns
	// how many were inserted.
	SeedDefaults(ctx context.Context, defaults []models.Category) (int, error)
}
