package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/simplemarket/pkg/database"
	categorydomain "github.com/ghuser/simplemarket/services/category/domain"
	"github.com/ghuser/simplemarket/services/category/domain/models"
	"github.com/ghuser/simplemarket/services/category/domain/repositories"
	"github.com/ghuser/simplemarket/services/category/infrastructure/persistence/postgres/db"
)

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db *database.Database
}

var _ repositories.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(database *database.Database) *CategoryRepository {
	return &CategoryRepository{db: database}
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]*models.Category, error) {
	rows, err := db.New(r.db.DB()).ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	out := make([]*models.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, &models.Category{ID: row.ID, Name: row.Name, Description: row.Description})
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int32) (*models.CategoryDetail, error) {
	q := db.New(r.db.DB())
	row, err := q.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, categorydomain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}

	itemRows, err := q.ListCategoryItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("query category items: %w", err)
	}
	items := make([]models.ItemSummary, 0, len(itemRows))
	for _, it := range itemRows {
		items = append(items, models.ItemSummary{
			ID:         it.ID,
			Title:      it.Title,
			PriceCents: it.PriceCents,
			IsSold:     it.IsSold,
			DatePosted: it.DatePosted.UTC(),
		})
	}

	return &models.CategoryDetail{
		Category: models.Category{ID: row.ID, Name: row.Name, Description: row.Description},
		Items:    items,
	}, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	id, err := db.New(r.db.DB()).InsertCategory(ctx, db.InsertCategoryParams{
		Name:        c.Name,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	c.ID = id
	return nil
}

// SeedDefaults holds a table lock while it checks for emptiness so two
// processes starting together cannot both seed.
func (r *CategoryRepository) SeedDefaults(ctx context.Context, defaults []models.Category) (int, error) {
	inserted := 0
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.LockCategories(ctx); err != nil {
			return fmt.Errorf("lock categories: %w", err)
		}
		count, err := q.CountCategories(ctx)
		if err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, c := range defaults {
			if _, err := q.InsertCategory(ctx, db.InsertCategoryParams{Name: c.Name, Description: c.Description}); err != nil {
				return fmt.Errorf("insert category %q: %w", c.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
