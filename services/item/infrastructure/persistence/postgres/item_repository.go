package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/database"
	"github.com/ghuser/simplemarket/pkg/events"
	itemdomain "github.com/ghuser/simplemarket/services/item/domain"
	domainevents "github.com/ghuser/simplemarket/services/item/domain/events"
	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
	"github.com/ghuser/simplemarket/services/item/infrastructure/persistence/postgres/db"
)

const categoryForeignKey = "items_category_id_fkey"

var errUnknownCategory = fmt.Errorf("%w: category does not exist", itemdomain.ErrInvalidItem)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given pool. When
// bus is non-nil, create, sold and delete publish their event in the same
// transaction as the write.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

func (r *ItemRepository) ListAvailable(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListAvailableItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query available items: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *ItemRepository) Search(ctx context.Context, q repositories.SearchQuery) ([]*models.Item, error) {
	categoryID := q.CategoryID
	if categoryID < 0 {
		categoryID = 0
	}
	rows, err := db.New(r.db.DB()).SearchAvailableItems(ctx, db.SearchAvailableItemsParams{
		Pattern:    escapeLike(strings.TrimSpace(q.Term)),
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

func (r *ItemRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItemsBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("query seller items: %w", err)
	}
	return rowsToItems(rows), nil
}

// Create inserts the listing and publishes ItemCreatedEvent within one transaction.
// An unknown category surfaces as ErrInvalidItem.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			ID:          item.ID,
			SellerID:    item.SellerID,
			CategoryID:  nullInt32(item.CategoryID),
			Title:       item.Title.String(),
			Description: item.Description.String(),
			PriceCents:  item.Price.Cents(),
			ImageRef:    nullString(item.ImageRef),
			IsSold:      item.IsSold,
			DatePosted:  item.DatePosted,
		}); err != nil {
			if isUnknownCategory(err) {
				return errUnknownCategory
			}
			return fmt.Errorf("insert item: %w", err)
		}

		return r.publish(ctx, tx, domainevents.TopicItemCreated, func(eventID uuid.UUID) any {
			return domainevents.ItemCreatedEvent{
				EventID:     eventID,
				Version:     domainevents.EventVersion,
				ItemID:      item.ID,
				SellerID:    item.SellerID,
				CategoryID:  item.CategoryID,
				Title:       item.Title.String(),
				Description: item.Description.String(),
				PriceCents:  item.Price.Cents(),
				ImageRef:    item.ImageRef,
				OccurredAt:  item.DatePosted,
			}
		})
	})
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) (bool, error) {
	n, err := db.New(r.db.DB()).UpdateItem(ctx, db.UpdateItemParams{
		ID:          item.ID,
		Title:       item.Title.String(),
		Description: item.Description.String(),
		PriceCents:  item.Price.Cents(),
		CategoryID:  nullInt32(item.CategoryID),
		ImageRef:    nullString(item.ImageRef),
	})
	if err != nil {
		if isUnknownCategory(err) {
			return false, errUnknownCategory
		}
		return false, fmt.Errorf("update item: %w", err)
	}
	return n > 0, nil
}

// Delete removes the listing; interests go with it through ON DELETE CASCADE.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var removed bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetItemByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("query item: %w", err)
		}

		n, err := q.DeleteItem(ctx, id)
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if removed = n > 0; !removed {
			return nil
		}

		return r.publish(ctx, tx, domainevents.TopicItemDeleted, func(eventID uuid.UUID) any {
			return domainevents.ItemDeletedEvent{
				EventID:    eventID,
				Version:    domainevents.EventVersion,
				ItemID:     row.ID,
				SellerID:   row.SellerID,
				OccurredAt: nowUTC(),
			}
		})
	})
	return removed, err
}

// MarkSold flags the listing sold and publishes ItemSoldEvent. A listing that
// was already sold still matches and publishes again; consumers are idempotent.
func (r *ItemRepository) MarkSold(ctx context.Context, id uuid.UUID) (bool, error) {
	var matched bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		n, err := q.MarkItemSold(ctx, id)
		if err != nil {
			return fmt.Errorf("mark item sold: %w", err)
		}
		if matched = n > 0; !matched {
			return nil
		}

		row, err := q.GetItemByID(ctx, id)
		if err != nil {
			return fmt.Errorf("query sold item: %w", err)
		}
		return r.publish(ctx, tx, domainevents.TopicItemSold, func(eventID uuid.UUID) any {
			return domainevents.ItemSoldEvent{
				EventID:    eventID,
				Version:    domainevents.EventVersion,
				ItemID:     row.ID,
				SellerID:   row.SellerID,
				Title:      row.Title,
				OccurredAt: nowUTC(),
			}
		})
	})
	return matched, err
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, build func(eventID uuid.UUID) any) error {
	if r.bus == nil {
		return nil
	}
	eventID := uuid.New()
	msg, err := events.NewEventMessage(eventID, domainevents.EventVersion, build(eventID))
	if err != nil {
		return err
	}
	if err := r.bus.PublishTx(ctx, tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func isUnknownCategory(err error) bool {
	return database.HasCode(err, database.CodeForeignKeyViolation) &&
		database.ConstraintName(err) == categoryForeignKey
}
