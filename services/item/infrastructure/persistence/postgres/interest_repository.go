package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/database"
	itemdomain "github.com/ghuser/simplemarket/services/item/domain"
	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
	"github.com/ghuser/simplemarket/services/item/infrastructure/persistence/postgres/db"
)

const interestItemForeignKey = "interests_item_id_fkey"

// InterestRepository implements repositories.InterestRepository against PostgreSQL.
// Uniqueness of (buyer_id, item_id) is the interests_buyer_item_key index.
type InterestRepository struct {
	db *database.Database
}

var _ repositories.InterestRepository = (*InterestRepository)(nil)

// NewInterestRepository returns an InterestRepository backed by the given pool.
func NewInterestRepository(database *database.Database) *InterestRepository {
	return &InterestRepository{db: database}
}

// Mark relies on ON CONFLICT DO NOTHING: zero affected rows means the pair
// already existed. A missing item violates the foreign key.
func (r *InterestRepository) Mark(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	in := models.NewInterest(buyerID, itemID)
	n, err := db.New(r.db.DB()).InsertInterest(ctx, db.InsertInterestParams{
		ID:         in.ID,
		BuyerID:    in.BuyerID,
		ItemID:     in.ItemID,
		DateMarked: in.DateMarked,
	})
	if err != nil {
		switch {
		case database.HasCode(err, database.CodeUniqueViolation):
			return false, nil
		case database.HasCode(err, database.CodeForeignKeyViolation) &&
			database.ConstraintName(err) == interestItemForeignKey:
			return false, itemdomain.ErrItemNotFound
		}
		return false, fmt.Errorf("insert interest: %w", err)
	}
	return n > 0, nil
}

func (r *InterestRepository) Remove(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	n, err := db.New(r.db.DB()).DeleteInterest(ctx, db.DeleteInterestParams{BuyerID: buyerID, ItemID: itemID})
	if err != nil {
		return false, fmt.Errorf("delete interest: %w", err)
	}
	return n > 0, nil
}

func (r *InterestRepository) HasMarked(ctx context.Context, buyerID, itemID uuid.UUID) (bool, error) {
	exists, err := db.New(r.db.DB()).InterestExists(ctx, db.InterestExistsParams{BuyerID: buyerID, ItemID: itemID})
	if err != nil {
		return false, fmt.Errorf("check interest: %w", err)
	}
	return exists, nil
}

func (r *InterestRepository) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*models.BuyerInterest, error) {
	rows, err := db.New(r.db.DB()).ListInterestsForBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("query buyer interests: %w", err)
	}
	out := make([]*models.BuyerInterest, len(rows))
	for i, row := range rows {
		out[i] = &models.BuyerInterest{
			Interest: models.Interest{
				ID:         row.ID,
				BuyerID:    row.BuyerID,
				ItemID:     row.ItemID,
				DateMarked: row.DateMarked,
			},
			Item: *rowToItem(db.Item{
				ID:          row.ItemID,
				SellerID:    row.SellerID,
				CategoryID:  row.CategoryID,
				Title:       row.Title,
				Description: row.Description,
				PriceCents:  row.PriceCents,
				ImageRef:    row.ImageRef,
				IsSold:      row.IsSold,
				DatePosted:  row.DatePosted,
			}),
			SellerName: row.SellerName,
		}
	}
	return out, nil
}

func (r *InterestRepository) ListForItem(ctx context.Context, itemID uuid.UUID) ([]*models.ItemInterest, error) {
	rows, err := db.New(r.db.DB()).ListInterestsForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("query item interests: %w", err)
	}
	out := make([]*models.ItemInterest, len(rows))
	for i, row := range rows {
		out[i] = &models.ItemInterest{
			Interest: models.Interest{
				ID:         row.ID,
				BuyerID:    row.BuyerID,
				ItemID:     row.ItemID,
				DateMarked: row.DateMarked,
			},
			BuyerName: row.BuyerName,
		}
	}
	return out, nil
}
