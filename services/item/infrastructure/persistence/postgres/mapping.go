package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/infrastructure/persistence/postgres/db"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func rowToItem(row db.Item) *models.Item {
	item := &models.Item{
		ID:          row.ID,
		SellerID:    row.SellerID,
		Title:       models.Title(row.Title),
		Description: models.Description(row.Description),
		Price:       models.Price(row.PriceCents),
		ImageRef:    row.ImageRef.String,
		IsSold:      row.IsSold,
		DatePosted:  row.DatePosted.UTC(),
	}
	if row.CategoryID.Valid {
		id := row.CategoryID.Int32
		item.CategoryID = &id
	}
	return item
}

func rowsToItems(rows []db.Item) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}

func nullInt32(v *int32) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nowUTC() time.Time { return time.Now().UTC() }
