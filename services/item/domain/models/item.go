package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a listing offered by one seller. SellerID never changes after
// creation and IsSold only moves from false to true.
type Item struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	CategoryID  *int32 // nil when uncategorised or the category was deleted
	Title       Title
	Description Description
	Price       Price
	ImageRef    string // opaque reference to an externally stored image
	IsSold      bool
	DatePosted  time.Time
}

// ItemDetails holds the mutable listing fields shared by create and update.
type ItemDetails struct {
	Title       Title
	Description Description
	Price       Price
	CategoryID  *int32
	ImageRef    string
}

// NewItem builds an unsold listing owned by sellerID, stamped with the current time.
func NewItem(sellerID uuid.UUID, d ItemDetails) *Item {
	item := &Item{
		ID:         uuid.New(),
		SellerID:   sellerID,
		DatePosted: time.Now().UTC(),
	}
	item.Apply(d)
	return item
}

// Apply replaces the mutable fields. Identity, seller, post date and sold
// state are left untouched.
func (i *Item) Apply(d ItemDetails) {
	i.Title = d.Title
	i.Description = d.Description
	i.Price = d.Price
	i.CategoryID = d.CategoryID
	i.ImageRef = d.ImageRef
}

// IsOwnedBy reports whether userID is the listing's seller.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.SellerID == userID
}
