package models

import (
	"time"

	"github.com/google/uuid"
)

// Interest records that a buyer wants a listing. At most one exists per
// (BuyerID, ItemID) pair.
type Interest struct {
	ID         uuid.UUID
	BuyerID    uuid.UUID
	ItemID     uuid.UUID
	DateMarked time.Time
}

// NewInterest stamps a fresh interest with the current time.
func NewInterest(buyerID, itemID uuid.UUID) *Interest {
	return &Interest{
		ID:         uuid.New(),
		BuyerID:    buyerID,
		ItemID:     itemID,
		DateMarked: time.Now().UTC(),
	}
}

// BuyerInterest is an interest seen from the buyer: the listing and its
// seller's display name.
type BuyerInterest struct {
	Interest   Interest
	Item       Item
	SellerName string
}

// ItemInterest is an interest seen from the seller: who is interested.
type ItemInterest struct {
	Interest  Interest
	BuyerName string
}
