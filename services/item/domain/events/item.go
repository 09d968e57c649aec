package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the item context.
const (
	TopicItemCreated = "item.created"
	TopicItemSold    = "item.sold"
	TopicItemDeleted = "item.deleted"
)

// Topics lists every topic the item context publishes.
func Topics() []string {
	return []string{TopicItemCreated, TopicItemSold, TopicItemDeleted}
}

// EventVersion is the current schema version of every item event.
const EventVersion = 1

// ItemCreatedEvent is published after a listing is persisted. It carries the
// full listing so consumers can warm read models without a query.
type ItemCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID      uuid.UUID `json:"item_id"`
	SellerID    uuid.UUID `json:"seller_id"`
	CategoryID  *int32    `json:"category_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	ImageRef    string    `json:"image_ref,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemSoldEvent is published when a seller marks a listing sold.
type ItemSoldEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after a listing and its interests are removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
