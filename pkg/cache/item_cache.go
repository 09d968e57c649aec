package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached listings.
	ItemCacheTTL = 24 * time.Hour
	// generationTTL outlives any cached hash written under an older generation.
	generationTTL = 2 * ItemCacheTTL

	itemCacheKeyPrefix = "item"
)

// CachedItem is the listing read model stored in Redis as a hash.
// CategoryID is nil when the listing has no category.
type CachedItem struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	CategoryID  *int32
	Title       string
	Description string
	PriceCents  int64
	ImageRef    string
	IsSold      bool
	DatePosted  time.Time
}

// ItemCache reads and writes listing cache entries.
// Key format: "item:{itemID}", invalidation counter "item:{itemID}:gen".
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached listing.
// Returns redis.Nil when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	item := &CachedItem{
		Title:       vals["title"],
		Description: vals["description"],
		ImageRef:    vals["image_ref"],
	}
	if item.ID, err = uuid.Parse(vals["id"]); err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	if item.SellerID, err = uuid.Parse(vals["seller_id"]); err != nil {
		return nil, fmt.Errorf("cache parse seller_id: %w", err)
	}
	if item.PriceCents, err = strconv.ParseInt(vals["price_cents"], 10, 64); err != nil {
		return nil, fmt.Errorf("cache parse price_cents: %w", err)
	}
	if item.IsSold, err = strconv.ParseBool(vals["is_sold"]); err != nil {
		return nil, fmt.Errorf("cache parse is_sold: %w", err)
	}
	if item.DatePosted, err = time.Parse(time.RFC3339Nano, vals["date_posted"]); err != nil {
		return nil, fmt.Errorf("cache parse date_posted: %w", err)
	}
	if raw := vals["category_id"]; raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("cache parse category_id: %w", err)
		}
		id := int32(n)
		item.CategoryID = &id
	}
	return item, nil
}

// Generation returns the invalidation counter of a listing, "" when it was
// never invalidated. Read it before loading the listing from the database and
// pass it to Set.
func (c *ItemCache) Generation(ctx context.Context, itemID uuid.UUID) (string, error) {
	gen, err := c.client.Client().Get(ctx, c.genKey(itemID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Set writes a listing as a Redis hash with ItemCacheTTL, but only while the
// listing's generation still equals gen. It reports false when a Delete ran
// in between, in which case nothing is written.
// The whole hash is replaced so stale fields never survive an update.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem, gen string) (bool, error) {
	key, genKey := c.key(item.ID), c.genKey(item.ID)
	categoryID := ""
	if item.CategoryID != nil {
		categoryID = strconv.FormatInt(int64(*item.CategoryID), 10)
	}

	written := false
	err := c.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key,
				"id", item.ID.String(),
				"seller_id", item.SellerID.String(),
				"category_id", categoryID,
				"title", item.Title,
				"description", item.Description,
				"price_cents", strconv.FormatInt(item.PriceCents, 10),
				"image_ref", item.ImageRef,
				"is_sold", strconv.FormatBool(item.IsSold),
				"date_posted", item.DatePosted.UTC().Format(time.RFC3339Nano),
			)
			pipe.Expire(ctx, key, ItemCacheTTL)
			return nil
		})
		if err == nil {
			written = true
		}
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return written, nil
}

// Delete removes a cached listing and bumps its generation, so a reader that
// loaded the listing before the delete cannot write it back.
// Deleting a missing key is not an error.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	genKey := c.genKey(itemID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, c.key(itemID))
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, generationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *ItemCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}

func (c *ItemCache) genKey(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:gen", itemCacheKeyPrefix, itemID)
}
