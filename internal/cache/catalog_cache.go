// Package cache holds the redis cache-aside layer for the storefront
// catalog. The published product list is the hottest read in the
// system; everything else goes straight to postgres.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"go-storefront-api/internal/model"
)

const publishedKey = "catalog:published"

// CatalogCache caches the published product listing. A nil cache is
// valid and always misses, so redis stays optional in development.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(addr string, ttl time.Duration) *CatalogCache {
	if addr == "" {
		return nil
	}
	return &CatalogCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// GetPublished returns the cached listing and whether it was present.
func (c *CatalogCache) GetPublished(ctx context.Context) ([]model.Product, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, publishedKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetPublished stores the listing with the configured TTL. Failures are
// ignored: the cache is an optimization, not a source of truth.
func (c *CatalogCache) SetPublished(ctx context.Context, products []model.Product) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, publishedKey, raw, c.ttl)
}

// Invalidate drops the cached listing after any catalog mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, publishedKey)
}
