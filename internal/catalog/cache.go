// Package catalog caches the full Shopify product catalog for short periods so
// bursts of searches and page renders do not each refetch it.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/stillhouse/site/internal/shopify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RedisKey holds the JSON-encoded catalog when Redis backs the cache.
const RedisKey = "stillhouse:catalog:products"

const localKey = "products"

// fetchTimeout bounds a shared fetch, which runs detached from the callers'
// contexts.
const fetchTimeout = 30 * time.Second

// Fetcher loads the catalog from the commerce backend.
type Fetcher interface {
	Configured() bool
	Products(ctx context.Context) ([]shopify.Product, error)
}

// Cache is a read-through cache in front of a Fetcher. With a zero TTL every
// call goes to the fetcher, although concurrent calls still share one fetch.
type Cache struct {
	src    Fetcher
	ttl    time.Duration
	rdb    *redis.Client
	local  *expirable.LRU[string, []shopify.Product]
	group  singleflight.Group
	logger *zap.Logger
}

type Option func(*Cache)

// WithRedis stores the catalog in Redis so every instance shares it.
func WithRedis(rdb *redis.Client) Option {
	return func(c *Cache) { c.rdb = rdb }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l.Named("CatalogCache")
		}
	}
}

func New(src Fetcher, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{src: src, ttl: ttl, logger: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	if c.rdb == nil && ttl > 0 {
		c.local = expirable.NewLRU[string, []shopify.Product](1, nil, ttl)
	}
	return c
}

func (c *Cache) Configured() bool {
	return c.src != nil && c.src.Configured()
}

// Products returns the cached catalog or fetches it. Fetch errors are never
// cached. Concurrent callers share one fetch; each stops waiting when its own
// ctx ends, while the fetch carries on for the others.
func (c *Cache) Products(ctx context.Context) ([]shopify.Product, error) {
	if products, ok := c.lookup(ctx); ok {
		return products, nil
	}
	ch := c.group.DoChan(localKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		products, err := c.src.Products(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store(fetchCtx, products)
		return products, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("catalog fetch shared with concurrent caller")
		}
		return res.Val.([]shopify.Product), nil
	}
}

// Invalidate drops the cached catalog.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c.local != nil {
		c.local.Purge()
	}
	if c.rdb != nil {
		return c.rdb.Del(ctx, RedisKey).Err()
	}
	return nil
}

func (c *Cache) lookup(ctx context.Context) ([]shopify.Product, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	if c.rdb == nil {
		return c.local.Get(localKey)
	}
	raw, err := c.rdb.Get(ctx, RedisKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var products []shopify.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("catalog cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return products, true
}

func (c *Cache) store(ctx context.Context, products []shopify.Product) {
	if c.ttl <= 0 {
		return
	}
	if c.rdb == nil {
		c.local.Add(localKey, products)
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, RedisKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}
