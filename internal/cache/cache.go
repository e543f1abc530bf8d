// Package cache is the read-through store for slow-changing reference data.
package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Store holds cached payloads by key. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Cache adds get-or-populate on top of a Store. Concurrent callers asking
// for the same missing key share a single fetch.
type Cache struct {
	store Store
	group singleflight.Group
	log   zerolog.Logger
}

// New wraps store. A nil store gets a fresh MemoryStore.
func New(store Store, log zerolog.Logger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Cache{store: store, log: log}
}

// Remember returns the cached value for key, or calls fetch and caches its
// result for ttl. Fetch errors are returned and never cached. Store failures
// are logged and treated as a miss.
func (c *Cache) Remember(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	if data, ok := c.lookup(ctx, key); ok {
		return data, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		// Shared by every waiting caller, so one caller cancelling must not
		// fail the others.
		ctx := context.WithoutCancel(ctx)
		if data, ok := c.lookup(ctx, key); ok {
			return data, nil
		}

		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, key, data, ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		c.log.Debug().Str("key", key).Msg("cache fill shared")
	}
	return v.([]byte), nil
}

// Forget removes keys from the store.
func (c *Cache) Forget(ctx context.Context, keys ...string) error {
	return c.store.Delete(ctx, keys...)
}

func (c *Cache) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}
	if ok {
		c.log.Debug().Str("key", key).Msg("cache hit")
	}
	return data, ok
}
