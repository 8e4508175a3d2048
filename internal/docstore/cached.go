package docstore

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached is a read-through decorator over another Store. Profile documents are
// read on every dashboard request, so a short TTL takes most of that load off
// the backend. Writes invalidate the cached entry rather than updating it;
// the next read repopulates from the source of truth.
type Cached struct {
	inner Store
	cache *gocache.Cache
}

// NewCached wraps inner with an in-process cache using the given TTL.
func NewCached(inner Store, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get serves from cache when possible, otherwise delegates and caches the
// encoded document.
func (c *Cached) Get(ctx context.Context, collection, id string, dest any) error {
	key := collection + "/" + id
	if raw, ok := c.cache.Get(key); ok {
		return json.Unmarshal(raw.([]byte), dest)
	}

	if err := c.inner.Get(ctx, collection, id, dest); err != nil {
		return err
	}
	if raw, err := json.Marshal(dest); err == nil {
		c.cache.Set(key, raw, gocache.DefaultExpiration)
	}
	return nil
}

// Set delegates and drops the cached entry on success.
func (c *Cached) Set(ctx context.Context, collection, id string, data any, merge bool) error {
	if err := c.inner.Set(ctx, collection, id, data, merge); err != nil {
		return err
	}
	c.cache.Delete(collection + "/" + id)
	return nil
}
