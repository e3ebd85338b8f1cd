package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
)

const DefaultExpiration = 10 * time.Minute
const DefaultCleanupInterval = 30 * time.Minute

// Stats counts lookups served by a cache.
type Stats struct {
	Hits   int64
	Misses int64
	Items  int
}

// InMemoryCacheManager is a go-cache backed CacheManager. Name identifies
// the cache in log lines.
type InMemoryCacheManager[V any] struct {
	name   string
	cache  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

var _ CacheManager[string] = (*InMemoryCacheManager[string])(nil)

// NewInMemoryCacheManager creates a cache whose entries default to
// defaultExpiration and are purged every cleanupInterval.
func NewInMemoryCacheManager[V any](name string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[V] {
	return &InMemoryCacheManager[V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an item from the cache by its key
func (c *InMemoryCacheManager[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V

	value, found := c.cache.Get(key)
	if !found {
		c.misses.Add(1)
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type in cache", "cache", c.name, "key", key)
		c.misses.Add(1)
		return zero, false
	}

	c.hits.Add(1)
	log.Debug(log.CatCache, "cache hit", "cache", c.name, "key", key)
	return v, true
}

// Set stores value under key for ttl.
func (c *InMemoryCacheManager[V]) Set(_ context.Context, key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes the given keys. Missing keys are ignored.
func (c *InMemoryCacheManager[V]) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
	if len(keys) > 0 {
		log.Debug(log.CatCache, "cache invalidated", "cache", c.name, "keys", keys)
	}
}

// Flush drops every entry.
func (c *InMemoryCacheManager[V]) Flush(_ context.Context) {
	c.cache.Flush()
}

// Stats returns the hit and miss counters and the current item count.
func (c *InMemoryCacheManager[V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Items:  c.cache.ItemCount(),
	}
}
