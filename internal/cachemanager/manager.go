// Package cachemanager provides a small TTL cache and a read-through wrapper
// used for rendered template previews.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values by string key with a per-entry TTL.
type CacheManager[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
}
