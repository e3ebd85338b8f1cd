package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache loads missing values with fn and stores them in cache.
// Errors from fn are returned and never cached.
type ReadThroughCache[V any, I any] struct {
	cache CacheManager[V]
	fn    func(ctx context.Context, input I) (V, error)
	skip  bool
}

// NewReadThroughCache wraps cache. When skip is true every call goes to fn.
func NewReadThroughCache[V any, I any](
	cache CacheManager[V],
	fn func(ctx context.Context, input I) (V, error),
	skip bool,
) *ReadThroughCache[V, I] {
	return &ReadThroughCache[V, I]{cache: cache, fn: fn, skip: skip}
}

// Get returns the cached value for key or computes it from input.
func (r *ReadThroughCache[V, I]) Get(ctx context.Context, key string, input I, ttl time.Duration) (V, error) {
	if r.skip {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}
