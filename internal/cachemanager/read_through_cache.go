package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache answers from the cache and falls back to fn on a miss,
// storing successful results. Errors are never cached.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache CacheManager[K, V]
	fn    func(ctx context.Context, input I) (V, error)
	ttl   time.Duration
}

// NewReadThroughCache wraps fn with cache using ttl for new entries.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	ttl time.Duration,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, ttl: ttl}
}

// Get returns the cached value for key, or computes it from input.
// The second result reports whether the value came from the cache.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, bool, error) {
	if value, ok := r.cache.Get(ctx, key); ok {
		return value, true, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, false, err
	}

	r.cache.Set(ctx, key, value, r.ttl)
	return value, false, nil
}
