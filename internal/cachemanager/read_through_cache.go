package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zjrosen/gig/internal/log"
)

// Loader reads the value for key from the underlying source.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)

// ReadThroughCache serves values from cache and falls back to its loader on
// a miss, storing the result. Loader errors are never cached. A nil cache or
// a non-positive ttl turns every read into a load.
type ReadThroughCache[K comparable, V any] struct {
	cache  CacheManager[K, V]
	load   Loader[K, V]
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

func NewReadThroughCache[K comparable, V any](cache CacheManager[K, V], load Loader[K, V], ttl time.Duration) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{
		cache: cache,
		load:  load,
		ttl:   ttl,
	}
}

func (r *ReadThroughCache[K, V]) enabled() bool {
	return r.cache != nil && r.ttl > 0
}

// Get returns the value for key.
func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if !r.enabled() {
		return r.load(ctx, key)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		r.hits.Add(1)
		return value, nil
	}
	r.misses.Add(1)

	value, err := r.load(ctx, key)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, r.ttl)

	return value, nil
}

// GetAll returns the values for keys in key order. Cached values are taken
// in one lookup and only the rest are loaded. The first load error aborts.
func (r *ReadThroughCache[K, V]) GetAll(ctx context.Context, keys []K) ([]V, error) {
	values := make([]V, len(keys))

	var cached map[K]V
	if r.enabled() {
		cached, _ = r.cache.GetMultiple(ctx, keys)
	}

	for i, key := range keys {
		if v, ok := cached[key]; ok {
			r.hits.Add(1)
			values[i] = v
			continue
		}
		if r.enabled() {
			r.misses.Add(1)
		}

		v, err := r.load(ctx, key)
		if err != nil {
			return nil, err
		}
		if r.enabled() {
			r.cache.Set(ctx, key, v, r.ttl)
		}
		values[i] = v
	}

	log.Debug(log.CatCache, "read through", "keys", len(keys), "cached", len(cached))
	return values, nil
}

// Invalidate drops keys from the cache so the next read loads them again.
func (r *ReadThroughCache[K, V]) Invalidate(ctx context.Context, keys ...K) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Delete(ctx, keys...)
}

// Stats returns the hit and miss counts since creation. Reads with caching
// disabled count as neither.
func (r *ReadThroughCache[K, V]) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}
