// Package cachemanager caches values read from slow sources, such as template
// bodies read from the corpus filesystem.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values by key with a per-entry TTL.
type CacheManager[K comparable, V any] interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key K) (V, bool)
	// GetMultiple returns the present subset of keys; false when none are.
	GetMultiple(ctx context.Context, keys []K) (map[K]V, bool)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
