package cache

import (
	"context"
	"time"
)

// Store is the minimal key-value surface the cache service needs: string
// keys, opaque serialized values, absolute TTL per entry.
type Store interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes the given keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
}

// KeyScanner is implemented by stores that can enumerate keys server-side.
// RemoveByPrefix requires it; a Store without it cannot do bulk eviction.
type KeyScanner interface {
	// ScanKeys returns all keys matching the glob-style pattern.
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
}
