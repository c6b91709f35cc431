package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Service is the read-through cache used for tenant-scoped values. Values
// are JSON-serialized into the backing store with a bounded TTL.
type Service struct {
	store  Store
	logger *slog.Logger
}

// Option configures the cache service.
type Option func(*Service)

// WithLogger sets the logger for cache-internal events (poisoned entries,
// store write failures). Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCompute returns the cached value under key, or invokes producer,
// stores the result with the given TTL, and returns it.
//
// An entry that fails to deserialize is evicted before recomputation so a
// poisoned value cannot serve stale bytes forever. A store read failure is
// treated as a miss; a store write failure is logged and the freshly
// computed value is still returned. Producer errors propagate unchanged and
// nothing is stored.
//
// There is no mutual exclusion across concurrent callers: two concurrent
// misses both invoke producer and both write, last write wins.
func GetOrCompute[T any](ctx context.Context, c *Service, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	var zero T

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		uerr := json.Unmarshal(data, &cached)
		if uerr == nil {
			return cached, nil
		}
		c.logger.WarnContext(ctx, "evicting poisoned cache entry",
			slog.String("key", key), slog.Any("error", uerr))
		if derr := c.store.Del(ctx, key); derr != nil {
			c.logger.WarnContext(ctx, "failed to evict poisoned cache entry",
				slog.String("key", key), slog.Any("error", derr))
		}
	case errors.Is(err, ErrCacheMiss):
		// fall through to producer
	default:
		c.logger.WarnContext(ctx, "cache read failed, computing directly",
			slog.String("key", key), slog.Any("error", err))
	}

	value, err := producer(ctx)
	if err != nil {
		return zero, err
	}

	data, err = json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to serialize cache value",
			slog.String("key", key), slog.Any("error", err))
		return value, nil
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}

// Remove unconditionally evicts one key.
func (c *Service) Remove(ctx context.Context, key string) error {
	return c.store.Del(ctx, key)
}

// RemoveByPrefix enumerates all keys beginning with prefix and deletes them
// as one batch. It fails with ErrScanUnsupported when the backing store
// cannot enumerate keys; the caller must know the invalidation did not
// happen.
//
// Enumeration and deletion are not transactional with concurrent writes: a
// key recreated between the scan and the delete survives until its TTL
// expires. Cached values carry bounded TTLs precisely so this window is
// tolerable.
func (c *Service) RemoveByPrefix(ctx context.Context, prefix string) error {
	scanner, ok := c.store.(KeyScanner)
	if !ok {
		return fmt.Errorf("remove by prefix %q: %w", prefix, ErrScanUnsupported)
	}

	keys, err := scanner.ScanKeys(ctx, prefix+"*")
	if err != nil {
		return fmt.Errorf("remove by prefix %q: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("remove by prefix %q: %w", prefix, err)
	}
	return nil
}
