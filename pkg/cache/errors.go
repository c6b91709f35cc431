package cache

import "errors"

var (
	// ErrCacheMiss is returned by a Store when the key is absent.
	ErrCacheMiss = errors.New("cache miss")

	// ErrScanUnsupported is returned by RemoveByPrefix when the backing
	// store cannot enumerate keys server-side. Silently skipping the
	// eviction would leave stale tenant data behind, so the failure is loud.
	ErrScanUnsupported = errors.New("backing store does not support key enumeration")
)
