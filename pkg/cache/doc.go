// Package cache provides a read-through cache with tenant-scoped keys and
// prefix-based bulk eviction.
//
// Isolation is a key discipline, not an engine feature: every call site that
// stores tenant-specific data must build its key with TenantKey, which
// prefixes the tenant identifier. Evicting a whole tenant's cached state is
// done with RemoveByPrefix(TenantPrefix(id)) and nothing else. Global,
// non-tenant data lives under GlobalKey so its namespace can never collide
// with a tenant prefix.
//
// GetOrCompute deliberately provides no per-key mutual exclusion: two
// concurrent misses both invoke the producer and both write the result.
// For the read-mostly, cheap-to-recompute aggregates cached here that is an
// accepted trade-off; adding request coalescing would be a behavior change,
// not an optimization.
package cache
