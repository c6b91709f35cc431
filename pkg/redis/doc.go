// Package redis provides the Redis connection bootstrap used by the cache
// layer: env-driven configuration, connect-with-retry, and a healthcheck
// suitable for readiness probes.
package redis
