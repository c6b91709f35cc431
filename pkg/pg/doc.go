// Package pg provides the PostgreSQL connection bootstrap: env-driven pool
// configuration, connect-with-retry, and a healthcheck. The tenant store is
// its primary consumer.
package pg
