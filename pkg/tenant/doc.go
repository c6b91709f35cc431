// Package tenant binds every inbound request to exactly one tenant before
// any business logic runs, and enforces that an authenticated identity never
// operates against a tenant other than the one its credential was issued
// for.
//
// Resolution runs an ordered chain of independent sources, first match wins:
//
//  1. X-Tenant-ID header carrying a valid UUID of an active tenant.
//  2. X-Tenant header carrying the subdomain of an active tenant.
//  3. Loopback/development hosts fall back to any active tenant.
//  4. The first label of a host with at least three dot-separated labels is
//     treated as a subdomain candidate.
//
// When no source matches, the request is rejected with 404 unless its path
// is on a small allow-list of routes that may legitimately run tenant-less
// (authentication, tenant discovery). The resolved tenant travels through
// the request context only; there is no ambient "current tenant" state.
//
// Typical wiring:
//
//	r := chi.NewRouter()
//	r.Use(auth.Middleware(verifier))
//	r.Use(tenant.Middleware(store))
//	r.Use(tenant.Guard())
package tenant
