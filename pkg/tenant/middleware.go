package tenant

import (
	"net/http"
	"strings"
)

// Middleware resolves the tenant for every inbound request and binds it to
// the request context before any handler runs.
//
// When no source matches, requests to public paths continue with no tenant
// bound; everything else is rejected with the not-found response. Store
// failures abort the request; there is no partial admission.
func Middleware(store Store, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved, err := Resolve(r, store, cfg.sources...)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if resolved == nil {
				if isPublicPath(r.URL.Path, cfg.publicPaths) {
					next.ServeHTTP(w, r)
					return
				}
				cfg.errorHandler(w, r, ErrTenantNotFound)
				return
			}

			ctx := WithTenant(r.Context(), resolved)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant rejects requests that reach it without a bound tenant. Mount
// it on routes that must never run tenant-less, even behind a resolver
// configured with public paths.
func RequireTenant(opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				cfg.errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isPublicPath matches prefix-based and case-sensitive; mixed-case requests
// to public routes are deliberately not normalized.
func isPublicPath(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
