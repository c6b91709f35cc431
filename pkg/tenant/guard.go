package tenant

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gatherhq/eventkit/pkg/auth"
)

// Guard verifies that an authenticated identity's tenant claim matches the
// tenant resolved for the request. It must run after Middleware.
//
// The claim is verification-only: it never selects a tenant, so a forged or
// stale claim cannot redirect a request to another tenant's data. A mismatch
// is answered with 403 and logged as a security-relevant event; the handler
// never runs. Anonymous requests, identities without a tenant claim, and
// tenant-less public-path requests all pass through.
func Guard(opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok || identity.TenantID == uuid.Nil {
				next.ServeHTTP(w, r)
				return
			}

			current, ok := FromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if identity.TenantID != current.ID {
				cfg.logger.LogAttrs(r.Context(), slog.LevelWarn,
					"tenant isolation violation",
					slog.String("resolved_tenant_id", current.ID.String()),
					slog.String("claimed_tenant_id", identity.TenantID.String()),
					slog.String("user_id", identity.UserID.String()),
					slog.String("path", r.URL.Path),
				)
				cfg.errorHandler(w, r, ErrTenantMismatch)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
