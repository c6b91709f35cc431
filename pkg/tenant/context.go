package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant binds a resolved tenant to the context. The binding is valid
// for the lifetime of one request and must never be shared across requests.
func WithTenant(ctx context.Context, tenant *Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, tenant)
}

// FromContext retrieves the tenant from the context.
// Returns nil, false if no tenant is bound.
func FromContext(ctx context.Context) (*Tenant, bool) {
	tenant, ok := ctx.Value(contextKey{}).(*Tenant)
	if !ok || tenant == nil {
		return nil, false
	}
	return tenant, true
}

// IDFromContext retrieves just the tenant ID from the context.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenant, ok := FromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return tenant.ID, true
}

// MustFromContext retrieves the tenant from the context and panics if none
// is bound. Use only in handlers mounted behind RequireTenant.
func MustFromContext(ctx context.Context) *Tenant {
	tenant, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return tenant
}

// LoggerExtractor returns a logger context extractor that adds the bound
// tenant's ID to every log record emitted within the request.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
