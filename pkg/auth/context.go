package auth

import (
	"context"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithIdentity adds a verified identity to the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext retrieves the verified identity from the context.
// Returns nil, false for anonymous requests.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
