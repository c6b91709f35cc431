package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ErrNoIdentity is returned by an IdentityProvider when the request carries
// no credentials. It is not an authentication failure; the request simply
// proceeds unauthenticated.
var ErrNoIdentity = errors.New("no identity on request")

// Identity is the already-verified subject of a request. TenantID is the
// tenant claim embedded in the credential at issuance time; uuid.Nil means
// the credential carries no tenant claim.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email,omitempty"`
}

// IdentityProvider extracts and verifies the identity from a request.
// Implementations wrap whatever verifier the deployment uses. Returning
// ErrNoIdentity means "anonymous request"; any other error means the
// credential was present but invalid.
type IdentityProvider func(r *http.Request) (*Identity, error)

// Middleware attaches the verified identity to the request context when one
// is present. Anonymous requests pass through untouched; invalid credentials
// are rejected with 401 before any handler runs.
func Middleware(provider IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := provider(r)
			if err != nil {
				if errors.Is(err, ErrNoIdentity) {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
