package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents one isolated customer partition with the minimal fields
// needed for request admission and display.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Store loads tenants from the data source. Every lookup matches active,
// non-deleted tenants only; subdomain uniqueness is guaranteed only within
// that set. All methods return ErrTenantNotFound when nothing matches.
type Store interface {
	// ByID retrieves an active tenant by its identifier.
	ByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// BySubdomain retrieves an active tenant by its subdomain.
	BySubdomain(ctx context.Context, subdomain string) (*Tenant, error)

	// AnyActive retrieves an arbitrary but stable active tenant. Used as the
	// development default on loopback hosts where no subdomain exists.
	AnyActive(ctx context.Context) (*Tenant, error)
}
