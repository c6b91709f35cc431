package tenant_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gatherhq/eventkit/pkg/tenant"
)

// mockStore is an in-memory Store for tests. Only active tenants are
// returned, mirroring the production store contract.
type mockStore struct {
	mu      sync.Mutex
	tenants []*tenant.Tenant
	err     error // forced error for failure paths
}

func newMockStore(tenants ...*tenant.Tenant) *mockStore {
	return &mockStore{tenants: tenants}
}

func (s *mockStore) ByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.tenants {
		if t.Active && t.ID == id {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *mockStore) BySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.tenants {
		if t.Active && t.Subdomain == subdomain {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *mockStore) AnyActive(ctx context.Context) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.tenants {
		if t.Active {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func newTestTenant(subdomain string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Name:      subdomain,
		Active:    true,
		CreatedAt: time.Now(),
	}
}
