package tenants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gatherhq/eventkit/pkg/cache"
	"github.com/gatherhq/eventkit/pkg/tenant"
)

var (
	// ErrSubdomainTaken is returned when an active tenant already uses the subdomain.
	ErrSubdomainTaken = errors.New("subdomain already in use")

	// ErrSubdomainReserved is returned for subdomains the platform keeps for itself.
	ErrSubdomainReserved = errors.New("subdomain is reserved")
)

// reservedSubdomains are labels registration refuses. The host-based
// resolver does not consult this list; it only matters when a subdomain is
// claimed.
var reservedSubdomains = map[string]struct{}{
	"www":    {},
	"api":    {},
	"app":    {},
	"admin":  {},
	"mail":   {},
	"status": {},
}

// Store is the persistence surface for tenant administration.
type Store interface {
	BySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error)
	ListActive(ctx context.Context) ([]tenant.Tenant, error)
	Create(ctx context.Context, t *tenant.Tenant) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// Service handles tenant discovery and administration. Deactivation is the
// one place that flushes a tenant's entire cached state.
type Service struct {
	store  Store
	cache  *cache.Service
	logger *slog.Logger
}

func NewService(store Store, cacheSvc *cache.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cache: cacheSvc, logger: logger}
}

// List returns all active tenants. This backs the tenant discovery endpoint,
// which is reachable without a bound tenant.
func (s *Service) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.store.ListActive(ctx)
}

// Create registers a new active tenant. The subdomain is normalized to
// lowercase and must be DNS-safe, unreserved, and unused among active
// tenants.
func (s *Service) Create(ctx context.Context, name, subdomain string) (*tenant.Tenant, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))

	if err := tenant.ValidateSubdomain(subdomain); err != nil {
		return nil, err
	}
	if _, reserved := reservedSubdomains[subdomain]; reserved {
		return nil, ErrSubdomainReserved
	}

	if _, err := s.store.BySubdomain(ctx, subdomain); err == nil {
		return nil, ErrSubdomainTaken
	} else if !errors.Is(err, tenant.ErrTenantNotFound) {
		return nil, fmt.Errorf("check subdomain: %w", err)
	}

	t := &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Name:      strings.TrimSpace(name),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tenant created",
		slog.String("tenant_id", t.ID.String()),
		slog.String("subdomain", t.Subdomain))
	return t, nil
}

// Deactivate soft-deletes a tenant and flushes every cache entry under its
// prefix. A failed flush propagates: reporting success while stale tenant
// data remains cached would break the isolation contract.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Deactivate(ctx, id); err != nil {
		return err
	}

	if err := s.cache.RemoveByPrefix(ctx, cache.TenantPrefix(id)); err != nil {
		s.logger.ErrorContext(ctx, "failed to flush cache of deactivated tenant",
			slog.String("tenant_id", id.String()), slog.Any("error", err))
		return fmt.Errorf("flush tenant cache: %w", err)
	}

	s.logger.InfoContext(ctx, "tenant deactivated", slog.String("tenant_id", id.String()))
	return nil
}
