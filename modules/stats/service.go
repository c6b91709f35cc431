package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gatherhq/eventkit/pkg/cache"
	"github.com/gatherhq/eventkit/pkg/tenant"
)

// EventSource supplies the live attendee snapshot and capacity cap for an
// event, already scoped to the current tenant by the persistence layer.
type EventSource interface {
	// Attendees returns the full attendee set of the event.
	Attendees(ctx context.Context, eventID uuid.UUID) ([]Attendee, error)

	// MaxCapacity returns the event's capacity cap, 0 meaning uncapped.
	MaxCapacity(ctx context.Context, eventID uuid.UUID) (int, error)
}

// Config holds the stats module configuration.
type Config struct {
	CacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"5m"` // CacheTTL bounds how long computed stats may be served stale.
}

// Service computes event statistics through the tenant-scoped cache. The
// cache key carries both the tenant and the event identifier, so the same
// event ID under two tenants can never share an entry.
type Service struct {
	source EventSource
	cache  *cache.Service
	ttl    time.Duration
}

func NewService(source EventSource, cacheSvc *cache.Service, cfg Config) *Service {
	return &Service{
		source: source,
		cache:  cacheSvc,
		ttl:    cfg.CacheTTL,
	}
}

// EventStats returns the occupancy and attendance figures for an event,
// served from cache when fresh. The request must carry a bound tenant.
func (s *Service) EventStats(ctx context.Context, eventID uuid.UUID) (EventStats, error) {
	tenantID, ok := tenant.IDFromContext(ctx)
	if !ok {
		return EventStats{}, tenant.ErrNoTenantInContext
	}

	return cache.GetOrCompute(ctx, s.cache, statsKey(tenantID, eventID), s.ttl,
		func(ctx context.Context) (EventStats, error) {
			return s.compute(ctx, eventID)
		})
}

// Invalidate evicts one event's cached stats for the current tenant. Call
// it after any registration change for the event.
func (s *Service) Invalidate(ctx context.Context, eventID uuid.UUID) error {
	tenantID, ok := tenant.IDFromContext(ctx)
	if !ok {
		return tenant.ErrNoTenantInContext
	}
	if err := s.cache.Remove(ctx, statsKey(tenantID, eventID)); err != nil {
		return fmt.Errorf("invalidate event stats: %w", err)
	}
	return nil
}

func (s *Service) compute(ctx context.Context, eventID uuid.UUID) (EventStats, error) {
	attendees, err := s.source.Attendees(ctx, eventID)
	if err != nil {
		return EventStats{}, fmt.Errorf("load attendees: %w", err)
	}
	capacity, err := s.source.MaxCapacity(ctx, eventID)
	if err != nil {
		return EventStats{}, fmt.Errorf("load capacity: %w", err)
	}
	return Compute(attendees, capacity), nil
}

func statsKey(tenantID, eventID uuid.UUID) string {
	return cache.TenantKey(tenantID, "event", eventID.String(), "stats")
}
