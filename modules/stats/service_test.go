package stats_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/eventkit/modules/stats"
	"github.com/gatherhq/eventkit/pkg/cache"
	"github.com/gatherhq/eventkit/pkg/tenant"
)

// mockSource serves fixed snapshots and counts how often it is read.
type mockSource struct {
	mu        sync.Mutex
	attendees map[uuid.UUID][]stats.Attendee
	capacity  map[uuid.UUID]int
	reads     int
}

func newMockSource() *mockSource {
	return &mockSource{
		attendees: make(map[uuid.UUID][]stats.Attendee),
		capacity:  make(map[uuid.UUID]int),
	}
}

func (m *mockSource) Attendees(ctx context.Context, eventID uuid.UUID) ([]stats.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.attendees[eventID], nil
}

func (m *mockSource) MaxCapacity(ctx context.Context, eventID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capacity[eventID], nil
}

func (m *mockSource) readCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

func setupService(t *testing.T) (*mockSource, *stats.Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	source := newMockSource()
	svc := stats.NewService(source, cache.New(cache.NewRedisStore(client)), stats.Config{CacheTTL: 5 * time.Minute})
	return source, svc, mr
}

func tenantCtx(id uuid.UUID) context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{ID: id, Subdomain: "acme", Active: true})
}

func TestServiceEventStats(t *testing.T) {
	t.Parallel()

	t.Run("computes and caches", func(t *testing.T) {
		t.Parallel()

		source, svc, _ := setupService(t)
		eventID := uuid.New()
		source.attendees[eventID] = []stats.Attendee{
			{ID: uuid.New(), EventID: eventID, Status: stats.StatusConfirmed},
			{ID: uuid.New(), EventID: eventID, Status: stats.StatusConfirmed, Attended: true},
		}
		source.capacity[eventID] = 4

		ctx := tenantCtx(uuid.New())

		first, err := svc.EventStats(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, 2, first.Confirmed)
		assert.Equal(t, 2, first.AvailableCapacity)
		assert.InDelta(t, 50.0, first.FillRate, 0.001)

		second, err := svc.EventStats(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, source.readCount(), "second call must be served from cache")
	})

	t.Run("requires a bound tenant", func(t *testing.T) {
		t.Parallel()

		_, svc, _ := setupService(t)
		_, err := svc.EventStats(context.Background(), uuid.New())
		assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)
	})

	t.Run("tenants never share an entry for the same event", func(t *testing.T) {
		t.Parallel()

		source, svc, _ := setupService(t)
		eventID := uuid.New()
		source.attendees[eventID] = []stats.Attendee{
			{ID: uuid.New(), EventID: eventID, Status: stats.StatusConfirmed},
		}

		ctxA := tenantCtx(uuid.New())
		ctxB := tenantCtx(uuid.New())

		_, err := svc.EventStats(ctxA, eventID)
		require.NoError(t, err)
		_, err = svc.EventStats(ctxB, eventID)
		require.NoError(t, err)

		assert.Equal(t, 2, source.readCount(), "each tenant computes its own entry")
	})

	t.Run("invalidate forces recomputation", func(t *testing.T) {
		t.Parallel()

		source, svc, _ := setupService(t)
		eventID := uuid.New()
		source.attendees[eventID] = []stats.Attendee{
			{ID: uuid.New(), EventID: eventID, Status: stats.StatusWaiting},
		}

		ctx := tenantCtx(uuid.New())

		before, err := svc.EventStats(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, 0, before.Confirmed)

		// Registration confirmed: snapshot changes, cache is now stale.
		source.mu.Lock()
		source.attendees[eventID][0].Status = stats.StatusConfirmed
		source.mu.Unlock()

		require.NoError(t, svc.Invalidate(ctx, eventID))

		after, err := svc.EventStats(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, 1, after.Confirmed)
	})

	t.Run("invalidate requires a bound tenant", func(t *testing.T) {
		t.Parallel()

		_, svc, _ := setupService(t)
		err := svc.Invalidate(context.Background(), uuid.New())
		assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)
	})
}
