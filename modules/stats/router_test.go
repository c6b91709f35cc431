package stats_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/eventkit/modules/stats"
	"github.com/gatherhq/eventkit/pkg/auth"
	"github.com/gatherhq/eventkit/pkg/cache"
	"github.com/gatherhq/eventkit/pkg/tenant"
)

// singleTenantStore resolves exactly one tenant, enough to exercise the
// admission pipeline end to end.
type singleTenantStore struct {
	tenant *tenant.Tenant
}

func (s *singleTenantStore) ByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	if s.tenant.ID == id {
		return s.tenant, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *singleTenantStore) BySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	if s.tenant.Subdomain == subdomain {
		return s.tenant, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *singleTenantStore) AnyActive(ctx context.Context) (*tenant.Tenant, error) {
	return s.tenant, nil
}

func setupRouter(t *testing.T, identity *auth.Identity) (*chi.Mux, *tenant.Tenant, uuid.UUID) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	acme := &tenant.Tenant{ID: uuid.New(), Subdomain: "acme", Name: "Acme", Active: true}
	eventID := uuid.New()

	source := newMockSource()
	source.attendees[eventID] = []stats.Attendee{
		{ID: uuid.New(), EventID: eventID, Status: stats.StatusConfirmed},
	}
	source.capacity[eventID] = 10

	svc := stats.NewService(source, cache.New(cache.NewRedisStore(client)), stats.Config{CacheTTL: time.Minute})

	provider := func(r *http.Request) (*auth.Identity, error) {
		if identity == nil {
			return nil, auth.ErrNoIdentity
		}
		return identity, nil
	}

	r := chi.NewRouter()
	r.Use(auth.Middleware(provider))
	r.Use(tenant.Middleware(&singleTenantStore{tenant: acme}))
	r.Use(tenant.Guard())
	r.Mount("/", stats.Router(svc))

	return r, acme, eventID
}

func TestRouter(t *testing.T) {
	t.Parallel()

	t.Run("serves stats for the resolved tenant", func(t *testing.T) {
		t.Parallel()

		router, acme, eventID := setupRouter(t, nil)

		req := httptest.NewRequest("GET", "/events/"+eventID.String()+"/stats", nil)
		req.Header.Set(tenant.HeaderTenantID, acme.ID.String())
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var got stats.EventStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Confirmed)
		assert.Equal(t, 9, got.AvailableCapacity)
	})

	t.Run("unresolved tenant is rejected before the handler", func(t *testing.T) {
		t.Parallel()

		router, _, eventID := setupRouter(t, nil)

		req := httptest.NewRequest("GET", "/events/"+eventID.String()+"/stats", nil)
		req.Host = "unknown.events.example.com"
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cross-tenant identity is forbidden", func(t *testing.T) {
		t.Parallel()

		intruder := &auth.Identity{UserID: uuid.New(), TenantID: uuid.New()}
		router, acme, eventID := setupRouter(t, intruder)

		req := httptest.NewRequest("GET", "/events/"+eventID.String()+"/stats", nil)
		req.Header.Set(tenant.HeaderTenantID, acme.ID.String())
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid event id", func(t *testing.T) {
		t.Parallel()

		router, acme, _ := setupRouter(t, nil)

		req := httptest.NewRequest("GET", "/events/not-a-uuid/stats", nil)
		req.Header.Set(tenant.HeaderTenantID, acme.ID.String())
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
