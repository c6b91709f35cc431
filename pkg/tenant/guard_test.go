package tenant_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gatherhq/eventkit/pkg/auth"
	"github.com/gatherhq/eventkit/pkg/tenant"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	bind := func(req *http.Request, tn *tenant.Tenant, identity *auth.Identity) *http.Request {
		ctx := req.Context()
		if tn != nil {
			ctx = tenant.WithTenant(ctx, tn)
		}
		if identity != nil {
			ctx = auth.WithIdentity(ctx, identity)
		}
		return req.WithContext(ctx)
	}

	t.Run("matching claim passes", func(t *testing.T) {
		t.Parallel()

		acme := newTestTenant("acme")
		identity := &auth.Identity{UserID: uuid.New(), TenantID: acme.ID}

		handler := tenant.Guard()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := bind(httptest.NewRequest("GET", "/events", nil), acme, identity)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("mismatched claim is forbidden", func(t *testing.T) {
		t.Parallel()

		acme := newTestTenant("acme")
		identity := &auth.Identity{UserID: uuid.New(), TenantID: uuid.New()}

		var logBuf bytes.Buffer
		guard := tenant.Guard(tenant.WithLogger(slog.New(slog.NewTextHandler(&logBuf, nil))))

		handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		req := bind(httptest.NewRequest("GET", "/events", nil), acme, identity)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, logBuf.String(), "tenant isolation violation")
		assert.Contains(t, logBuf.String(), acme.ID.String())
	})

	t.Run("claim never substitutes the resolved tenant", func(t *testing.T) {
		t.Parallel()

		// Even a valid claim for another existing tenant must not redirect
		// the request there; the resolved tenant stays authoritative.
		acme := newTestTenant("acme")
		globex := newTestTenant("globex")
		identity := &auth.Identity{UserID: uuid.New(), TenantID: globex.ID}

		handler := tenant.Guard()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		req := bind(httptest.NewRequest("GET", "/events", nil), acme, identity)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous request passes", func(t *testing.T) {
		t.Parallel()

		handler := tenant.Guard()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := bind(httptest.NewRequest("GET", "/events", nil), newTestTenant("acme"), nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("identity without tenant claim passes", func(t *testing.T) {
		t.Parallel()

		identity := &auth.Identity{UserID: uuid.New()}

		handler := tenant.Guard()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := bind(httptest.NewRequest("GET", "/events", nil), newTestTenant("acme"), identity)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("tenant-less public request passes", func(t *testing.T) {
		t.Parallel()

		identity := &auth.Identity{UserID: uuid.New(), TenantID: uuid.New()}

		handler := tenant.Guard()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := bind(httptest.NewRequest("GET", "/auth/login", nil), nil, identity)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
