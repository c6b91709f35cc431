package tenants

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gatherhq/eventkit/pkg/tenant"
)

// Router mounts tenant discovery and administration endpoints. The listing
// endpoint is deliberately reachable without a bound tenant; the parent
// router's resolver allow-lists the /tenants prefix for that reason.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Get("/", handleList(svc))
	r.Post("/", handleCreate(svc))
	r.Delete("/{tenantID}", handleDeactivate(svc))
	return r
}

type createRequest struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

func handleList(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenants, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if tenants == nil {
			tenants = []tenant.Tenant{}
		}
		respondJSON(w, http.StatusOK, tenants)
	}
}

func handleCreate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), req.Name, req.Subdomain)
		if err != nil {
			switch {
			case errors.Is(err, tenant.ErrInvalidSubdomain), errors.Is(err, ErrSubdomainReserved):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrSubdomainTaken):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

func handleDeactivate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "tenantID"))
		if err != nil {
			http.Error(w, "Invalid tenant ID", http.StatusBadRequest)
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			if errors.Is(err, tenant.ErrTenantNotFound) {
				http.Error(w, "Tenant not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
