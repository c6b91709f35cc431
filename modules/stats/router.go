package stats

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gatherhq/eventkit/pkg/tenant"
)

// Router mounts the stats endpoints. Tenant resolution and the isolation
// guard are expected on the parent router; RequireTenant here makes the
// tenant requirement local and explicit.
//
//	r.Mount("/", stats.Router(svc))
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Use(tenant.RequireTenant())
	r.Get("/events/{eventID}/stats", handleEventStats(svc))
	return r
}

func handleEventStats(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
		if err != nil {
			http.Error(w, "Invalid event ID", http.StatusBadRequest)
			return
		}

		result, err := svc.EventStats(r.Context(), eventID)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}
