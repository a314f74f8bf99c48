// Package dispatch exposes the dispatch engine over HTTP.
package dispatch

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	coredispatch "github.com/floodops/dispatch/core/dispatch"
	"github.com/floodops/dispatch/core/dispatch/audit"
	"github.com/floodops/dispatch/core/geo"
	"github.com/floodops/dispatch/core/kpi"
)

// NewRecommendationHandler serves GET /api/incidents/{id}/recommendations.
// An optional q parameter filters the candidate pool by free text.
func NewRecommendationHandler(svc *coredispatch.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		cands, err := svc.Recommend(r.Context(), id, r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cands)
	})
}

// NewAssignHandler serves POST /api/assignments.
func NewAssignHandler(svc *coredispatch.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req coredispatch.AssignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		a, err := svc.Assign(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	})
}

// NewAutoAssignHandler serves POST /api/assignments/auto.
func NewAutoAssignHandler(svc *coredispatch.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IncidentIDs []string `json:"incident_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		outcomes := svc.AutoAssign(r.Context(), req.IncidentIDs)
		writeJSON(w, http.StatusOK, struct {
			Requested int                    `json:"requested"`
			Outcomes  []coredispatch.Outcome `json:"outcomes"`
		}{Requested: len(req.IncidentIDs), Outcomes: outcomes})
	})
}

// NewKPIHandler serves GET /api/dispatch/kpis. Optional start and end query
// parameters (RFC3339) bound the reporting window.
func NewKPIHandler(store audit.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var from, to time.Time
		if s := r.URL.Query().Get("start"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid start time", http.StatusBadRequest)
				return
			}
			from = t
		}
		if s := r.URL.Query().Get("end"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid end time", http.StatusBadRequest)
				return
			}
			to = t
		}
		recs, err := store.List(r.Context(), from, to)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, kpi.Summarize(recs))
	})
}

// NewMux assembles the API routes. The KPI route is only registered when an
// audit store is configured.
func NewMux(svc *coredispatch.Service, auditStore audit.Store) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /api/incidents/{id}/recommendations", NewRecommendationHandler(svc))
	mux.Handle("POST /api/assignments", NewAssignHandler(svc))
	mux.Handle("POST /api/assignments/auto", NewAutoAssignHandler(svc))
	if auditStore != nil {
		mux.Handle("GET /api/dispatch/kpis", NewKPIHandler(auditStore))
	}
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, coredispatch.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, coredispatch.ErrInvalidInput), errors.Is(err, geo.ErrInvalidCoordinate):
		status = http.StatusBadRequest
	case errors.Is(err, coredispatch.ErrUnitNoLongerAvailable),
		errors.Is(err, coredispatch.ErrIncidentAlreadyAssigned):
		status = http.StatusConflict
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}
