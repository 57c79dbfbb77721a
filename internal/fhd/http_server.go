// Package fhd exposes pipeline results over HTTP: topology, aggregated
// traffic, the congestion dashboard, and capacity estimation. The service
// only schedules pipeline runs and shapes responses; all analytics live in
// the core packages.
package fhd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/capacity"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/pipeline"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
)

type HTTPServer struct {
	mux       *http.ServeMux
	store     *SnapshotStore
	estimator *capacity.Estimator
}

func NewHTTPServer(store *SnapshotStore, estimator *capacity.Estimator) *HTTPServer {
	s := &HTTPServer{
		mux:       http.NewServeMux(),
		store:     store,
		estimator: estimator,
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/process", s.handleProcess)
	s.mux.HandleFunc("/v1/topology", s.handleTopology)
	s.mux.HandleFunc("/v1/traffic", s.handleTraffic)
	s.mux.HandleFunc("/v1/dashboard", s.handleDashboard)
	s.mux.HandleFunc("/v1/capacity", s.handleCapacity)

	return s
}

// Handler returns the route handler wrapped with the permissive CORS
// policy the dashboard frontend expects.
func (s *HTTPServer) Handler() http.Handler {
	return withCORS(s.mux)
}

// withCORS allows any origin and answers preflight requests directly
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleProcess forces a fresh pipeline run
func (s *HTTPServer) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap, err := s.store.Refresh(r.Context())
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"run_id":          snap.RunID,
		"source":          snap.Source,
		"cells":           len(snap.CellIDs),
		"link_capacities": snap.LinkCapacities,
	})
}

func (s *HTTPServer) handleTopology(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap, err := s.store.Latest(r.Context())
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap.Topology)
}

func (s *HTTPServer) handleTraffic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap, err := s.store.Latest(r.Context())
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap.Traffic)
}

func (s *HTTPServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap, err := s.store.Latest(r.Context())
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap.DashboardView())
}

// handleCapacity estimates required capacity for every observed link peak.
// The with_buffer query parameter defaults to true.
func (s *HTTPServer) handleCapacity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	withBuffer := true
	if raw := r.URL.Query().Get("with_buffer"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "with_buffer must be a boolean")
			return
		}
		withBuffer = parsed
	}

	snap, err := s.store.Latest(r.Context())
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"with_buffer":     withBuffer,
		"estimates":       s.estimator.EstimateAll(snap.LinkCapacities, withBuffer),
		"link_capacities": snap.LinkCapacities,
	})
}

// writeRunError maps pipeline failures to HTTP statuses
func (s *HTTPServer) writeRunError(w http.ResponseWriter, err error) {
	logger.Error("pipeline run failed", "error", err)
	if errors.Is(err, pipeline.ErrNoInput) {
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
