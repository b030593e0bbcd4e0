// Package api provides the HTTP surface for the portions service.
// It is a thin transport wrapper: every route maps onto one tracker
// operation, and all consistency logic lives behind the tracker's gate.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frp/ssnt-nutrition/internal/app/tracker"
	"github.com/frp/ssnt-nutrition/internal/domain"
	"github.com/frp/ssnt-nutrition/internal/infra/observability"
)

// Version is reported on /api/status.
const Version = "0.1.0"

// Server is the portions HTTP API server.
type Server struct {
	tracker        *tracker.Tracker
	metricsEnabled bool
	instanceID     string
}

// NewServer creates a new API server.
func NewServer(tr *tracker.Tracker) *Server {
	return &Server{tracker: tr, instanceID: uuid.NewString()}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// InstanceID returns the per-process server instance ID.
func (s *Server) InstanceID() string { return s.instanceID }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "portions is running",
			"version":  Version,
			"instance": s.instanceID,
		})
	})

	// Queries
	r.Get("/days/{date}/portions", s.handleQueryDay)
	r.Get("/goals", s.handleQueryGoals)

	// Commands
	r.Post("/days/{date}/portions/{nutrient}/consume", s.handleConsume)
	r.Post("/days/{date}/portions/{nutrient}/unconsume", s.handleUnconsume)
	r.Post("/goals/portions/{nutrient}/inc", s.handleIncGoal)
	r.Post("/goals/portions/{nutrient}/dec", s.handleDecGoal)

	// Raw event log introspection
	r.Get("/debug/events/days/{date}", s.handleDayLog)
	r.Get("/debug/events/goals", s.handleGoalLog)

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// respondError maps a tracker error onto the two-kind taxonomy: caller
// faults become 400 with their fixed reason; everything else is a store
// failure — logged server-side, reported generically.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var re *domain.RequestError
	if errors.As(err, &re) {
		writeError(w, http.StatusBadRequest, re.Error())
		return
	}
	observability.StoreFailures.Inc()
	log.Printf("[api] store failure: %v", err)
	writeError(w, http.StatusInternalServerError, "database error")
}

// corsMiddleware adds permissive CORS headers.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
