// Package api provides the HTTP surface for a running DeepWarren server:
// a health check, Prometheus metrics, and a Server-Sent-Events narration
// feed an out-of-scope GUI or terminal front-end can attach to. The
// player's actual interface is the CLI session runner dispatching
// Intents directly against the engine — this package never parses an
// Intent itself.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deepwarren/deepwarren/internal/health"
)

// Server is the DeepWarren HTTP server.
type Server struct {
	health         *health.Checker
	hub            *EventHub
	corsOrigins    []string
	metricsEnabled bool
}

// NewServer creates a new API server fronting the given health checker
// and narration event hub.
func NewServer(h *health.Checker, hub *EventHub, corsOrigins []string) *Server {
	return &Server{health: h, hub: hub, corsOrigins: corsOrigins}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(s.corsMiddleware)

	r.Get("/healthz", s.handleHealthz)

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/event-stream", s.handleEventStream)
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	statuses := s.health.Statuses()
	status := http.StatusOK
	if !s.health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"healthy": s.health.IsHealthy(),
		"checks":  statuses,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(s.corsOrigins) > 0 {
			origin = s.corsOrigins[0]
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
