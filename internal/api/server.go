// Package api provides the HTTP server for the optimizer.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/napolitain/solver-slayer/internal/cache"
	"github.com/napolitain/solver-slayer/internal/config"
	"github.com/napolitain/solver-slayer/internal/sweep"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server is the optimizer HTTP API server.
type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	results *cache.Cache
	sweeper *sweep.Runner
}

// NewServer creates a new API server. A nil logger discards output.
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		results: cache.New(cfg.Cache.MaxEntries),
		sweeper: &sweep.Runner{Limit: cfg.Sweep.Concurrency, Logger: logger},
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if timeout := s.cfg.API.RequestTimeout(); timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/optimize", s.handleOptimize)
		r.Post("/sweep", s.handleSweep)
	})

	if s.cfg.API.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.API.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    http.StatusText(status),
		},
	})
}
