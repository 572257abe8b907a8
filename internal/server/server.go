// Package server exposes the resolved deployment environment over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/icpkit/canisterenv/internal/envsynth"
	"github.com/icpkit/canisterenv/internal/resolver"
)

// Environment is the read-only view of the resolution pipeline the
// server needs. *canisterenv.Tool satisfies this.
type Environment interface {
	Resolve(ctx context.Context, network string) (resolver.Mapping, error)
	Generate(ctx context.Context, network string) (envsynth.Vars, error)
}

// Server serves the environment for one network.
type Server struct {
	env     Environment
	network string
	metrics *Metrics
	logger  *slog.Logger
	handler http.Handler
}

// New creates the server. The registry backs /metrics; pass a fresh
// prometheus.NewRegistry() unless sharing one.
func New(env Environment, network string, reg *prometheus.Registry, logger *slog.Logger) *Server {
	s := &Server{
		env:     env,
		network: network,
		metrics: NewMetrics(reg),
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/v1/env", s.handleEnv)
	r.Get("/api/v1/canisters", s.handleCanisters)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.handler = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics exposes the collectors so the sync loop can record cycles
// against the same registry.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEnv(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars, err := s.env.Generate(r.Context(), s.network)
	s.metrics.ObserveResolve(start, err)
	if err != nil {
		s.logger.Error("Env generation failed", "network", s.network, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, vars)
}

func (s *Server) handleCanisters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	mapping, err := s.env.Resolve(r.Context(), s.network)
	s.metrics.ObserveResolve(start, err)
	if err != nil {
		s.logger.Error("Resolution failed", "network", s.network, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, mapping)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
