// Package server exposes the starmap engine over a small HTTP JSON API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/frontiermaps/starmap/pkg/engine"
	"github.com/frontiermaps/starmap/pkg/metrics"
)

// Server holds the HTTP interface and the reloadable engine service.
type Server struct {
	Service *engine.Service

	cfg        Config
	httpServer *http.Server
}

// NewServer wires the HTTP stack around an already-initialized Service.
func NewServer(svc *engine.Service, cfg Config) *Server {
	s := &Server{
		Service: svc,
		cfg:     cfg,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Recovery must be outermost to catch everything below it.
	var handler http.Handler = mux
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	s.publishStats()
	return s
}

// publishStats pushes the active generation's sizes into the gauges.
func (s *Server) publishStats() {
	st := s.Service.Current().Stats()
	metrics.SystemsTotal.Set(float64(st.Systems))
	metrics.GatesTotal.Set(float64(st.Gates))
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	slog.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown() {
	slog.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
}
