// Package server exposes the live channel cache over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voyagen/livechannels/internal/config"
	"github.com/voyagen/livechannels/internal/service"
)

// RefreshQueue hands forced refreshes to background workers.
type RefreshQueue interface {
	EnqueueRefresh(ctx context.Context, sourceKey string) error
}

// Server holds dependencies for the HTTP API.
type Server struct {
	live   *service.LiveChannels
	cfg    *config.Config
	queue  RefreshQueue // nil runs forced refreshes inline
	logger *slog.Logger
	router chi.Router
}

// New creates a Server and registers routes. queue may be nil.
func New(live *service.LiveChannels, cfg *config.Config, queue RefreshQueue, logger *slog.Logger) *Server {
	srv := &Server{live: live, cfg: cfg, queue: queue, logger: logger}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.withLogging)
	r.Use(s.withRecover)
	r.Use(withCORS)

	r.Get("/channels", s.handleGetChannels)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/live", func(r chi.Router) {
			r.Get("/channels", s.handleGetChannels)
			r.Post("/channels/refresh", s.handleRefreshChannels)
			r.Get("/sources", s.handleListSources)
			r.Put("/sources", s.handleReplaceSources)
		})

		r.Get("/docs", handleSwaggerUI)
		r.Get("/docs/openapi.yaml", handleOpenAPISpec)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured port.
// It blocks until the server is shut down or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := ":" + s.cfg.ServerPort
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.cfg.FetchTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown", "error", err)
		}
	}()

	s.logger.Info("listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	return nil
}
