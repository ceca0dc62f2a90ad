// Package api provides the HTTP REST API for agrisearch.
//
// Endpoints:
//
//	POST /api/ai/search          → answer a cultivation question
//	GET  /api/ai/search/history  → recent Q&A entries, oldest first
//	POST /api/ai/suggest         → sentence completion suggestions
//	GET  /health                 → liveness probe
//	GET  /ready                  → readiness probe
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (recovery, logging, rate limit)
//   - search.go: search and history endpoints
//   - suggest.go: sentence suggestion endpoint
//   - health.go: health check endpoints (/health, /ready)
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/weconnect/agrisearch/internal/history"
	"github.com/weconnect/agrisearch/internal/log"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response. Answer
	// generation waits on the completion API, so this is generous.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// ServerConfig configures the server.
type ServerConfig struct {
	Addr string

	// RatePerSecond and RateBurst bound request throughput. Zero rate
	// disables limiting.
	RatePerSecond float64
	RateBurst     int
}

// Server is the HTTP server for the search API.
type Server struct {
	mux    *http.ServeMux
	cfg    ServerConfig
	logger log.Logger

	// Handlers
	health  *HealthHandler
	search  *SearchHandler
	suggest *SuggestHandler
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg ServerConfig, asker Asker, suggester Suggester, store *history.Store, ready ReadyChecker, logger log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		cfg:     cfg,
		logger:  logger,
		health:  NewHealthHandler(ready, logger),
		search:  NewSearchHandler(asker, store, logger),
		suggest: NewSuggestHandler(suggester, logger),
	}

	s.health.RegisterRoutes(mux)
	s.search.RegisterRoutes(mux)
	s.suggest.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → rate limit → handler
func (s *Server) Handler() http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger),
	}
	if s.cfg.RatePerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(s.cfg.RatePerSecond), s.cfg.RateBurst)
		middlewares = append(middlewares, rateLimitMiddleware(limiter))
	}
	return chain(s.mux, middlewares...)
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
