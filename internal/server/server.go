// Package server provides the local HTTP REST API for the content toolkit.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/content-toolkit/internal/server/middleware"
	"github.com/jonathan/content-toolkit/internal/server/ratelimit"
	"github.com/jonathan/content-toolkit/internal/toolkit"
)

const shutdownTimeout = 10 * time.Second

// Config holds server configuration
type Config struct {
	Port      int
	APIToken  string            // Empty disables bearer auth
	RateLimit *ratelimit.Config // Nil uses ratelimit.DefaultConfig
}

// Server exposes one Toolkit over HTTP. Every toolkit call is made under mu,
// so concurrent requests behave as a single writer.
type Server struct {
	mu sync.Mutex
	tk *toolkit.Toolkit

	port        int
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	metrics     *metrics
	mux         *http.ServeMux
	handler     http.Handler
}

// New creates a new server instance
func New(cfg Config, tk *toolkit.Toolkit, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		tk:          tk,
		port:        cfg.Port,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		metrics:     newMetrics(),
		mux:         http.NewServeMux(),
	}
	s.metrics.observe(tk)

	mux := s.mux
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	// Dashboard and steps
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /steps", s.handleListSteps)
	mux.HandleFunc("PUT /steps/{id}", s.handleSetStep)

	// Content library
	mux.HandleFunc("GET /content", s.handleListContent)
	mux.HandleFunc("POST /content", s.handleAddContent)
	mux.HandleFunc("GET /content/{id}", s.handleGetContent)
	mux.HandleFunc("DELETE /content/{id}", s.handleRemoveContent)
	mux.HandleFunc("PUT /content/{id}/stage", s.handleAssignContent)
	mux.HandleFunc("DELETE /content/{id}/stage", s.handleUnassignContent)

	// Funnel
	mux.HandleFunc("GET /funnel", s.handleFunnel)
	mux.HandleFunc("GET /funnel/gaps", s.handleGaps)

	// Profile and generated copy
	mux.HandleFunc("GET /profile", s.handleGetProfile)
	mux.HandleFunc("PUT /profile", s.handleSetProfile)
	mux.HandleFunc("GET /copy", s.handleGetCopy)
	mux.HandleFunc("PUT /copy", s.handleSetCopy)

	mux.HandleFunc("POST /reset", s.handleReset)

	var h http.Handler = mux
	h = s.withRateLimit(h)
	h = middleware.BearerToken(cfg.APIToken, "/health")(h)
	h = s.withCORS(h)
	h = s.withLogging(h)
	h = s.withMetrics(h)
	h = middleware.RequestID(h)
	s.handler = h

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured port until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(s.port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

// withToolkit runs fn with exclusive access to the toolkit and refreshes the
// state gauges afterwards.
func (s *Server) withToolkit(fn func(tk *toolkit.Toolkit)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.tk)
	s.metrics.observe(s.tk)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
