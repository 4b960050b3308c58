// Package server exposes the citation pipeline over HTTP.
//
// Routes:
//
//	GET  /api/v1/citation?repo=<ref>   citation JSON
//	GET  /api/v1/suggest?q=<partial>   {"suggestions": [...]}
//	POST /api/v1/events/copy           records a copy_citation event
//	GET  /health                       liveness
//	GET  /metrics                      Prometheus metrics
//
// Errors are returned as {"error": {"code": ..., "message": ...}}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/gitcite/internal/metrics"
	"github.com/matzehuels/gitcite/pkg/analytics"
	"github.com/matzehuels/gitcite/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Citer is the part of [pipeline.Runner] the server needs.
type Citer interface {
	Cite(ctx context.Context, input string) (*pipeline.Result, error)
	Suggest(ctx context.Context, partial string) []string
}

// Options configures a Server.
type Options struct {
	Addr string

	// RequestTimeout bounds each API request. Zero disables the bound.
	RequestTimeout time.Duration

	Logger   *log.Logger
	Tracker  *analytics.Tracker
	Registry *prom.Registry
	Recorder *metrics.PrometheusRecorder
}

// Server represents the API server.
type Server struct {
	Addr     string
	router   *chi.Mux
	server   *http.Server
	citer    Citer
	timeout  time.Duration
	logger   *log.Logger
	tracker  *analytics.Tracker
	registry *prom.Registry
	recorder *metrics.PrometheusRecorder
}

// New creates a server for citer. A nil Registry gets a fresh one with the
// runtime collectors; a nil Recorder is registered on it.
func New(citer Citer, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Registry == nil {
		opts.Registry = metrics.NewRegistry()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NewPrometheusRecorder(opts.Registry)
	}

	s := &Server{
		Addr:     opts.Addr,
		router:   chi.NewRouter(),
		citer:    citer,
		timeout:  opts.RequestTimeout,
		logger:   opts.Logger,
		tracker:  opts.Tracker,
		registry: opts.Registry,
		recorder: opts.Recorder,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Recorder returns the metrics recorder, for registration with the
// observability hooks.
func (s *Server) Recorder() *metrics.PrometheusRecorder {
	return s.recorder
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(s.registry))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.withTimeout)
		r.Get("/citation", s.handleCitation)
		r.Get("/suggest", s.handleSuggest)
		r.Post("/events/copy", s.handleCopyEvent)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", s.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) withTimeout(next http.Handler) http.Handler {
	if s.timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.recorder.ObserveRequest(route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed.Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
