// Package server exposes the graph pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                         liveness and build version
//	POST /v1/build?format=snap&symmetric=  edge list in, adjacency text out
//	POST /v1/stat?weighted=                adjacency text in, JSON summary out
//	POST /v1/render?format=dot|svg         adjacency text in, diagram out
//
// Build responses carry X-Graph-Vertices, X-Graph-Edges, X-Run-ID and
// X-Cache (hit or miss) headers. Errors are JSON objects with "code" and
// "error" fields; malformed input maps to 400 and everything else to 500.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/observability"
	"github.com/matzehuels/csrgraph/pkg/pipeline"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 256 << 20

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	Runner       *pipeline.Runner
	Logger       *log.Logger
	MaxBodyBytes int64

	router chi.Router
}

// New creates a server around runner. A nil logger uses the runner's.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		Runner:       runner,
		Logger:       logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/build", s.handleBuild)
		r.Post("/stat", s.handleStat)
		r.Post("/render", s.handleRender)
	})
	s.router = r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := gerrors.ValidateAddr(addr); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return gerrors.Wrap(gerrors.ErrCodeNetwork, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return gerrors.Wrap(gerrors.ErrCodeTimeout, err, "shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return gerrors.Wrap(gerrors.ErrCodeNetwork, err, "serve")
	}
	s.Logger.Info("server stopped")
	return nil
}

// logRequests logs every request through the charm logger and reports it
// to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, duration)

		logf := s.Logger.Info
		if status >= http.StatusBadRequest {
			logf = s.Logger.Warn
		}
		logf("request",
			"id", middleware.GetReqID(ctx),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}

// limitBody caps the request body at MaxBodyBytes.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
