// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and domain
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and the cmd binaries are allowed to import net/http server primitives.

Both services share this composition root; each binary fills in the
[Handlers] fields it owns and leaves the rest nil.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/todoro/internal/identity"
	"github.com/taibuivan/todoro/internal/platform/constants"
	"github.com/taibuivan/todoro/internal/platform/metrics"
	"github.com/taibuivan/todoro/internal/platform/middleware"
	"github.com/taibuivan/todoro/internal/todo"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the domain-specific HTTP handler sets.
//
// The user service sets Identity; the todo service sets Todo and
// Authenticate. Nil fields are simply not mounted.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when all dependencies are healthy.
	Readiness http.HandlerFunc

	// Identity handles registration, login, and token validation.
	Identity *identity.Handler

	// Todo handles the ownership-scoped todo CRUD.
	Todo *todo.Handler

	// Authenticate is the token gate applied to the todo routes.
	Authenticate func(http.Handler) http.Handler
}

// Options carries the per-service knobs for constructing a [Server].
type Options struct {
	// ServiceName labels logs and metrics ("user-service" or "todo-service").
	ServiceName string

	// Port is the TCP port the server binds to.
	Port string

	// CORS supplies environment and allowed-origin policy.
	CORS middleware.AppConfig

	// Metrics receives request counts and latencies, and serves /metrics.
	Metrics *metrics.Collector
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The context bounds the lifetime of background middleware work, such as the
// rate limiter's idle-client sweeper.
func (options Options) NewServer(context context.Context, log *slog.Logger, handlers Handlers) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(options.Metrics.Middleware())
	router.Use(middleware.RateLimit(context))
	router.Use(middleware.PanicRecovery(log))
	router.Use(middleware.CORS(options.CORS))
	router.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)
	router.Method(http.MethodGet, "/metrics", options.Metrics.Handler())

	// # Application API
	router.Route("/api", func(api chi.Router) {
		if handlers.Identity != nil {
			api.Mount("/auth", handlers.Identity.Routes())
		}
		if handlers.Todo != nil {
			api.Mount("/todos", handlers.Todo.Routes(handlers.Authenticate))
		}
	})

	return &Server{
		router: router,
		log:    log.With(slog.String("service", options.ServiceName)),
		httpServer: &http.Server{
			Addr:              ":" + options.Port,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Router exposes the composed handler for in-process tests.
func (s *Server) Router() http.Handler {
	return s.router
}
