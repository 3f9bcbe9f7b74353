// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command todoapi is the entry point for the Todoro todo service.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Wire HTTP handlers behind the token gate.
//  6. Start HTTP server with graceful shutdown.
//
// The todo service verifies tokens locally with the shared secret. It never
// calls the user service and keeps no user data beyond the owner UUID
// column on each todo.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/todoro/internal/api"
	"github.com/taibuivan/todoro/internal/platform/config"
	"github.com/taibuivan/todoro/internal/platform/constants"
	"github.com/taibuivan/todoro/internal/platform/metrics"
	"github.com/taibuivan/todoro/internal/platform/middleware"
	"github.com/taibuivan/todoro/internal/platform/migration"
	pgstore "github.com/taibuivan/todoro/internal/platform/postgres"
	"github.com/taibuivan/todoro/internal/platform/sec"
	"github.com/taibuivan/todoro/internal/todo"
)

func main() {
	// ── 1. Logger ─────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("service", constants.ServiceTodo))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadTodoService()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("service", constants.ServiceTodo))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Security Primitives ────────────────────────────────────────────
	// Same secret, issuer, and audience as the user service, so tokens it
	// mints verify here without any network hop.
	tokenCodec, err := sec.NewCodec(cfg.JWTSecret, cfg.JWTTTL, constants.TokenIssuer, constants.TokenAudience)
	must(log, err, "initialize token codec")

	// ── 6. Health Handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	todoRepository := todo.NewRepository(pool)
	todoService := todo.NewService(todoRepository)
	todoHandler := todo.NewHandler(todoService)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.Options{
		ServiceName: constants.ServiceTodo,
		Port:        cfg.ServerPort,
		CORS:        cfg,
		Metrics:     metrics.NewCollector(constants.ServiceTodo),
	}.NewServer(serverCtx, log, api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Todo:         todoHandler,
		Authenticate: middleware.Authenticate(tokenCodec),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
