// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

// Command api is the entry point for the Inkwell HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start the deadline sweep and the HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/manuscript"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/config"
	"github.com/inkwellhq/inkwell/internal/platform/constants"
	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
	"github.com/inkwellhq/inkwell/internal/platform/migration"
	pgstore "github.com/inkwellhq/inkwell/internal/platform/postgres"
	redisstore "github.com/inkwellhq/inkwell/internal/platform/redis"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
	"github.com/inkwellhq/inkwell/internal/review"
	"github.com/inkwellhq/inkwell/internal/users/auth"
	"github.com/inkwellhq/inkwell/internal/workflow"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Inkwell] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application-lifetime context. Cancelled on shutdown so background
	// workers (rate limiter cleanup, deadline sweep) stop cleanly.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	verifyTokenRepository := auth.NewVerificationTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, verifyTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	historyRepository := history.NewRepository(pool)
	historyHandler := history.NewHandler(historyRepository)

	notificationRepository := notification.NewRepository(pool)
	notificationPublisher := notification.NewRedisPublisher(rdb)
	notificationService := notification.NewService(notificationRepository, notificationPublisher)
	notificationHandler := notification.NewHandler(notificationService, notificationRepository)

	// The workflow's manuscript store doubles as the read-only manuscript
	// source for assignments and reviews.
	manuscriptStore := workflow.NewManuscriptStore(pool)
	workflowEngine := workflow.NewEngine(manuscriptStore, historyRepository, notificationService)
	workflowHandler := workflow.NewHandler(workflowEngine)

	assignmentRepository := assignment.NewRepository(pool)
	availabilityRepository := assignment.NewAvailabilityRepository(pool)
	assignmentEngine := assignment.NewEngine(
		assignmentRepository,
		availabilityRepository,
		manuscriptStore,
		historyRepository,
		notificationService,
	)
	assignmentHandler := assignment.NewHandler(assignmentEngine)

	reviewRepository := review.NewRepository(pool)
	reviewService := review.NewService(
		reviewRepository,
		assignmentRepository,
		availabilityRepository,
		manuscriptStore,
		historyRepository,
		notificationService,
	)
	reviewHandler := review.NewHandler(reviewService)

	manuscriptRepository := manuscript.NewRepository(pool)
	manuscriptService := manuscript.NewService(
		manuscriptRepository,
		assignmentRepository,
		availabilityRepository,
		historyRepository,
	)
	manuscriptHandler := manuscript.NewHandler(manuscriptService)

	// ── 9. Deadline Sweep ─────────────────────────────────────────────────
	if cfg.DeadlineSweepEnabled {
		go runDeadlineSweep(ctxutil.WithLogger(appCtx, log), assignmentEngine, log)
	} else {
		log.Info("deadline_sweep_disabled")
	}

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Manuscript:   manuscriptHandler,
		Workflow:     workflowHandler,
		History:      historyHandler,
		Assignment:   assignmentHandler,
		Review:       reviewHandler,
		Notification: notificationHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Stop background workers, then give in-flight requests time to complete.
	appCancel()

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// runDeadlineSweep periodically warns editors about assignments due soon.
//
// Each pass is independent; a failed sweep is logged and retried on the
// next tick. The loop exits when ctx is cancelled.
func runDeadlineSweep(ctx context.Context, engine *assignment.Engine, log *slog.Logger) {
	ticker := time.NewTicker(constants.DeadlineSweepInterval)
	defer ticker.Stop()

	log.Info("deadline_sweep_started", slog.Duration("interval", constants.DeadlineSweepInterval))

	for {
		select {
		case <-ticker.C:
			warned, err := engine.NotifyApproachingDeadlines(ctx)
			if err != nil {
				log.Error("deadline_sweep_failed", slog.Any("error", err))
				continue
			}
			if warned > 0 {
				log.Info("deadline_sweep_finished", slog.Int("warned", warned))
			}
		case <-ctx.Done():
			log.Info("deadline_sweep_stopped")
			return
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
