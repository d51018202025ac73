// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

// Command api is the entry point for the Homezy gateway server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (audit event queue).
//  4. Build the data store client (service credential + REST transport).
//  5. Start the background audit worker.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/homezy-app/homezy-api/internal/api"
	"github.com/homezy-app/homezy-api/internal/audit"
	"github.com/homezy-app/homezy-api/internal/auth"
	"github.com/homezy-app/homezy-api/internal/listing"
	"github.com/homezy-app/homezy-api/internal/notification"
	"github.com/homezy-app/homezy-api/internal/platform/config"
	"github.com/homezy-app/homezy-api/internal/platform/constants"
	"github.com/homezy-app/homezy-api/internal/platform/metrics"
	redisstore "github.com/homezy-app/homezy-api/internal/platform/redis"
	"github.com/homezy-app/homezy-api/internal/platform/respond"
	"github.com/homezy-app/homezy-api/internal/platform/sec"
	"github.com/homezy-app/homezy-api/internal/upstream"
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

	log.Info("[Homezy] service_initializing")

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

	// Error payloads carry diagnostic details only outside production.
	respond.ExposeDetails(!cfg.IsProduction())

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lifecycle context for background goroutines (audit worker, limiter GC).
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Data Store Client ──────────────────────────────────────────────
	gauges := metrics.New()

	serviceTokens := sec.NewServiceTokenSource(
		cfg.DataStoreJWTSecret,
		constants.AppName,
		constants.ServiceTokenTTL,
		constants.ServiceTokenRefreshMargin,
	)
	store := upstream.NewClient(cfg.DataStoreURL, cfg.DataStoreTimeout, serviceTokens, gauges)

	// ── 5. Audit Worker ───────────────────────────────────────────────────
	auditQueue := audit.NewRedisQueue(rdb)
	auditRecorder := audit.NewQueueRecorder(auditQueue, log)
	auditWorker := audit.NewWorker(auditQueue, store, log)
	go auditWorker.Run(runCtx)

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDataStore: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), cfg.DataStoreTimeout)
			defer cancel()
			return store.Ping(pingCtx)
		},
		CheckQueue: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	verifier := auth.NewAuthorityVerifier(cfg.AuthorityURL, cfg.AuthorityTimeout)
	sessionStore := auth.NewSessionStore(store)
	authService := auth.NewService(sessionStore, auditRecorder, log)
	authHandler := auth.NewHandler(authService)

	listingHandler := listing.NewHandler(listing.NewService(store))
	notificationHandler := notification.NewHandler(notification.NewService(store))

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Listing:      listingHandler,
		Notification: notificationHandler,
	}

	server := api.NewServer(runCtx, cfg, log, verifier, gauges, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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

	// Stop background goroutines, then give in-flight requests time to finish.
	runCancel()

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
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
