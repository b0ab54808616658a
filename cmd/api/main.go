// Copyright (c) 2026 Undervalued Books. All rights reserved.

// Command api is the entry point for the Undervalued Books HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
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

	"github.com/undervaluedbooks/api/internal/api"
	"github.com/undervaluedbooks/api/internal/catalog/book"
	"github.com/undervaluedbooks/api/internal/catalog/moderation"
	"github.com/undervaluedbooks/api/internal/engagement/clicks"
	"github.com/undervaluedbooks/api/internal/funnel/mention"
	"github.com/undervaluedbooks/api/internal/funnel/rating"
	"github.com/undervaluedbooks/api/internal/funnel/stats"
	"github.com/undervaluedbooks/api/internal/platform/config"
	"github.com/undervaluedbooks/api/internal/platform/constants"
	"github.com/undervaluedbooks/api/internal/platform/mailer"
	"github.com/undervaluedbooks/api/internal/platform/migration"
	pgstore "github.com/undervaluedbooks/api/internal/platform/postgres"
	redisstore "github.com/undervaluedbooks/api/internal/platform/redis"
	"github.com/undervaluedbooks/api/internal/platform/sec"
	"github.com/undervaluedbooks/api/internal/users/account"
	"github.com/undervaluedbooks/api/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

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

	// Root context for startup. A 30s deadline surfaces misconfiguration
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

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

	// ── 6. Security & Outbound Mail ───────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	mail := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

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
	authService := auth.NewService(
		userRepository, sessionRepository, resetTokenRepository,
		jwtSvc, mail, cfg.MasterEmail, cfg.SiteBaseURL, log,
	)
	authHandler := auth.NewHandler(authService)

	bookRepository := book.NewPostgresRepository(pool)
	bookService := book.NewService(bookRepository, log)
	bookHandler := book.NewHandler(bookService)

	moderationService := moderation.NewService(
		bookService, userRepository, mail, cfg.MasterEmail, cfg.SiteBaseURL, log,
	)
	moderationHandler := moderation.NewHandler(moderationService)

	mentionRepository := mention.NewPostgresRepository(pool)
	mentionService := mention.NewService(mentionRepository, bookRepository, userRepository, log)
	mentionHandler := mention.NewHandler(mentionService)

	ratingRepository := rating.NewPostgresRepository(pool)
	ratingService := rating.NewService(ratingRepository, bookRepository, userRepository, log)
	ratingHandler := rating.NewHandler(ratingService)

	statsService := stats.NewService(mentionRepository, ratingRepository, log)
	statsHandler := stats.NewHandler(statsService)

	clickRepository := clicks.NewPostgresRepository(pool)
	clickService := clicks.NewService(clickRepository, bookRepository, log)
	clickHandler := clicks.NewHandler(clickService)

	accountService := account.NewService(
		userRepository, sessionRepository,
		mentionService, ratingService, clickService, log,
	)
	accountHandler := account.NewHandler(accountService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Account:    accountHandler,
		Book:       bookHandler,
		Moderation: moderationHandler,
		Mention:    mentionHandler,
		Rating:     ratingHandler,
		Funnel:     statsHandler,
		Clicks:     clickHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
