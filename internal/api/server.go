// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/undervaluedbooks/api/internal/catalog/book"
	"github.com/undervaluedbooks/api/internal/catalog/moderation"
	"github.com/undervaluedbooks/api/internal/engagement/clicks"
	"github.com/undervaluedbooks/api/internal/funnel/mention"
	"github.com/undervaluedbooks/api/internal/funnel/rating"
	"github.com/undervaluedbooks/api/internal/funnel/stats"
	"github.com/undervaluedbooks/api/internal/platform/config"
	"github.com/undervaluedbooks/api/internal/platform/constants"
	"github.com/undervaluedbooks/api/internal/platform/middleware"
	"github.com/undervaluedbooks/api/internal/users/account"
	"github.com/undervaluedbooks/api/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the authentication lifecycle (register, login, refresh).
	Auth *auth.Handler

	// Account handles profile reads and account deletion.
	Account *account.Handler

	// Book handles catalog reads.
	Book *book.Handler

	// Moderation handles the submission review workflow.
	Moderation *moderation.Handler

	// Mention handles the "heard of it before?" ledger.
	Mention *mention.Handler

	// Rating handles the rating ledger.
	Rating *rating.Handler

	// Funnel handles derived engagement reads.
	Funnel *stats.Handler

	// Clicks handles read-link click tracking.
	Clicks *clicks.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// Global middleware in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		// Public or mixed-visibility groups.
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/books", h.Book.Routes())
		api.Mount("/funnel", h.Funnel.Routes())

		// Authenticated groups.
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)
			authed.Mount("/account", h.Account.Routes())
			authed.Mount("/submissions", h.Moderation.Routes())
			authed.Mount("/mentions", h.Mention.Routes())
			authed.Mount("/ratings", h.Rating.Routes())
			authed.Mount("/clicks", h.Clicks.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
