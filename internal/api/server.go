// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

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

	"github.com/inkwellhq/inkwell/internal/assignment"
	"github.com/inkwellhq/inkwell/internal/history"
	"github.com/inkwellhq/inkwell/internal/manuscript"
	"github.com/inkwellhq/inkwell/internal/notification"
	"github.com/inkwellhq/inkwell/internal/platform/config"
	"github.com/inkwellhq/inkwell/internal/platform/constants"
	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	"github.com/inkwellhq/inkwell/internal/review"
	"github.com/inkwellhq/inkwell/internal/users/auth"
	"github.com/inkwellhq/inkwell/internal/workflow"
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
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, sessions).
	Auth *auth.Handler

	// Manuscript handles manuscript CRUD.
	Manuscript *manuscript.Handler

	// Workflow drives manuscript status transitions.
	Workflow *workflow.Handler

	// History serves the append-only audit trail.
	History *history.Handler

	// Assignment manages editor assignments and availability.
	Assignment *assignment.Handler

	// Review handles editorial reviews and aggregate metrics.
	Review *review.Handler

	// Notification serves each member's notification inbox.
	Notification *notification.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// The manuscript subtree collects every per-manuscript concern:
		// CRUD, workflow transitions, audit history, assignments, reviews,
		// and aggregate metrics all hang off the same {id}.
		api.Route("/manuscripts", func(m chi.Router) {
			m.Get("/", h.Manuscript.List)
			m.Get("/{id}", h.Manuscript.Get)
			m.Get("/{id}/transitions", h.Workflow.Available)
			m.Get("/{id}/history", h.History.ListByManuscript)
			m.Get("/{id}/assignments", h.Assignment.ListByManuscript)
			m.Get("/{id}/reviews", h.Review.ListByManuscript)
			m.Get("/{id}/metrics", h.Review.ManuscriptMetrics)

			m.Group(func(protected chi.Router) {
				protected.Use(middleware.RequireAuth)
				protected.Post("/", h.Manuscript.Create)
				protected.Patch("/{id}", h.Manuscript.Update)
				protected.Delete("/{id}", h.Manuscript.Delete)
				protected.Post("/{id}/transition", h.Workflow.Transition)
				protected.Post("/{id}/reviews", h.Review.Create)
			})
		})

		api.Mount("/assignments", h.Assignment.Routes())

		api.Route("/reviews", func(rv chi.Router) {
			rv.With(middleware.RequireAuth).Patch("/{id}/status", h.Review.Resolve)
		})

		api.Route("/editors", func(e chi.Router) {
			e.Get("/{id}/availability", h.Assignment.GetAvailability)
			e.Get("/{id}/metrics", h.Review.EditorMetrics)
			e.With(middleware.RequireAuth).Put("/{id}/availability", h.Assignment.SetAvailability)
		})

		api.Mount("/notifications", h.Notification.Routes())
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
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
