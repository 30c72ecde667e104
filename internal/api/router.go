// Package api provides HTTP router setup.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/debatesphere/claimcheck/internal/config"
	"github.com/debatesphere/claimcheck/internal/database"
	"github.com/debatesphere/claimcheck/internal/verify"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(cfg *config.Config, pipeline *verify.Pipeline, store database.Store) http.Handler {
	r := chi.NewRouter()

	handler := NewHandler(pipeline, store)

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(cfg.RateLimits.RequestsPerMinute))

			r.Post("/analyze/claims", handler.AnalyzeClaims)
			r.Post("/verify-claim", handler.VerifyClaim)

			r.Get("/analysis/{id}", handler.GetAnalysis)
			r.Get("/recent-analyses", handler.RecentAnalyses)
		})
	})

	return r
}
