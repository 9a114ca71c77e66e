// Package http wires the scoring API's route tree and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/prometheus"
	"github.com/boskovicgroup/bottchercomplexity/internal/interfaces/http/handlers"
	"github.com/boskovicgroup/bottchercomplexity/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree.
type RouterConfig struct {
	ScoreHandler  *handlers.ScoreHandler
	HealthHandler *handlers.HealthHandler

	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	AppMetrics       *prometheus.AppMetrics

	// CORS and RateLimit enable the respective middleware when non-nil.
	CORS      *middleware.CORSConfig
	RateLimit *middleware.RateLimitConfig
}

// NewRouter constructs the complete route tree: global middleware, public
// health endpoints, the metrics endpoint, and the versioned scoring API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	r.Use(middleware.RequestID)
	if cfg.RateLimit != nil {
		limiter := middleware.NewTokenBucketLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize, cfg.RateLimit.CleanupInterval)
		r.Use(middleware.RateLimit(limiter, *cfg.RateLimit))
	}
	if cfg.AppMetrics != nil {
		r.Use(middleware.Metrics(cfg.AppMetrics))
	}
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.ScoreHandler != nil {
			api.Post("/score", cfg.ScoreHandler.Score)
			api.Post("/score/batch", cfg.ScoreHandler.ScoreBatch)
		}
	})

	return r
}
