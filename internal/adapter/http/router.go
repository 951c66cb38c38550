package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/gowager/internal/adapter/http/handler"
	"github.com/iho/gowager/internal/adapter/http/middleware"
	"github.com/iho/gowager/internal/infrastructure/metrics"
	"github.com/iho/gowager/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	WagerHandler     *handler.WagerHandler
	MatchHandler     *handler.MatchHandler
	PriceHandler     *handler.PriceHandler
	HealthHandler    *handler.HealthHandler
	Identity         *middleware.IdentityMiddleware
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Metrics          *metrics.Metrics
	RateLimit        float64
	RateBurst        int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Account-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.Identity.Require)

			r.Route("/account", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.Me)
				r.Get("/entries", cfg.AccountHandler.Entries)
				r.Get("/stats", cfg.AccountHandler.Stats)
				r.Get("/reconcile", cfg.AccountHandler.Reconcile)
				r.Post("/bonus", cfg.AccountHandler.DailyBonus)
			})

			r.Route("/wagers", func(r chi.Router) {
				r.Post("/", cfg.WagerHandler.Place)
				r.Get("/", cfg.WagerHandler.List)
				r.Get("/{id}", cfg.WagerHandler.Get)
				r.Post("/{id}/cancel", cfg.WagerHandler.Cancel)
			})
		})

		// Public match and price routes
		r.Route("/matches", func(r chi.Router) {
			r.Post("/", cfg.MatchHandler.Create)
			r.Get("/", cfg.MatchHandler.List)
			r.Get("/{id}", cfg.MatchHandler.Get)
			r.Post("/{id}/transition", cfg.MatchHandler.Transition)
			r.Post("/{id}/wagering", cfg.MatchHandler.SetWagering)
			r.Post("/{id}/settle", cfg.MatchHandler.Settle)
			r.Post("/{id}/cancel-wagers", cfg.MatchHandler.CancelWagers)
			r.Get("/{id}/position", cfg.MatchHandler.Position)
			r.Get("/{id}/price", cfg.PriceHandler.Current)
			r.Get("/{id}/price/history", cfg.PriceHandler.History)
			r.Get("/{id}/price/health", cfg.PriceHandler.Health)
		})

		r.Route("/competitors", func(r chi.Router) {
			r.Post("/", cfg.MatchHandler.CreateCompetitor)
			r.Get("/{id}", cfg.MatchHandler.GetCompetitor)
		})

		r.Get("/accounts", cfg.AccountHandler.List)
	})

	return r
}
