package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gubchik123/LapZone/api/controllers"
	"github.com/Gubchik123/LapZone/api/middleware"
	"github.com/Gubchik123/LapZone/internal/cartsession"
	"github.com/Gubchik123/LapZone/internal/likes"
	"github.com/Gubchik123/LapZone/pkg/config"
	"github.com/Gubchik123/LapZone/pkg/db"
	"github.com/Gubchik123/LapZone/pkg/logger"
	"github.com/Gubchik123/LapZone/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	cartService cartsession.Service,
	likesService likes.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	mutationPolicy := middleware.NewRateLimitPolicy(
		"mutations",
		cfg.RateLimit.Window,
		cfg.RateLimit.IPLimit,
	)

	// Redis-backed middleware degrades to pass-through when the client is
	// absent (tests, local runs without redis).
	rateLimit := passThrough
	idempotency := passThrough
	if redisClient != nil {
		rateLimit = middleware.RateLimit(mutationPolicy, redisClient, logg)
		idempotency = middleware.Idempotency(redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PageToken(cfg.PageToken, logg))

		r.Route("/cart/sessions", func(r chi.Router) {
			r.With(rateLimit).Post("/", controllers.OpenCartSession(cartService, logg))

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.GetCartSession(cartService, logg))
				r.Delete("/", controllers.CloseCartSession(cartService, logg))

				r.Group(func(r chi.Router) {
					r.Use(rateLimit, idempotency)
					r.Post("/quantity", controllers.CommitQuantity(cartService, logg))
					r.Post("/items", controllers.AddCartItem(cartService, logg))
					r.Delete("/items/{productID}", controllers.RemoveCartItem(cartService, logg))
				})
			})
		})

		r.With(rateLimit).Post("/products/{productID}/like", controllers.ToggleLike(likesService, logg))

		r.Post("/forms/readiness", controllers.FormReadiness(logg))

		r.Route("/view", func(r chi.Router) {
			r.Get("/sort-options", controllers.SortOptions(logg))
			r.Get("/layout", controllers.Layout(logg))
			r.Get("/pagination", controllers.Pagination(logg))
		})
	})

	return r
}

func passThrough(next http.Handler) http.Handler {
	return next
}
