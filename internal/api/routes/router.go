package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zatekoja/venuediscovery/internal/api/handlers"
	"github.com/zatekoja/venuediscovery/internal/api/loaders"
	"github.com/zatekoja/venuediscovery/internal/api/middleware"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
)

// Options controls the cross-cutting middleware
type Options struct {
	AllowedOrigins   []string
	RateLimitEnabled bool
	RateLimit        int
	RateLimitWindow  time.Duration
}

// Router holds all route handlers
type Router struct {
	searchHandler         *handlers.SearchHandler
	recommendationHandler *handlers.RecommendationHandler
	venueHandler          *handlers.VenueHandler
	geolocationHandler    *handlers.GeolocationHandler
	healthHandler         *handlers.HealthHandler

	venueRepo repositories.VenueRepository
	opts      Options
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	recommendationHandler *handlers.RecommendationHandler,
	venueHandler *handlers.VenueHandler,
	geolocationHandler *handlers.GeolocationHandler,
	healthHandler *handlers.HealthHandler,
	venueRepo repositories.VenueRepository,
	opts Options,
) *Router {
	return &Router{
		searchHandler:         searchHandler,
		recommendationHandler: recommendationHandler,
		venueHandler:          venueHandler,
		geolocationHandler:    geolocationHandler,
		healthHandler:         healthHandler,
		venueRepo:             venueRepo,
		opts:                  opts,
	}
}

// SetupRoutes configures all application routes
func (rt *Router) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.ObservabilityMiddleware)

	r.Get("/health", rt.healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if rt.opts.RateLimitEnabled && rt.opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(rt.opts.RateLimit, rt.opts.RateLimitWindow))
		}
		r.Use(chimiddleware.Compress(5, "application/json"))
		r.Use(loaders.Middleware(rt.venueRepo))

		r.Get("/search", rt.searchHandler.Search)

		r.Get("/events/trending", rt.recommendationHandler.Trending)
		r.Get("/events/{id}/pairings", rt.recommendationHandler.Pairings)

		r.Get("/venues/{id}", rt.venueHandler.GetVenue)
		r.Get("/venues/{id}/ownership", rt.venueHandler.GetOwnership)

		r.Get("/geocode", rt.geolocationHandler.Geocode)
	})

	return r
}
