package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/venuediscovery/internal/adapters/cache"
	"github.com/zatekoja/venuediscovery/internal/adapters/database"
	"github.com/zatekoja/venuediscovery/internal/adapters/providers/geolocation"
	"github.com/zatekoja/venuediscovery/internal/api/handlers"
	"github.com/zatekoja/venuediscovery/internal/api/routes"
	"github.com/zatekoja/venuediscovery/internal/application/services"
	"github.com/zatekoja/venuediscovery/internal/domain/providers"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/redis"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	"github.com/zatekoja/venuediscovery/migrations"
	"github.com/zatekoja/venuediscovery/pkg/clock"
	"github.com/zatekoja/venuediscovery/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := migrations.Apply(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	checks := map[string]handlers.Pinger{"postgres": pgClient}

	var searchCache providers.CacheProvider = cache.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, search results will not be cached")
		} else {
			defer redisClient.Close()
			searchCache = cache.NewBreakerCache(cache.NewRedisAdapter(redisClient), cache.DefaultBreakerSettings())
			checks["redis"] = redisClient
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("redis search cache enabled")
		}
	}

	var geocoder providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		geocoder = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, searchCache)
	default:
		geocoder = geolocation.NewMockGeolocationProvider()
	}

	// Adapters
	venueRepo := database.NewVenueAdapter(pgClient)
	eventRepo := database.NewEventAdapter(pgClient)
	trendingRepo := database.NewTrendingAdapter(pgClient)
	searcher := database.NewCachedSearchAdapter(database.NewSearchAdapter(pgClient), searchCache, cfg.Search.CacheTTLSeconds)

	// Services
	searchService := services.NewSearchService(services.NewLocationParser(), searcher)
	trendingService := services.NewTrendingService(trendingRepo, clock.NewSystem(cfg.Trending.Location()))
	pairingService := services.NewPairingService(eventRepo)

	// Handlers
	searchHandler := handlers.NewSearchHandler(searchService, geocoder, handlers.SearchOptions{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		Timeout:      cfg.Search.Timeout,
	})
	recommendationHandler := handlers.NewRecommendationHandler(trendingService, pairingService)
	venueHandler := handlers.NewVenueHandler(venueRepo)
	geolocationHandler := handlers.NewGeolocationHandler(geocoder)
	healthHandler := handlers.NewHealthHandler(checks)

	router := routes.NewRouter(
		searchHandler,
		recommendationHandler,
		venueHandler,
		geolocationHandler,
		healthHandler,
		venueRepo,
		routes.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        cfg.RateLimit.Requests,
			RateLimitWindow:  cfg.RateLimit.Window,
		},
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("environment", cfg.Environment).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
