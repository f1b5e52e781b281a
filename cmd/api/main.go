package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Adi-7i/Banquet/backend/internal/adapters/cache"
	"github.com/Adi-7i/Banquet/backend/internal/adapters/database"
	"github.com/Adi-7i/Banquet/backend/internal/adapters/events"
	"github.com/Adi-7i/Banquet/backend/internal/api/handlers"
	"github.com/Adi-7i/Banquet/backend/internal/api/routes"
	"github.com/Adi-7i/Banquet/backend/internal/application/services"
	"github.com/Adi-7i/Banquet/backend/internal/infrastructure/clients/postgres"
	"github.com/Adi-7i/Banquet/backend/internal/infrastructure/clients/redis"
	"github.com/Adi-7i/Banquet/backend/internal/infrastructure/observability"
	"github.com/Adi-7i/Banquet/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
		}
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional; search degrades to database-only when it is down
	redisClient := redis.NewClient(&cfg.Redis)
	defer redisClient.Close()

	cacheProvider := cache.NewRedisAdapter(redisClient, cfg.Search.ReconnectAttempts)
	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	// Adapters
	venueSearchRepo := database.NewVenueSearchAdapter(pgClient)
	analyticsRepo := database.NewSearchAnalyticsAdapter(pgClient)

	// Services
	analyticsService := services.NewSearchAnalyticsService(analyticsRepo)
	searchService := services.NewSearchService(
		venueSearchRepo,
		cacheProvider,
		analyticsService,
		time.Duration(cfg.Search.CacheTTLSeconds)*time.Second,
	)

	invalidationService := services.NewCacheInvalidationService(cacheProvider, eventBus)
	if err := invalidationService.Start(); err != nil {
		log.Warn().Err(err).Msg("cache invalidation disabled, entries expire by TTL only")
	} else {
		defer invalidationService.Stop()
	}

	// HTTP layer
	searchHandler := handlers.NewSearchHandler(searchService, analyticsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	router := routes.NewRouter(searchHandler, analyticsHandler)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	// drain deferred cache writes and analytics records
	searchService.Wait()
	analyticsService.Wait()
}
