package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/kurumrehberi/institution-directory/backend/internal/adapters/cache"
	"github.com/kurumrehberi/institution-directory/backend/internal/adapters/database"
	"github.com/kurumrehberi/institution-directory/backend/internal/adapters/source"
	"github.com/kurumrehberi/institution-directory/backend/internal/api/handlers"
	"github.com/kurumrehberi/institution-directory/backend/internal/api/routes"
	"github.com/kurumrehberi/institution-directory/backend/internal/application/services"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/providers"
	"github.com/kurumrehberi/institution-directory/backend/internal/domain/repositories"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/clients/postgres"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/clients/redis"
	"github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/observability"
	"github.com/kurumrehberi/institution-directory/backend/internal/search"
	"github.com/kurumrehberi/institution-directory/backend/pkg/config"
	"github.com/kurumrehberi/institution-directory/backend/pkg/retry"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

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
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Catalog source: a bulk JSON document by default, PostgreSQL when
	// the deployment keeps the registry in a database
	var (
		catalogSource repositories.CatalogSource
		analytics     repositories.SearchAnalyticsRepository
	)
	switch cfg.Catalog.Source {
	case "postgres":
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()

		catalogSource = source.NewPostgresSource(pgClient)
		analytics = database.NewSearchAnalyticsAdapter(pgClient)
	default:
		catalogSource = source.NewDocumentSource(cfg.Catalog.FilePath)
	}

	// Recent searches persist to Redis when available, else stay in memory
	var recentStore providers.RecentSearchStore
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, recent searches will not persist")
		} else {
			defer redisClient.Close()
			recentStore = cache.NewRedisRecentStore(redisClient)
		}
	}
	if recentStore == nil {
		recentStore = cache.NewMemoryRecentStore()
	}

	recentLog, err := search.NewRecentSearchLog(ctx, recentStore)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load persisted recent searches, starting empty")
		recentLog, _ = search.NewRecentSearchLog(ctx, cache.NewMemoryRecentStore())
	}

	directoryService := services.NewDirectoryService(catalogSource, analytics)
	directoryService.SetMetrics(metrics)
	directoryService.SetTuning(search.Tuning{
		DefaultPageSize:  cfg.Search.DefaultPageSize,
		MaxPageSize:      cfg.Search.MaxPageSize,
		DebounceInterval: cfg.Search.DebounceInterval,
		ThrottleInterval: cfg.Search.ThrottleInterval,
	})

	// The service refuses queries until the first load completes, so retry
	// hard here before accepting traffic
	if err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		return directoryService.LoadCatalog(ctx)
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to load institution catalog")
	}

	searchHandler := handlers.NewSearchHandler(directoryService)
	suggestHandler := handlers.NewSuggestHandler(directoryService, recentLog)
	locationHandler := handlers.NewLocationHandler(directoryService)
	recentHandler := handlers.NewRecentHandler(recentLog)

	router := routes.NewRouter(
		searchHandler,
		suggestHandler,
		locationHandler,
		recentHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
