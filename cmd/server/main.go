package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	gqladapter "github.com/portfolio-rebalancer/backend/internal/adapter/graphql"
	"github.com/portfolio-rebalancer/backend/internal/adapter/marketdata"
	"github.com/portfolio-rebalancer/backend/internal/adapter/repository/postgres"
	"github.com/portfolio-rebalancer/backend/internal/config"
	"github.com/portfolio-rebalancer/backend/internal/scheduler"
	"github.com/portfolio-rebalancer/backend/internal/usecase/account"
	"github.com/portfolio-rebalancer/backend/internal/usecase/holding"
	"github.com/portfolio-rebalancer/backend/internal/usecase/rebalancing"
	"github.com/portfolio-rebalancer/backend/internal/usecase/tag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Logging)

	// Database
	db, err := postgres.NewDB(cfg.Database.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	holdingRepo := postgres.NewHoldingRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	groupRepo := postgres.NewGroupRepository(db)

	// Market data providers, with an optional redis-backed quote cache
	var quoteCache *marketdata.QuoteCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer redisClient.Close()
		quoteCache = marketdata.NewQuoteCache(redisClient, time.Duration(cfg.MarketData.CacheTTLSecs)*time.Second)
	}

	globalClient := marketdata.NewGlobalClient(cfg.MarketData.GlobalBaseURL, log.Logger)
	krxClient := marketdata.NewKRXClient(cfg.MarketData.KRXBaseURL, log.Logger)
	fxClient := marketdata.NewFXClient(cfg.MarketData.FXBaseURL, log.Logger)
	registry := marketdata.NewRegistry(globalClient, krxClient, quoteCache, log.Logger)

	// Services
	accountService := account.NewService(accountRepo)
	holdingService := holding.NewService(holdingRepo, accountRepo, registry, fxClient, log.Logger)
	tagService := tag.NewService(tagRepo)
	rebalancingService := rebalancing.NewService(groupRepo, tagRepo, holdingRepo)

	// GraphQL
	resolver := gqladapter.NewResolver(accountService, holdingService, tagService, rebalancingService)
	schema, err := gqladapter.NewSchema(resolver)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build schema")
	}
	handler := gqladapter.NewHandler(schema, log.Logger)
	router := gqladapter.NewRouter(handler, userRepo, log.Logger)

	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	// Optional periodic price refresh
	if cfg.Scheduler.Enabled {
		refresher, err := scheduler.New(cfg.Scheduler.RefreshSpec, userRepo, holdingService, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create scheduler")
		}
		refresher.Start()
		defer refresher.Stop()
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	waitForShutdown(server)
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// waitForShutdown waits for SIGTERM or SIGINT and drains in-flight requests
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("HTTP server stopped")
}
