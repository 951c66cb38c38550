package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gowager/internal/adapter/http"
	"github.com/iho/gowager/internal/adapter/http/handler"
	"github.com/iho/gowager/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gowager/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gowager/internal/adapter/repository/redis"
	"github.com/iho/gowager/internal/infrastructure/config"
	"github.com/iho/gowager/internal/infrastructure/eventbus"
	"github.com/iho/gowager/internal/infrastructure/eventpublisher"
	"github.com/iho/gowager/internal/infrastructure/logging"
	"github.com/iho/gowager/internal/infrastructure/metrics"
	"github.com/iho/gowager/internal/infrastructure/postgres"
	"github.com/iho/gowager/internal/infrastructure/redis"
	"github.com/iho/gowager/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	matchRepo := postgresRepo.NewMatchRepository(pool)
	competitorRepo := postgresRepo.NewCompetitorRepository(pool)
	wagerRepo := postgresRepo.NewWagerRepository(pool)
	snapshotRepo := postgresRepo.NewSnapshotRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	priceCache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, entryRepo, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, ledgerUC, wagerRepo, idGen)
	priceUC := usecase.NewPriceUseCase(txManager, matchRepo, competitorRepo, snapshotRepo, idGen, priceCache)
	wagerUC := usecase.NewWagerUseCase(txManager, matchRepo, wagerRepo, outboxRepo, ledgerUC, priceUC, idGen, retrier, m, cfg.MaxMatchExposure)
	matchUC := usecase.NewMatchUseCase(txManager, matchRepo, competitorRepo, outboxRepo, idGen, m)
	settlementUC := usecase.NewSettlementUseCase(txManager, matchRepo, competitorRepo, wagerRepo, outboxRepo, ledgerUC, idGen, m, slogger.Logger)

	// Select the event bus backend
	bus, err := newBus(cfg, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event bus")
	}
	defer bus.Close()
	log.Info().Str("backend", cfg.EventBus).Msg("event bus ready")

	// Start the outbox worker
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  bus,
		Logger:     slogger.Logger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("outbox worker stopped")
		}
	}()

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC, ledgerUC)
	wagerHandler := handler.NewWagerHandler(wagerUC)
	matchHandler := handler.NewMatchHandler(matchUC, settlementUC, ledgerUC)
	priceHandler := handler.NewPriceHandler(priceUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		WagerHandler:     wagerHandler,
		MatchHandler:     matchHandler,
		PriceHandler:     priceHandler,
		HealthHandler:    healthHandler,
		Identity:         middleware.NewIdentityMiddleware(accountUC),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
		RateLimit:        cfg.RateLimitRPS,
		RateBurst:        cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newBus builds the configured event bus backend.
func newBus(cfg *config.Config, redisClient *goredis.Client) (eventbus.Publisher, error) {
	switch cfg.EventBus {
	case "redis":
		return eventbus.NewRedisBus(redisClient), nil
	case "kafka":
		return eventbus.NewKafkaBus(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case "memory":
		return eventbus.NewMemoryBus(), nil
	default:
		return nil, fmt.Errorf("unknown event bus backend %q", cfg.EventBus)
	}
}
