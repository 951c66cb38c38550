package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	adaptershttp "github.com/iho/gowager/internal/adapter/http"
	"github.com/iho/gowager/internal/adapter/http/handler"
	"github.com/iho/gowager/internal/adapter/http/middleware"
	"github.com/iho/gowager/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/gowager/internal/adapter/repository/redis"
	infraredis "github.com/iho/gowager/internal/infrastructure/redis"
	"github.com/iho/gowager/internal/usecase"
	"github.com/iho/gowager/tests/testutil"
)

// testEnv wires the full stack against real Postgres and Redis.
type testEnv struct {
	DB     *testutil.TestDB
	Redis  *goredis.Client
	Router http.Handler

	AccountRepo  *postgres.AccountRepository
	WagerRepo    *postgres.WagerRepository
	MatchRepo    *postgres.MatchRepository
	OutboxRepo   *postgres.OutboxRepository
	SnapshotRepo *postgres.SnapshotRepository

	MatchUC      *usecase.MatchUseCase
	SettlementUC *usecase.SettlementUseCase
	LedgerUC     *usecase.LedgerUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	matchRepo := postgres.NewMatchRepository(pool)
	competitorRepo := postgres.NewCompetitorRepository(pool)
	wagerRepo := postgres.NewWagerRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	priceCache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, entryRepo, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, ledgerUC, wagerRepo, idGen)
	priceUC := usecase.NewPriceUseCase(txManager, matchRepo, competitorRepo, snapshotRepo, idGen, priceCache)
	wagerUC := usecase.NewWagerUseCase(txManager, matchRepo, wagerRepo, outboxRepo, ledgerUC, priceUC, idGen, postgres.NewRetrier(), nil, 0)
	matchUC := usecase.NewMatchUseCase(txManager, matchRepo, competitorRepo, outboxRepo, idGen, nil)
	settlementUC := usecase.NewSettlementUseCase(txManager, matchRepo, competitorRepo, wagerRepo, outboxRepo, ledgerUC, idGen, nil, nil)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC, ledgerUC),
		WagerHandler:     handler.NewWagerHandler(wagerUC),
		MatchHandler:     handler.NewMatchHandler(matchUC, settlementUC, ledgerUC),
		PriceHandler:     handler.NewPriceHandler(priceUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Identity:         middleware.NewIdentityMiddleware(accountUC),
		IdempotencyStore: idempotencyStore,
	})

	return &testEnv{
		DB:           testDB,
		Redis:        redisClient,
		Router:       router,
		AccountRepo:  accountRepo,
		WagerRepo:    wagerRepo,
		MatchRepo:    matchRepo,
		OutboxRepo:   outboxRepo,
		SnapshotRepo: snapshotRepo,
		MatchUC:      matchUC,
		SettlementUC: settlementUC,
		LedgerUC:     ledgerUC,
	}
}

// flushRedis clears cached prices and idempotency keys between subtests.
func (e *testEnv) flushRedis(ctx context.Context, t *testing.T) {
	t.Helper()
	if err := e.Redis.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}
