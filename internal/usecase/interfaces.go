package usecase

import (
	"context"
	"time"

	"github.com/iho/gowager/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumByAccount(ctx context.Context, accountID string) (int64, error)
	// MatchFlows returns total stakes debited and payouts credited for all
	// wagers on a match, reconstructed purely from ledger entries.
	MatchFlows(ctx context.Context, matchID string) (staked, paid int64, err error)
}

// MatchRepository defines data access for matches.
type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Match, error)
	Update(ctx context.Context, tx Transaction, match *domain.Match) error
	SetRatingsApplied(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
	List(ctx context.Context, status *domain.MatchStatus, limit, offset int) ([]*domain.Match, error)
}

// CompetitorRepository defines data access for competitors.
type CompetitorRepository interface {
	Create(ctx context.Context, competitor *domain.Competitor) error
	GetByID(ctx context.Context, id string) (*domain.Competitor, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Competitor, error)
	UpdateRecord(ctx context.Context, tx Transaction, c *domain.Competitor, updatedAt time.Time) error
}

// WagerRepository defines data access for wagers.
type WagerRepository interface {
	Create(ctx context.Context, tx Transaction, wager *domain.Wager) error
	GetByID(ctx context.Context, id string) (*domain.Wager, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Wager, error)
	ListPendingByMatch(ctx context.Context, matchID string) ([]*domain.Wager, error)
	ListByAccount(ctx context.Context, accountID string, status *domain.WagerStatus, limit, offset int) ([]*domain.Wager, error)
	// Settle transitions a wager out of Pending with a compare-and-set on
	// status. It reports false when the wager was not Pending anymore.
	Settle(ctx context.Context, tx Transaction, id string, status domain.WagerStatus, actualPayout int64, settledAt time.Time) (bool, error)
	CountByMatch(ctx context.Context, matchID string) (map[domain.WagerStatus]int, error)
	StatsByAccount(ctx context.Context, accountID string) (*domain.WagerStats, error)
}

// SnapshotRepository defines data access for price snapshots.
type SnapshotRepository interface {
	Create(ctx context.Context, tx Transaction, snapshot *domain.PriceSnapshot) error
	Latest(ctx context.Context, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error)
	LatestTx(ctx context.Context, tx Transaction, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error)
	History(ctx context.Context, matchID string, market domain.MarketType, limit, offset int) ([]*domain.PriceSnapshot, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
