package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateTxFunc         func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing any Func override.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.Version++
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumByAccountFunc  func(ctx context.Context, accountID string) (int64, error)
	MatchFlowsFunc    func(ctx context.Context, matchID string) (int64, int64, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

// Entries returns a copy of the recorded entries.
func (m *MockEntryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.LedgerEntry{}, m.entries...)
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEntryRepository) SumByAccount(ctx context.Context, accountID string) (int64, error) {
	if m.SumByAccountFunc != nil {
		return m.SumByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, e := range m.entries {
		if e.AccountID == accountID {
			sum += e.Amount
		}
	}
	return sum, nil
}

func (m *MockEntryRepository) MatchFlows(ctx context.Context, matchID string) (int64, int64, error) {
	if m.MatchFlowsFunc != nil {
		return m.MatchFlowsFunc(ctx, matchID)
	}
	return 0, 0, nil
}

// MockMatchRepository is a mock implementation of MatchRepository.
type MockMatchRepository struct {
	mu      sync.RWMutex
	matches map[string]*domain.Match

	CreateFunc            func(ctx context.Context, match *domain.Match) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Match, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Match, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Transaction, match *domain.Match) error
	SetRatingsAppliedFunc func(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, status *domain.MatchStatus, limit, offset int) ([]*domain.Match, error)
}

func NewMockMatchRepository() *MockMatchRepository {
	return &MockMatchRepository{
		matches: make(map[string]*domain.Match),
	}
}

func (m *MockMatchRepository) Seed(match *domain.Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.ID] = match
}

func (m *MockMatchRepository) Create(ctx context.Context, match *domain.Match) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, match)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.ID] = match
	return nil
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if match, ok := m.matches[id]; ok {
		return match, nil
	}
	return nil, domain.ErrMatchNotFound
}

func (m *MockMatchRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Match, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockMatchRepository) Update(ctx context.Context, tx usecase.Transaction, match *domain.Match) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, match)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.ID] = match
	return nil
}

func (m *MockMatchRepository) SetRatingsApplied(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	if m.SetRatingsAppliedFunc != nil {
		return m.SetRatingsAppliedFunc(ctx, tx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if match, ok := m.matches[id]; ok {
		match.RatingsApplied = true
		match.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockMatchRepository) List(ctx context.Context, status *domain.MatchStatus, limit, offset int) ([]*domain.Match, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Match
	for _, match := range m.matches {
		if status == nil || match.Status == *status {
			out = append(out, match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockCompetitorRepository is a mock implementation of CompetitorRepository.
type MockCompetitorRepository struct {
	mu          sync.RWMutex
	competitors map[string]*domain.Competitor

	CreateFunc            func(ctx context.Context, competitor *domain.Competitor) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Competitor, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Competitor, error)
	UpdateRecordFunc      func(ctx context.Context, tx usecase.Transaction, c *domain.Competitor, updatedAt time.Time) error
}

func NewMockCompetitorRepository() *MockCompetitorRepository {
	return &MockCompetitorRepository{
		competitors: make(map[string]*domain.Competitor),
	}
}

func (m *MockCompetitorRepository) Seed(c *domain.Competitor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.competitors[c.ID] = c
}

func (m *MockCompetitorRepository) Create(ctx context.Context, competitor *domain.Competitor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, competitor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.competitors[competitor.ID] = competitor
	return nil
}

func (m *MockCompetitorRepository) GetByID(ctx context.Context, id string) (*domain.Competitor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.competitors[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCompetitorNotFound
}

func (m *MockCompetitorRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Competitor, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Competitor
	for _, id := range ids {
		if c, ok := m.competitors[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCompetitorRepository) UpdateRecord(ctx context.Context, tx usecase.Transaction, c *domain.Competitor, updatedAt time.Time) error {
	if m.UpdateRecordFunc != nil {
		return m.UpdateRecordFunc(ctx, tx, c, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c.UpdatedAt = updatedAt
	m.competitors[c.ID] = c
	return nil
}

// MockWagerRepository is a mock implementation of WagerRepository.
type MockWagerRepository struct {
	mu     sync.RWMutex
	wagers map[string]*domain.Wager

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Wager, error)
	GetByIDForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wager, error)
	ListPendingByMatchFunc func(ctx context.Context, matchID string) ([]*domain.Wager, error)
	ListByAccountFunc      func(ctx context.Context, accountID string, status *domain.WagerStatus, limit, offset int) ([]*domain.Wager, error)
	SettleFunc             func(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, actualPayout int64, settledAt time.Time) (bool, error)
	CountByMatchFunc       func(ctx context.Context, matchID string) (map[domain.WagerStatus]int, error)
	StatsByAccountFunc     func(ctx context.Context, accountID string) (*domain.WagerStats, error)
}

func NewMockWagerRepository() *MockWagerRepository {
	return &MockWagerRepository{
		wagers: make(map[string]*domain.Wager),
	}
}

func (m *MockWagerRepository) Seed(w *domain.Wager) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wagers[w.ID] = w
}

func (m *MockWagerRepository) Create(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, wager)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wagers[wager.ID] = wager
	return nil
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id string) (*domain.Wager, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wagers[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWagerNotFound
}

func (m *MockWagerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wager, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockWagerRepository) ListPendingByMatch(ctx context.Context, matchID string) ([]*domain.Wager, error) {
	if m.ListPendingByMatchFunc != nil {
		return m.ListPendingByMatchFunc(ctx, matchID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Wager
	for _, w := range m.wagers {
		if w.MatchID == matchID && w.Status == domain.WagerPending {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockWagerRepository) ListByAccount(ctx context.Context, accountID string, status *domain.WagerStatus, limit, offset int) ([]*domain.Wager, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Wager
	for _, w := range m.wagers {
		if w.AccountID == accountID && (status == nil || w.Status == *status) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockWagerRepository) Settle(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, actualPayout int64, settledAt time.Time) (bool, error) {
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, tx, id, status, actualPayout, settledAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wagers[id]
	if !ok || w.Status != domain.WagerPending {
		return false, nil
	}
	w.Status = status
	w.ActualPayout = &actualPayout
	w.SettledAt = &settledAt
	return true, nil
}

func (m *MockWagerRepository) CountByMatch(ctx context.Context, matchID string) (map[domain.WagerStatus]int, error) {
	if m.CountByMatchFunc != nil {
		return m.CountByMatchFunc(ctx, matchID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[domain.WagerStatus]int)
	for _, w := range m.wagers {
		if w.MatchID == matchID {
			counts[w.Status]++
		}
	}
	return counts, nil
}

func (m *MockWagerRepository) StatsByAccount(ctx context.Context, accountID string) (*domain.WagerStats, error) {
	if m.StatsByAccountFunc != nil {
		return m.StatsByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.WagerStats{}
	for _, w := range m.wagers {
		if w.AccountID != accountID {
			continue
		}
		stats.TotalWagers++
		stats.TotalStaked += w.Stake
		switch w.Status {
		case domain.WagerWon:
			stats.WonWagers++
			if w.ActualPayout != nil {
				stats.TotalWon += *w.ActualPayout
			}
		case domain.WagerLost:
			stats.LostWagers++
		case domain.WagerPending:
			stats.PendingCount++
		}
	}
	return stats, nil
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository.
type MockSnapshotRepository struct {
	mu        sync.RWMutex
	snapshots []*domain.PriceSnapshot

	CreateFunc   func(ctx context.Context, tx usecase.Transaction, snapshot *domain.PriceSnapshot) error
	LatestFunc   func(ctx context.Context, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error)
	LatestTxFunc func(ctx context.Context, tx usecase.Transaction, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error)
	HistoryFunc  func(ctx context.Context, matchID string, market domain.MarketType, limit, offset int) ([]*domain.PriceSnapshot, error)
}

func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{}
}

// Snapshots returns a copy of the recorded snapshots in insertion order.
func (m *MockSnapshotRepository) Snapshots() []*domain.PriceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.PriceSnapshot{}, m.snapshots...)
}

func (m *MockSnapshotRepository) Create(ctx context.Context, tx usecase.Transaction, snapshot *domain.PriceSnapshot) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, snapshot)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *MockSnapshotRepository) latestLocked(matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		s := m.snapshots[i]
		if s.MatchID == matchID && s.Market == market {
			return s, nil
		}
	}
	return nil, domain.ErrNoSnapshot
}

func (m *MockSnapshotRepository) Latest(ctx context.Context, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, matchID, market)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestLocked(matchID, market)
}

func (m *MockSnapshotRepository) LatestTx(ctx context.Context, tx usecase.Transaction, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	if m.LatestTxFunc != nil {
		return m.LatestTxFunc(ctx, tx, matchID, market)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestLocked(matchID, market)
}

func (m *MockSnapshotRepository) History(ctx context.Context, matchID string, market domain.MarketType, limit, offset int) ([]*domain.PriceSnapshot, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, matchID, market, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.PriceSnapshot
	for _, s := range m.snapshots {
		if s.MatchID == matchID && s.Market == market {
			out = append(out, s)
		}
	}
	return out, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns a copy of the recorded events in insertion order.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent{}, m.events...)
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	m.data[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
