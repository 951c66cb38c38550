package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/pricing"
)

// PriceUseCase owns the append-only price snapshot sequence per match
// market. The current price is always the latest committed snapshot; the
// first caller pays the cost of lazy initialization from competitor ratings.
type PriceUseCase struct {
	txManager      TransactionManager
	matchRepo      MatchRepository
	competitorRepo CompetitorRepository
	snapshotRepo   SnapshotRepository
	idGen          IDGenerator
	cache          Cache
}

// NewPriceUseCase creates a new PriceUseCase.
func NewPriceUseCase(
	txManager TransactionManager,
	matchRepo MatchRepository,
	competitorRepo CompetitorRepository,
	snapshotRepo SnapshotRepository,
	idGen IDGenerator,
	cache Cache,
) *PriceUseCase {
	return &PriceUseCase{
		txManager:      txManager,
		matchRepo:      matchRepo,
		competitorRepo: competitorRepo,
		snapshotRepo:   snapshotRepo,
		idGen:          idGen,
		cache:          cache,
	}
}

// CurrentPrice returns the latest snapshot for a match market, initializing
// the first snapshot from competitor ratings when none exists. Reads served
// from cache may be slightly stale; the cache is never the source of truth.
func (uc *PriceUseCase) CurrentPrice(ctx context.Context, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	if cached := uc.cacheGet(ctx, matchID, market); cached != nil {
		return cached, nil
	}

	snapshot, err := uc.snapshotRepo.Latest(ctx, matchID, market)
	if err == nil {
		uc.cacheSet(ctx, snapshot)
		return snapshot, nil
	}
	if !errors.Is(err, domain.ErrNoSnapshot) {
		return nil, err
	}

	snapshot, err = uc.initialize(ctx, matchID, market)
	if err != nil {
		return nil, err
	}

	uc.cacheSet(ctx, snapshot)

	return snapshot, nil
}

// initialize writes the first snapshot for a lane. The match row is locked
// so concurrent first callers serialize; the latest-snapshot check is
// repeated under the lock to keep the sequence append-only.
func (uc *PriceUseCase) initialize(ctx context.Context, matchID string, market domain.MarketType) (*domain.PriceSnapshot, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	match, err := uc.matchRepo.GetByIDForUpdate(txCtx, tx, matchID)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.CurrentPriceTx(txCtx, tx, match, market)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// CurrentPriceTx returns the latest snapshot inside the caller's
// transaction, creating the initial snapshot from ratings if the lane is
// empty. The caller must already hold the match row lock.
func (uc *PriceUseCase) CurrentPriceTx(ctx context.Context, tx Transaction, match *domain.Match, market domain.MarketType) (*domain.PriceSnapshot, error) {
	snapshot, err := uc.snapshotRepo.LatestTx(ctx, tx, match.ID, market)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, domain.ErrNoSnapshot) {
		return nil, err
	}

	competitorA, err := uc.competitorRepo.GetByID(ctx, match.CompetitorAID)
	if err != nil {
		return nil, err
	}

	competitorB, err := uc.competitorRepo.GetByID(ctx, match.CompetitorBID)
	if err != nil {
		return nil, err
	}

	pA, pB := pricing.WinProbability(competitorA.Rating, competitorB.Rating)

	snapshot = &domain.PriceSnapshot{
		ID:        uc.idGen.Generate(),
		MatchID:   match.ID,
		Market:    market,
		PriceA:    pricing.Price(pA),
		PriceB:    pricing.Price(pB),
		VolumeA:   0,
		VolumeB:   0,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.snapshotRepo.Create(ctx, tx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// RecordAfterWagerTx appends a new snapshot reflecting a funded wager: the
// stake joins the chosen side's volume and both prices are re-adjusted for
// the new skew. This is the only write path for snapshots after the initial
// one, and it must run after the wager's debit in the same transaction so a
// failed wager never moves the market.
func (uc *PriceUseCase) RecordAfterWagerTx(
	ctx context.Context,
	tx Transaction,
	current *domain.PriceSnapshot,
	side domain.Side,
	stake int64,
) (*domain.PriceSnapshot, error) {
	volumeA := current.VolumeA
	volumeB := current.VolumeB

	if side == domain.SideA {
		volumeA += stake
	} else {
		volumeB += stake
	}

	total := volumeA + volumeB

	snapshot := &domain.PriceSnapshot{
		ID:        uc.idGen.Generate(),
		MatchID:   current.MatchID,
		Market:    current.Market,
		PriceA:    pricing.AdjustForVolume(current.PriceA, total, volumeA),
		PriceB:    pricing.AdjustForVolume(current.PriceB, total, volumeB),
		VolumeA:   volumeA,
		VolumeB:   volumeB,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.snapshotRepo.Create(ctx, tx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// History lists the snapshot sequence for a match market, oldest first.
func (uc *PriceUseCase) History(ctx context.Context, matchID string, market domain.MarketType, limit, offset int) ([]*domain.PriceSnapshot, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.snapshotRepo.History(ctx, matchID, market, limit, offset)
}

// PriceHealth flags markets that want manual review.
type PriceHealth struct {
	Healthy bool
	Issues  []string
}

// Health checks the current price for heavy one-sided volume or extreme
// quotes.
func (uc *PriceUseCase) Health(ctx context.Context, matchID string, market domain.MarketType) (*PriceHealth, error) {
	snapshot, err := uc.CurrentPrice(ctx, matchID, market)
	if err != nil {
		return nil, err
	}

	var issues []string

	if total := snapshot.TotalVolume(); total > 0 {
		ratio := float64(snapshot.VolumeA) / float64(total)
		if ratio > 0.8 {
			issues = append(issues, "over 80% of volume on side A")
		} else if ratio < 0.2 {
			issues = append(issues, "over 80% of volume on side B")
		}
	}

	if snapshot.PriceA > 1000 || snapshot.PriceA < -1000 || snapshot.PriceB > 1000 || snapshot.PriceB < -1000 {
		issues = append(issues, "extreme quote detected")
	}

	return &PriceHealth{Healthy: len(issues) == 0, Issues: issues}, nil
}

// RefreshCache replaces the cached current price after a commit.
func (uc *PriceUseCase) RefreshCache(ctx context.Context, snapshot *domain.PriceSnapshot) {
	uc.cacheSet(ctx, snapshot)
}

func (uc *PriceUseCase) cacheKey(matchID string, market domain.MarketType) string {
	return fmt.Sprintf("price:%s:%s", matchID, market)
}

func (uc *PriceUseCase) cacheGet(ctx context.Context, matchID string, market domain.MarketType) *domain.PriceSnapshot {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, uc.cacheKey(matchID, market))
	if err != nil || raw == "" {
		return nil
	}

	var snapshot domain.PriceSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil
	}

	return &snapshot
}

func (uc *PriceUseCase) cacheSet(ctx context.Context, snapshot *domain.PriceSnapshot) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	// Cache failures only cost a read-through on the next call.
	_ = uc.cache.Set(ctx, uc.cacheKey(snapshot.MatchID, snapshot.Market), string(raw), PriceCacheTTL)
}
