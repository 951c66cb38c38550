package usecase

import (
	"context"
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/infrastructure/metrics"
	"github.com/iho/gowager/internal/pricing"
)

// WagerUseCase handles wager placement and cancellation. Placement locks
// the price at the moment of commitment: the stake is debited, the wager
// recorded and the new price snapshot written in one transaction, so the
// market never reflects a wager that was not funded.
type WagerUseCase struct {
	txManager   TransactionManager
	matchRepo   MatchRepository
	wagerRepo   WagerRepository
	outboxRepo  OutboxRepository
	ledger      *LedgerUseCase
	prices      *PriceUseCase
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
	maxExposure int64
}

// NewWagerUseCase creates a new WagerUseCase. The retrier re-runs placement
// on deadlock or serialization failures and may be nil. maxExposure caps
// total wagered volume per match market in minor units; zero disables the cap.
func NewWagerUseCase(
	txManager TransactionManager,
	matchRepo MatchRepository,
	wagerRepo WagerRepository,
	outboxRepo OutboxRepository,
	ledger *LedgerUseCase,
	prices *PriceUseCase,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
	maxExposure int64,
) *WagerUseCase {
	return &WagerUseCase{
		txManager:   txManager,
		matchRepo:   matchRepo,
		wagerRepo:   wagerRepo,
		outboxRepo:  outboxRepo,
		ledger:      ledger,
		prices:      prices,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
		maxExposure: maxExposure,
	}
}

// PlaceWagerInput represents input for placing a wager.
type PlaceWagerInput struct {
	AccountID string
	MatchID   string
	Market    domain.MarketType
	Side      domain.Side
	Stake     int64
}

// PlaceWager places a wager at the current price. The match row lock
// serializes all placements on the same match, so every wager reads the
// latest snapshot and appends exactly one successor.
func (uc *WagerUseCase) PlaceWager(ctx context.Context, input PlaceWagerInput) (*domain.Wager, error) {
	// 0. Validate input before starting the transaction
	if err := domain.ValidateWagerRequest(input.Market, input.Side, input.Stake); err != nil {
		return nil, err
	}

	if uc.retrier == nil {
		return uc.placeOnce(ctx, input)
	}

	var wager *domain.Wager
	err := uc.retrier.Retry(ctx, func() error {
		var placeErr error
		wager, placeErr = uc.placeOnce(ctx, input)
		return placeErr
	})

	return wager, err
}

// placeOnce runs a single placement attempt in one transaction.
func (uc *WagerUseCase) placeOnce(ctx context.Context, input PlaceWagerInput) (*domain.Wager, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// 1. Lock the match and check it still takes wagers
	match, err := uc.matchRepo.GetByIDForUpdate(txCtx, tx, input.MatchID)
	if err != nil {
		return nil, err
	}

	if match.Status != domain.MatchScheduled || !match.WageringOpen {
		return nil, domain.ErrWageringClosed
	}

	// 2. Read the current price under the match lock
	current, err := uc.prices.CurrentPriceTx(txCtx, tx, match, input.Market)
	if err != nil {
		return nil, err
	}

	if uc.maxExposure > 0 && current.TotalVolume()+input.Stake > uc.maxExposure {
		return nil, domain.ErrExposureCapReached
	}

	// 3. Lock the price and compute the payout before touching the balance
	price := current.PriceFor(input.Side)
	payout := pricing.Payout(input.Stake, price)

	now := time.Now().UTC()
	wagerID := uc.idGen.Generate()

	// 4. Debit the stake; fails here leave no trace
	if _, err := uc.ledger.DebitTx(txCtx, tx, input.AccountID, input.Stake, domain.EntryWagerPlaced, "wager stake", &wagerID); err != nil {
		return nil, err
	}

	wager := &domain.Wager{
		ID:              wagerID,
		AccountID:       input.AccountID,
		MatchID:         input.MatchID,
		Market:          input.Market,
		Side:            input.Side,
		Stake:           input.Stake,
		Price:           price,
		PotentialPayout: payout,
		Status:          domain.WagerPending,
		PlacedAt:        now,
	}

	if err := uc.wagerRepo.Create(txCtx, tx, wager); err != nil {
		return nil, err
	}

	// 5. Move the market only after the stake is funded
	next, err := uc.prices.RecordAfterWagerTx(txCtx, tx, current, input.Side, input.Stake)
	if err != nil {
		return nil, err
	}

	// 6. Emit wager placed and price update events
	placedEvent := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		Topic:         domain.TopicUser(input.AccountID),
		AggregateID:   wager.ID,
		AggregateType: domain.AggregateTypeWager,
		EventType:     domain.EventTypeWagerPlaced,
		Payload: map[string]any{
			"account_id":       wager.AccountID,
			"wager_id":         wager.ID,
			"match_id":         wager.MatchID,
			"stake":            wager.Stake,
			"price":            wager.Price,
			"potential_payout": wager.PotentialPayout,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, placedEvent); err != nil {
		return nil, err
	}

	priceEvent := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		Topic:         domain.TopicMatch(match.ID),
		AggregateID:   match.ID,
		AggregateType: domain.AggregateTypeMatch,
		EventType:     domain.EventTypePriceUpdate,
		Payload: map[string]any{
			"match_id": next.MatchID,
			"market":   string(next.Market),
			"price_a":  next.PriceA,
			"price_b":  next.PriceB,
			"volume_a": next.VolumeA,
			"volume_b": next.VolumeB,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, priceEvent); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WagersPlaced.Inc()
		uc.metrics.StakeAmount.Observe(float64(input.Stake))
	}

	uc.prices.RefreshCache(ctx, next)

	return wager, nil
}

// CancelWager voids a pending wager and refunds the stake. Only the owner
// may cancel, and only while the match has not gone live. The wagered
// volume stays in the snapshot history; prices are not rewound.
func (uc *WagerUseCase) CancelWager(ctx context.Context, accountID, wagerID string) (*domain.Wager, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	wager, err := uc.wagerRepo.GetByIDForUpdate(txCtx, tx, wagerID)
	if err != nil {
		return nil, err
	}

	if wager.AccountID != accountID {
		return nil, domain.ErrNotWagerOwner
	}

	if wager.Status != domain.WagerPending {
		return nil, domain.ErrWagerNotPending
	}

	match, err := uc.matchRepo.GetByID(txCtx, wager.MatchID)
	if err != nil {
		return nil, err
	}

	if match.Status != domain.MatchScheduled {
		return nil, domain.ErrInvalidMatchState
	}

	now := time.Now().UTC()

	if _, err := uc.ledger.CreditTx(txCtx, tx, accountID, wager.Stake, domain.EntryWagerRefund, "wager cancelled", &wager.ID); err != nil {
		return nil, err
	}

	updated, err := uc.wagerRepo.Settle(txCtx, tx, wager.ID, domain.WagerCancelled, wager.Stake, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrWagerNotPending
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		Topic:         domain.TopicUser(accountID),
		AggregateID:   wager.ID,
		AggregateType: domain.AggregateTypeWager,
		EventType:     domain.EventTypeWagerCancelled,
		Payload: map[string]any{
			"account_id": accountID,
			"wager_id":   wager.ID,
			"refund":     wager.Stake,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WagersCancelled.Inc()
	}

	refund := wager.Stake
	wager.Status = domain.WagerCancelled
	wager.ActualPayout = &refund
	wager.SettledAt = &now

	return wager, nil
}

// Get retrieves a wager, restricted to its owner.
func (uc *WagerUseCase) Get(ctx context.Context, accountID, wagerID string) (*domain.Wager, error) {
	wager, err := uc.wagerRepo.GetByID(ctx, wagerID)
	if err != nil {
		return nil, err
	}

	if wager.AccountID != accountID {
		return nil, domain.ErrNotWagerOwner
	}

	return wager, nil
}

// ListByAccount lists an account's wagers, newest first, optionally
// filtered by status.
func (uc *WagerUseCase) ListByAccount(ctx context.Context, accountID string, status *domain.WagerStatus, limit, offset int) ([]*domain.Wager, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.wagerRepo.ListByAccount(ctx, accountID, status, limit, offset)
}
