package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/infrastructure/metrics"
	"github.com/iho/gowager/internal/pricing"
)

// SettlementUseCase resolves all pending wagers after a match reaches a
// terminal state. Each wager settles in its own transaction behind a
// compare-and-set on status, so re-running settlement is harmless and one
// failing wager never blocks the rest.
type SettlementUseCase struct {
	txManager      TransactionManager
	matchRepo      MatchRepository
	competitorRepo CompetitorRepository
	wagerRepo      WagerRepository
	outboxRepo     OutboxRepository
	ledger         *LedgerUseCase
	idGen          IDGenerator
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	matchRepo MatchRepository,
	competitorRepo CompetitorRepository,
	wagerRepo WagerRepository,
	outboxRepo OutboxRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *SettlementUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &SettlementUseCase{
		txManager:      txManager,
		matchRepo:      matchRepo,
		competitorRepo: competitorRepo,
		wagerRepo:      wagerRepo,
		outboxRepo:     outboxRepo,
		ledger:         ledger,
		idGen:          idGen,
		metrics:        metrics,
		logger:         logger,
	}
}

// SettlementSummary reports the outcome of a settlement run. Counts come
// from the wager table, so repeated runs over the same match report the
// same numbers.
type SettlementSummary struct {
	MatchID   string
	WinnerID  string
	Total     int
	Won       int
	Lost      int
	Cancelled int
	Failed    int
}

// SettleMatch settles every pending wager on a completed match and applies
// the one-time rating update to both competitors.
func (uc *SettlementUseCase) SettleMatch(ctx context.Context, matchID string) (*SettlementSummary, error) {
	match, winnerSide, err := uc.prepare(ctx, matchID)
	if err != nil {
		return nil, err
	}

	wagers, err := uc.wagerRepo.ListPendingByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, wager := range wagers {
		if err := uc.settleOne(ctx, wager, winnerSide); err != nil {
			// A wager left pending here is picked up by the next run.
			uc.logger.Error("wager settlement failed",
				"wager_id", wager.ID,
				"match_id", matchID,
				"error", err,
			)
			failed++
		}
	}

	summary, err := uc.summarize(ctx, match, failed)
	if err != nil {
		return nil, err
	}

	if err := uc.emitSettlementDone(ctx, match, summary); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MatchesSettled.Inc()
	}

	return summary, nil
}

// prepare validates the match, resolves the winning side and applies the
// rating update exactly once, all under the match row lock.
func (uc *SettlementUseCase) prepare(ctx context.Context, matchID string) (*domain.Match, domain.Side, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	match, err := uc.matchRepo.GetByIDForUpdate(txCtx, tx, matchID)
	if err != nil {
		return nil, "", err
	}

	if match.Status != domain.MatchCompleted {
		return nil, "", domain.ErrInvalidMatchState
	}

	if match.WinnerID == nil {
		return nil, "", domain.ErrWinnerRequired
	}

	winnerSide, ok := match.SideOf(*match.WinnerID)
	if !ok {
		return nil, "", domain.ErrWinnerNotInMatch
	}

	if !match.RatingsApplied {
		if err := uc.applyRatings(txCtx, tx, match); err != nil {
			return nil, "", err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, "", err
	}

	return match, winnerSide, nil
}

// applyRatings moves rating points from the loser to the winner and bumps
// both records. Competitors lock in sorted id order.
func (uc *SettlementUseCase) applyRatings(ctx context.Context, tx Transaction, match *domain.Match) error {
	ids := []string{match.CompetitorAID, match.CompetitorBID}
	sort.Strings(ids)

	competitors, err := uc.competitorRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return err
	}
	if len(competitors) != 2 {
		return domain.ErrCompetitorNotFound
	}

	byID := map[string]*domain.Competitor{
		competitors[0].ID: competitors[0],
		competitors[1].ID: competitors[1],
	}

	winner := byID[*match.WinnerID]
	var loser *domain.Competitor
	if competitors[0] == winner {
		loser = competitors[1]
	} else {
		loser = competitors[0]
	}

	newWinner, newLoser := pricing.NextRatings(winner.Rating, loser.Rating)

	winner.Rating = newWinner
	winner.Wins++
	winner.TotalMatches++

	loser.Rating = newLoser
	loser.Losses++
	loser.TotalMatches++

	now := time.Now().UTC()

	if err := uc.competitorRepo.UpdateRecord(ctx, tx, winner, now); err != nil {
		return err
	}
	if err := uc.competitorRepo.UpdateRecord(ctx, tx, loser, now); err != nil {
		return err
	}

	return uc.matchRepo.SetRatingsApplied(ctx, tx, match.ID, now)
}

// settleOne resolves a single wager in its own transaction. The
// compare-and-set on status makes a lost race a no-op.
func (uc *SettlementUseCase) settleOne(ctx context.Context, wager *domain.Wager, winnerSide domain.Side) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()

	status := domain.WagerLost
	var payout int64
	if wager.WonAgainst(winnerSide) {
		status = domain.WagerWon
		payout = wager.PotentialPayout
	}

	updated, err := uc.wagerRepo.Settle(txCtx, tx, wager.ID, status, payout, now)
	if err != nil {
		return err
	}
	if !updated {
		// Already settled by a concurrent run.
		return tx.Commit(txCtx)
	}

	if status == domain.WagerWon {
		if _, err := uc.ledger.CreditTx(txCtx, tx, wager.AccountID, payout, domain.EntryWagerWon, "wager won", &wager.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.WagersSettled.Inc()
		if status == domain.WagerWon {
			uc.metrics.PayoutAmount.Observe(float64(payout))
		}
	}

	return nil
}

// summarize derives the settlement summary from wager table state.
func (uc *SettlementUseCase) summarize(ctx context.Context, match *domain.Match, failed int) (*SettlementSummary, error) {
	counts, err := uc.wagerRepo.CountByMatch(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	winnerID := ""
	if match.WinnerID != nil {
		winnerID = *match.WinnerID
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &SettlementSummary{
		MatchID:   match.ID,
		WinnerID:  winnerID,
		Total:     total,
		Won:       counts[domain.WagerWon],
		Lost:      counts[domain.WagerLost],
		Cancelled: counts[domain.WagerCancelled],
		Failed:    failed,
	}, nil
}

func (uc *SettlementUseCase) emitSettlementDone(ctx context.Context, match *domain.Match, summary *SettlementSummary) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	payload := map[string]any{
		"match_id":      summary.MatchID,
		"winner_id":     summary.WinnerID,
		"total_wagers":  summary.Total,
		"settled_count": summary.Won + summary.Lost,
		"won_count":     summary.Won,
		"lost_count":    summary.Lost,
	}

	for _, topic := range []string{domain.TopicMatch(match.ID), domain.TopicAllMatches} {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			Topic:         topic,
			AggregateID:   match.ID,
			AggregateType: domain.AggregateTypeMatch,
			EventType:     domain.EventTypeSettlementDone,
			Payload:       payload,
			CreatedAt:     now,
			Published:     false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return err
		}
	}

	return tx.Commit(txCtx)
}

// CancelMatchWagers refunds every pending wager on a cancelled match.
// Like settlement, each refund runs in its own transaction behind the
// status compare-and-set.
func (uc *SettlementUseCase) CancelMatchWagers(ctx context.Context, matchID string) (*SettlementSummary, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if match.Status != domain.MatchCancelled {
		return nil, domain.ErrInvalidMatchState
	}

	wagers, err := uc.wagerRepo.ListPendingByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, wager := range wagers {
		if err := uc.refundOne(ctx, wager); err != nil {
			uc.logger.Error("wager refund failed",
				"wager_id", wager.ID,
				"match_id", matchID,
				"error", err,
			)
			failed++
		}
	}

	return uc.summarize(ctx, match, failed)
}

func (uc *SettlementUseCase) refundOne(ctx context.Context, wager *domain.Wager) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()

	updated, err := uc.wagerRepo.Settle(txCtx, tx, wager.ID, domain.WagerCancelled, wager.Stake, now)
	if err != nil {
		return err
	}
	if !updated {
		return tx.Commit(txCtx)
	}

	if _, err := uc.ledger.CreditTx(txCtx, tx, wager.AccountID, wager.Stake, domain.EntryWagerRefund, "match cancelled", &wager.ID); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		Topic:         domain.TopicUser(wager.AccountID),
		AggregateID:   wager.ID,
		AggregateType: domain.AggregateTypeWager,
		EventType:     domain.EventTypeWagerCancelled,
		Payload: map[string]any{
			"account_id": wager.AccountID,
			"wager_id":   wager.ID,
			"refund":     wager.Stake,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}
