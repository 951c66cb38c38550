package usecase

import (
	"context"
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/infrastructure/metrics"
)

// MatchUseCase manages competitors and the match lifecycle.
type MatchUseCase struct {
	txManager      TransactionManager
	matchRepo      MatchRepository
	competitorRepo CompetitorRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	metrics        *metrics.Metrics
}

// NewMatchUseCase creates a new MatchUseCase.
func NewMatchUseCase(
	txManager TransactionManager,
	matchRepo MatchRepository,
	competitorRepo CompetitorRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *MatchUseCase {
	return &MatchUseCase{
		txManager:      txManager,
		matchRepo:      matchRepo,
		competitorRepo: competitorRepo,
		outboxRepo:     outboxRepo,
		idGen:          idGen,
		metrics:        metrics,
	}
}

// DefaultRating seeds new competitors at the conventional Elo baseline.
const DefaultRating = 1200

// CreateCompetitor registers a competitor. A zero rating falls back to the
// default baseline.
func (uc *MatchUseCase) CreateCompetitor(ctx context.Context, tag string, rating int) (*domain.Competitor, error) {
	if rating == 0 {
		rating = DefaultRating
	}

	now := time.Now().UTC()
	competitor := &domain.Competitor{
		ID:        uc.idGen.Generate(),
		Tag:       tag,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.competitorRepo.Create(ctx, competitor); err != nil {
		return nil, err
	}

	return competitor, nil
}

// GetCompetitor retrieves a competitor by id.
func (uc *MatchUseCase) GetCompetitor(ctx context.Context, id string) (*domain.Competitor, error) {
	return uc.competitorRepo.GetByID(ctx, id)
}

// CreateMatch schedules a match between two competitors. Wagering opens
// immediately.
func (uc *MatchUseCase) CreateMatch(ctx context.Context, competitorAID, competitorBID string, scheduledAt time.Time) (*domain.Match, error) {
	if _, err := uc.competitorRepo.GetByID(ctx, competitorAID); err != nil {
		return nil, err
	}
	if _, err := uc.competitorRepo.GetByID(ctx, competitorBID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	match := &domain.Match{
		ID:            uc.idGen.Generate(),
		CompetitorAID: competitorAID,
		CompetitorBID: competitorBID,
		Status:        domain.MatchScheduled,
		WageringOpen:  true,
		ScheduledAt:   scheduledAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MatchesCreated.Inc()
	}

	return match, nil
}

// TransitionInput represents input for a match status transition.
type TransitionInput struct {
	MatchID  string
	To       domain.MatchStatus
	WinnerID *string
	ScoreA   *int32
	ScoreB   *int32
}

// Transition moves a match forward through its lifecycle. Going live
// closes wagering; completing requires a winner who is in the match.
// Settlement of the wagers is a separate step.
func (uc *MatchUseCase) Transition(ctx context.Context, input TransitionInput) (*domain.Match, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	match, err := uc.matchRepo.GetByIDForUpdate(txCtx, tx, input.MatchID)
	if err != nil {
		return nil, err
	}

	if !match.CanTransition(input.To) {
		return nil, domain.ErrInvalidTransition
	}

	if input.To == domain.MatchCompleted {
		if input.WinnerID == nil {
			return nil, domain.ErrWinnerRequired
		}
		if !match.HasCompetitor(*input.WinnerID) {
			return nil, domain.ErrWinnerNotInMatch
		}
		match.WinnerID = input.WinnerID
		match.ScoreA = input.ScoreA
		match.ScoreB = input.ScoreB
	}

	match.Status = input.To
	if input.To != domain.MatchScheduled {
		match.WageringOpen = false
	}
	match.UpdatedAt = time.Now().UTC()

	if err := uc.matchRepo.Update(txCtx, tx, match); err != nil {
		return nil, err
	}

	winnerID := ""
	if match.WinnerID != nil {
		winnerID = *match.WinnerID
	}

	payload := map[string]any{
		"match_id":  match.ID,
		"status":    string(match.Status),
		"winner_id": winnerID,
	}

	for _, topic := range []string{domain.TopicMatch(match.ID), domain.TopicAllMatches} {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			Topic:         topic,
			AggregateID:   match.ID,
			AggregateType: domain.AggregateTypeMatch,
			EventType:     domain.EventTypeMatchUpdate,
			Payload:       payload,
			CreatedAt:     match.UpdatedAt,
			Published:     false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return match, nil
}

// SetWageringOpen toggles wagering on a scheduled match. Matches past
// Scheduled never reopen.
func (uc *MatchUseCase) SetWageringOpen(ctx context.Context, matchID string, open bool) (*domain.Match, error) {
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

	if match.Status != domain.MatchScheduled {
		return nil, domain.ErrInvalidMatchState
	}

	match.WageringOpen = open
	match.UpdatedAt = time.Now().UTC()

	if err := uc.matchRepo.Update(txCtx, tx, match); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return match, nil
}

// Get retrieves a match by id.
func (uc *MatchUseCase) Get(ctx context.Context, matchID string) (*domain.Match, error) {
	return uc.matchRepo.GetByID(ctx, matchID)
}

// List lists matches, optionally filtered by status.
func (uc *MatchUseCase) List(ctx context.Context, status *domain.MatchStatus, limit, offset int) ([]*domain.Match, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.matchRepo.List(ctx, status, limit, offset)
}
