package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
	"github.com/iho/gowager/internal/usecase/mocks"
)

type matchFixture struct {
	uc             *usecase.MatchUseCase
	matchRepo      *mocks.MockMatchRepository
	competitorRepo *mocks.MockCompetitorRepository
	outboxRepo     *mocks.MockOutboxRepository
}

func newMatchFixture() *matchFixture {
	matchRepo := mocks.NewMockMatchRepository()
	competitorRepo := mocks.NewMockCompetitorRepository()
	outboxRepo := mocks.NewMockOutboxRepository()

	uc := usecase.NewMatchUseCase(
		mocks.NewMockTransactionManager(),
		matchRepo,
		competitorRepo,
		outboxRepo,
		mocks.NewMockIDGenerator(),
		nil,
	)

	return &matchFixture{uc: uc, matchRepo: matchRepo, competitorRepo: competitorRepo, outboxRepo: outboxRepo}
}

func TestMatchUseCase_CreateCompetitor(t *testing.T) {
	f := newMatchFixture()

	competitor, err := f.uc.CreateCompetitor(context.Background(), "shadow", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if competitor.Rating != usecase.DefaultRating {
		t.Errorf("expected default rating %d, got %d", usecase.DefaultRating, competitor.Rating)
	}

	rated, err := f.uc.CreateCompetitor(context.Background(), "ace", 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rated.Rating != 1500 {
		t.Errorf("expected explicit rating kept, got %d", rated.Rating)
	}
}

func TestMatchUseCase_CreateMatch(t *testing.T) {
	f := newMatchFixture()
	f.competitorRepo.Seed(&domain.Competitor{ID: "comp-a"})
	f.competitorRepo.Seed(&domain.Competitor{ID: "comp-b"})

	match, err := f.uc.CreateMatch(context.Background(), "comp-a", "comp-b", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if match.Status != domain.MatchScheduled {
		t.Errorf("expected scheduled match, got %s", match.Status)
	}
	if !match.WageringOpen {
		t.Error("expected wagering open on creation")
	}
}

func TestMatchUseCase_CreateMatch_UnknownCompetitor(t *testing.T) {
	f := newMatchFixture()
	f.competitorRepo.Seed(&domain.Competitor{ID: "comp-a"})

	_, err := f.uc.CreateMatch(context.Background(), "comp-a", "ghost", time.Now())
	if !errors.Is(err, domain.ErrCompetitorNotFound) {
		t.Fatalf("expected ErrCompetitorNotFound, got %v", err)
	}
}

func TestMatchUseCase_Transition(t *testing.T) {
	winner := "comp-a"
	outsider := "comp-x"

	tests := []struct {
		name        string
		from        domain.MatchStatus
		input       usecase.TransitionInput
		expectedErr error
	}{
		{
			name:  "scheduled to live",
			from:  domain.MatchScheduled,
			input: usecase.TransitionInput{MatchID: "match-1", To: domain.MatchLive},
		},
		{
			name:  "live to completed with winner",
			from:  domain.MatchLive,
			input: usecase.TransitionInput{MatchID: "match-1", To: domain.MatchCompleted, WinnerID: &winner},
		},
		{
			name:  "scheduled to cancelled",
			from:  domain.MatchScheduled,
			input: usecase.TransitionInput{MatchID: "match-1", To: domain.MatchCancelled},
		},
		{
			name:        "completed without winner",
			from:        domain.MatchLive,
			input:       usecase.TransitionInput{MatchID: "match-1", To: domain.MatchCompleted},
			expectedErr: domain.ErrWinnerRequired,
		},
		{
			name:        "winner not in match",
			from:        domain.MatchLive,
			input:       usecase.TransitionInput{MatchID: "match-1", To: domain.MatchCompleted, WinnerID: &outsider},
			expectedErr: domain.ErrWinnerNotInMatch,
		},
		{
			name:        "backward transition",
			from:        domain.MatchLive,
			input:       usecase.TransitionInput{MatchID: "match-1", To: domain.MatchScheduled},
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name:        "completed is terminal",
			from:        domain.MatchCompleted,
			input:       usecase.TransitionInput{MatchID: "match-1", To: domain.MatchCancelled},
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name:        "cancelled is terminal",
			from:        domain.MatchCancelled,
			input:       usecase.TransitionInput{MatchID: "match-1", To: domain.MatchLive},
			expectedErr: domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture()
			f.matchRepo.Seed(&domain.Match{
				ID:            "match-1",
				CompetitorAID: "comp-a",
				CompetitorBID: "comp-b",
				Status:        tt.from,
				WageringOpen:  tt.from == domain.MatchScheduled,
			})

			match, err := f.uc.Transition(context.Background(), tt.input)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if match.Status != tt.input.To {
				t.Errorf("expected status %s, got %s", tt.input.To, match.Status)
			}
			if match.WageringOpen {
				t.Error("wagering must close on any transition off scheduled")
			}

			events := f.outboxRepo.Events()
			if len(events) != 2 {
				t.Fatalf("expected match update on both topics, got %d events", len(events))
			}
			if events[0].EventType != domain.EventTypeMatchUpdate {
				t.Errorf("unexpected event type %s", events[0].EventType)
			}
		})
	}
}

func TestMatchUseCase_SetWageringOpen(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.Seed(&domain.Match{ID: "match-1", Status: domain.MatchScheduled, WageringOpen: true})

	match, err := f.uc.SetWageringOpen(context.Background(), "match-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match.WageringOpen {
		t.Error("expected wagering closed")
	}

	match, err = f.uc.SetWageringOpen(context.Background(), "match-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match.WageringOpen {
		t.Error("expected wagering reopened while scheduled")
	}
}

func TestMatchUseCase_SetWageringOpen_PastScheduled(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.Seed(&domain.Match{ID: "match-1", Status: domain.MatchLive})

	_, err := f.uc.SetWageringOpen(context.Background(), "match-1", true)
	if !errors.Is(err, domain.ErrInvalidMatchState) {
		t.Fatalf("expected ErrInvalidMatchState, got %v", err)
	}
}
