package dto

import (
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// PlaceWagerRequest represents a request to place a wager.
type PlaceWagerRequest struct {
	MatchID string `json:"match_id"`
	Market  string `json:"market"`
	Side    string `json:"side"`
	Stake   int64  `json:"stake"`
}

// ToUseCaseInput converts to use case input. An empty market defaults to
// moneyline since it is the only market offered.
func (r *PlaceWagerRequest) ToUseCaseInput(accountID string) usecase.PlaceWagerInput {
	market := domain.MarketType(r.Market)
	if r.Market == "" {
		market = domain.MarketMoneyline
	}
	return usecase.PlaceWagerInput{
		AccountID: accountID,
		MatchID:   r.MatchID,
		Market:    market,
		Side:      domain.Side(r.Side),
		Stake:     r.Stake,
	}
}

// CreateCompetitorRequest represents a request to register a competitor.
type CreateCompetitorRequest struct {
	Tag    string `json:"tag"`
	Rating int    `json:"rating,omitempty"`
}

// CreateMatchRequest represents a request to schedule a match.
type CreateMatchRequest struct {
	CompetitorAID string     `json:"competitor_a_id"`
	CompetitorBID string     `json:"competitor_b_id"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
}

// TransitionMatchRequest represents a request to move a match through its
// lifecycle.
type TransitionMatchRequest struct {
	Status   string  `json:"status"`
	WinnerID *string `json:"winner_id,omitempty"`
	ScoreA   *int32  `json:"score_a,omitempty"`
	ScoreB   *int32  `json:"score_b,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransitionMatchRequest) ToUseCaseInput(matchID string) usecase.TransitionInput {
	return usecase.TransitionInput{
		MatchID:  matchID,
		To:       domain.MatchStatus(r.Status),
		WinnerID: r.WinnerID,
		ScoreA:   r.ScoreA,
		ScoreB:   r.ScoreB,
	}
}

// SetWageringRequest represents a request to open or close wagering.
type SetWageringRequest struct {
	Open bool `json:"open"`
}
