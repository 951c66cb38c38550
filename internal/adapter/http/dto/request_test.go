package dto

import (
	"testing"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

func TestPlaceWagerRequest_ToUseCaseInput(t *testing.T) {
	req := &PlaceWagerRequest{
		MatchID: "match-1",
		Market:  "MONEYLINE",
		Side:    "A",
		Stake:   50_00,
	}

	got := req.ToUseCaseInput("acct-1")
	want := usecase.PlaceWagerInput{
		AccountID: "acct-1",
		MatchID:   "match-1",
		Market:    domain.MarketMoneyline,
		Side:      domain.SideA,
		Stake:     50_00,
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestPlaceWagerRequest_DefaultsMarket(t *testing.T) {
	req := &PlaceWagerRequest{
		MatchID: "match-1",
		Side:    "B",
		Stake:   10_00,
	}

	got := req.ToUseCaseInput("acct-1")
	if got.Market != domain.MarketMoneyline {
		t.Fatalf("expected moneyline default, got %s", got.Market)
	}
}

func TestTransitionMatchRequest_ToUseCaseInput(t *testing.T) {
	winner := "comp-a"
	scoreA := int32(3)
	scoreB := int32(1)

	req := &TransitionMatchRequest{
		Status:   "COMPLETED",
		WinnerID: &winner,
		ScoreA:   &scoreA,
		ScoreB:   &scoreB,
	}

	got := req.ToUseCaseInput("match-1")

	if got.MatchID != "match-1" || got.To != domain.MatchCompleted {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.WinnerID == nil || *got.WinnerID != "comp-a" {
		t.Fatalf("expected winner to propagate, got %+v", got.WinnerID)
	}
	if got.ScoreA == nil || *got.ScoreA != 3 || got.ScoreB == nil || *got.ScoreB != 1 {
		t.Fatalf("expected scores to propagate, got %+v %+v", got.ScoreA, got.ScoreB)
	}
}
