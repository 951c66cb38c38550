package domain

import (
	"errors"
	"testing"
)

func TestValidateWagerRequest(t *testing.T) {
	tests := []struct {
		name        string
		market      MarketType
		side        Side
		stake       int64
		expectedErr error
	}{
		{name: "valid", market: MarketMoneyline, side: SideA, stake: 100},
		{name: "zero stake", market: MarketMoneyline, side: SideA, stake: 0, expectedErr: ErrInvalidStake},
		{name: "negative stake", market: MarketMoneyline, side: SideB, stake: -5, expectedErr: ErrInvalidStake},
		{name: "unknown market", market: MarketType("SPREAD"), side: SideA, stake: 100, expectedErr: ErrUnsupportedMarket},
		{name: "unknown side", market: MarketMoneyline, side: Side("DRAW"), stake: 100, expectedErr: ErrInvalidSide},
		// Stake is checked first so a garbage request reports the stake.
		{name: "bad stake wins over bad market", market: MarketType("SPREAD"), side: SideA, stake: 0, expectedErr: ErrInvalidStake},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWagerRequest(tt.market, tt.side, tt.stake)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 20, wantOffset: 0},
		{name: "passthrough", limit: 50, offset: 10, wantLimit: 50, wantOffset: 10},
		{name: "cap limit", limit: 500, offset: 0, wantLimit: 100, wantOffset: 0},
		{name: "negative offset", limit: 20, offset: -5, wantLimit: 20, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got %d/%d, want %d/%d", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestWagerWonAgainst(t *testing.T) {
	w := &Wager{Side: SideA}
	if !w.WonAgainst(SideA) {
		t.Error("wager on the winning side must pay")
	}
	if w.WonAgainst(SideB) {
		t.Error("wager on the losing side must not pay")
	}
}

func TestAccountValidateDebit(t *testing.T) {
	acc := &Account{Balance: 100}
	if err := acc.ValidateDebit(100); err != nil {
		t.Errorf("debit to zero must pass, got %v", err)
	}
	if err := acc.ValidateDebit(101); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
}
