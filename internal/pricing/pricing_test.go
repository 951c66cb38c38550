package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinProbability(t *testing.T) {
	tests := []struct {
		name    string
		ratingA int
		ratingB int
		wantA   float64
		wantB   float64
	}{
		{name: "equal ratings", ratingA: 1200, ratingB: 1200, wantA: 0.5, wantB: 0.5},
		{name: "200 point favorite", ratingA: 1400, ratingB: 1200, wantA: 0.7597, wantB: 0.2403},
		{name: "huge gap clamps", ratingA: 2200, ratingB: 1200, wantA: 0.95, wantB: 0.05},
		{name: "huge gap clamps underdog side", ratingA: 1200, ratingB: 2200, wantA: 0.05, wantB: 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pA, pB := WinProbability(tt.ratingA, tt.ratingB)
			assert.InDelta(t, tt.wantA, pA, 0.0001)
			assert.InDelta(t, tt.wantB, pB, 0.0001)
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		want        int32
	}{
		// The house edge makes both sides of a coin flip favorites.
		{name: "even match", probability: 0.5, want: -111},
		{name: "clear favorite", probability: 0.7597469, want: -394},
		{name: "clear underdog", probability: 0.2402531, want: 296},
		{name: "clamped favorite", probability: 0.95, want: -9900},
		{name: "clamped underdog", probability: 0.05, want: 1805},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.probability))
		})
	}
}

func TestPriceSymmetry(t *testing.T) {
	// Both quotes of an even market carry the edge: implied probabilities
	// must sum to more than 1.
	pA, pB := WinProbability(1200, 1200)
	total := ImpliedProbability(Price(pA)) + ImpliedProbability(Price(pB))
	assert.Greater(t, total, 1.0)
}

func TestAdjustForVolume(t *testing.T) {
	tests := []struct {
		name        string
		price       int32
		totalVolume int64
		sideVolume  int64
		want        int32
	}{
		{name: "below floor untouched", price: -111, totalVolume: 50_00, sideVolume: 50_00, want: -111},
		{name: "neutral band untouched", price: -111, totalVolume: 200_00, sideVolume: 100_00, want: -111},
		{name: "band edge untouched", price: 296, totalVolume: 100_00, sideVolume: 65_00, want: 296},
		{name: "over-exposed positive shrinks", price: 111, totalVolume: 200_00, sideVolume: 160_00, want: 101},
		{name: "under-exposed negative shrinks in magnitude", price: -111, totalVolume: 200_00, sideVolume: 40_00, want: -102},
		{name: "over-exposed negative grows in magnitude", price: -111, totalVolume: 200_00, sideVolume: 160_00, want: -122},
		{name: "all volume one side caps at slope", price: 100, totalVolume: 200_00, sideVolume: 200_00, want: 79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustForVolume(tt.price, tt.totalVolume, tt.sideVolume))
		})
	}
}

func TestPayout(t *testing.T) {
	tests := []struct {
		name  string
		stake int64
		price int32
		want  int64
	}{
		{name: "negative price", stake: 500_00, price: -150, want: 833_33},
		{name: "positive price", stake: 100_00, price: 150, want: 250_00},
		{name: "even odds quote", stake: 100_00, price: -100, want: 200_00},
		{name: "truncates toward house", stake: 100, price: -300, want: 133},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Payout(tt.stake, tt.price))
		})
	}
}

func TestImpliedProbability(t *testing.T) {
	assert.InDelta(t, 0.6, ImpliedProbability(-150), 0.0001)
	assert.InDelta(t, 0.4, ImpliedProbability(150), 0.0001)
}
