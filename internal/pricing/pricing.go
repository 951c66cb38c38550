// Package pricing is the stateless price model: rating-to-probability
// conversion, probability-to-price quoting with the house edge, volume-skew
// adjustment and payout arithmetic. It has no storage and no side effects so
// every pricing decision is unit-testable in isolation.
package pricing

import "math"

const (
	// HouseEdge inflates the win probability before quoting so the book
	// is profitable in expectation.
	HouseEdge = 0.05

	// Probabilities are clamped away from certainty to avoid degenerate
	// quotes on large rating gaps.
	MinProbability = 0.05
	MaxProbability = 0.95

	// Quoted American prices stay within this magnitude band.
	MinPrice int32 = -10000
	MaxPrice int32 = 10000

	// Volume adjustment only engages once the market has real money in it.
	// VolumeFloor is in minor units (100 chips).
	VolumeFloor int64 = 100_00

	// Exposure ratios inside the neutral band leave the price alone.
	NeutralBandLow  = 0.35
	NeutralBandHigh = 0.65

	// AdjustmentSlope scales the price shift linearly with the distance
	// from the band edge, capping at 21% when one side holds all volume.
	AdjustmentSlope = 0.6
)

// WinProbability converts two Elo ratings into win probabilities using the
// logistic rating curve P(A beats B) = 1 / (1 + 10^((RB - RA) / 400)).
// Both probabilities are clamped to [MinProbability, MaxProbability].
func WinProbability(ratingA, ratingB int) (pA, pB float64) {
	diff := float64(ratingA - ratingB)
	pA = 1 / (1 + math.Pow(10, -diff/400))

	pA = clampProb(pA, MinProbability, MaxProbability)
	pB = clampProb(1-pA, MinProbability, MaxProbability)

	return pA, pB
}

// Price converts a win probability into a signed American price with the
// house edge applied. The favorite (p >= 0.5 after the edge) gets a negative
// quote, the underdog a positive one.
func Price(probability float64) int32 {
	adjusted := clampProb(probability*(1+HouseEdge), 0.01, 0.99)

	var price float64
	if adjusted >= 0.5 {
		price = math.Round(-100 * adjusted / (1 - adjusted))
	} else {
		price = math.Round(100 * (1 - adjusted) / adjusted)
	}

	return clampPrice(int32(price))
}

// AdjustForVolume moves a price based on how one-sided the book is.
// Below the volume floor it is a no-op. Outside the neutral band the price
// shifts toward less favorable when the side is over-exposed and more
// favorable when under-exposed, bounded by AdjustmentSlope.
func AdjustForVolume(price int32, totalVolume, sideVolume int64) int32 {
	if totalVolume < VolumeFloor {
		return price
	}

	ratio := float64(sideVolume) / float64(totalVolume)

	var factor float64
	switch {
	case ratio > NeutralBandHigh:
		factor = 1 - (ratio-NeutralBandHigh)*AdjustmentSlope
	case ratio < NeutralBandLow:
		factor = 1 + (NeutralBandLow-ratio)*AdjustmentSlope
	default:
		return price
	}

	var adjusted float64
	if price > 0 {
		adjusted = float64(price) * factor
	} else {
		// Negative quotes move in magnitude opposite to positive ones:
		// dividing by a factor < 1 makes the favorite more expensive.
		adjusted = float64(price) / factor
	}

	return clampPrice(int32(math.Round(adjusted)))
}

// Payout returns the total payout (stake plus profit) for a stake at an
// American price, in minor units. Integer arithmetic truncates sub-unit
// remainders in the house's favor.
func Payout(stake int64, price int32) int64 {
	return stake + Profit(stake, price)
}

// Profit returns the profit portion of a payout.
func Profit(stake int64, price int32) int64 {
	if price > 0 {
		return stake * int64(price) / 100
	}

	return stake * 100 / abs(int64(price))
}

// ImpliedProbability converts a price back to its implied win probability.
// The house edge is not removed; this is the break-even probability.
func ImpliedProbability(price int32) float64 {
	p := math.Abs(float64(price))
	if price > 0 {
		return 100 / (p + 100)
	}

	return p / (p + 100)
}

func clampProb(p, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, p))
}

func clampPrice(p int32) int32 {
	if p < MinPrice {
		return MinPrice
	}
	if p > MaxPrice {
		return MaxPrice
	}
	return p
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
