package domain

import "time"

// PriceSnapshot is one immutable point in a match market's price history.
// Snapshots are append-only; the current price is always the most recent row.
type PriceSnapshot struct {
	ID        string
	MatchID   string
	Market    MarketType
	PriceA    int32
	PriceB    int32
	VolumeA   int64 // total staked on side A, minor units
	VolumeB   int64
	CreatedAt time.Time
}

// TotalVolume is the combined staked volume across both sides.
func (s *PriceSnapshot) TotalVolume() int64 {
	return s.VolumeA + s.VolumeB
}

// PriceFor returns the quoted price for one side.
func (s *PriceSnapshot) PriceFor(side Side) int32 {
	if side == SideA {
		return s.PriceA
	}
	return s.PriceB
}

// VolumeFor returns the staked volume on one side.
func (s *PriceSnapshot) VolumeFor(side Side) int64 {
	if side == SideA {
		return s.VolumeA
	}
	return s.VolumeB
}
