package domain

import "time"

// MarketType identifies the kind of market a wager is placed on.
// Only the two-way moneyline market is supported.
type MarketType string

const MarketMoneyline MarketType = "MONEYLINE"

// Side selects one of the two outcomes of a match.
type Side string

const (
	SideA Side = "COMPETITOR_A"
	SideB Side = "COMPETITOR_B"
)

// IsValid reports whether the side is one of the two outcomes.
func (s Side) IsValid() bool {
	return s == SideA || s == SideB
}

// WagerStatus is the lifecycle state of a wager. A wager transitions
// exactly once out of Pending.
type WagerStatus string

const (
	WagerPending   WagerStatus = "PENDING"
	WagerWon       WagerStatus = "WON"
	WagerLost      WagerStatus = "LOST"
	WagerCancelled WagerStatus = "CANCELLED"
)

// Wager is a stake against a priced outcome. The price is locked at
// placement; everything except status, settlement time and actual payout
// is immutable after creation.
type Wager struct {
	ID              string
	AccountID       string
	MatchID         string
	Market          MarketType
	Side            Side
	Stake           int64 // minor units
	Price           int32 // American odds at placement
	PotentialPayout int64 // stake + profit, minor units
	Status          WagerStatus
	ActualPayout    *int64
	PlacedAt        time.Time
	SettledAt       *time.Time
}

// WonAgainst reports whether the wager pays out given the winning side.
func (w *Wager) WonAgainst(winner Side) bool {
	return w.Side == winner
}

// WagerStats aggregates an account's betting record.
type WagerStats struct {
	TotalWagers  int
	WonWagers    int
	LostWagers   int
	PendingCount int
	TotalStaked  int64
	TotalWon     int64
}

// NetProfit is total payouts received minus total staked.
func (s WagerStats) NetProfit() int64 {
	return s.TotalWon - s.TotalStaked
}

// WinRate is the fraction of settled-or-pending wagers that won, in percent.
func (s WagerStats) WinRate() float64 {
	if s.TotalWagers == 0 {
		return 0
	}
	return float64(s.WonWagers) / float64(s.TotalWagers) * 100
}
