package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// StartingBalance is credited to every account on first access (minor units).
	StartingBalance int64 = 10_000_00

	// DailyBonusAmount is the adjustment credited by the daily bonus (minor units).
	DailyBonusAmount int64 = 100_00

	// PriceCacheTTL bounds staleness of the cached current price. Reads
	// outside a transaction are allowed to be slightly stale.
	PriceCacheTTL = 5 * time.Second
)
