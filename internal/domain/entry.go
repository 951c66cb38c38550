package domain

import "time"

// EntryCategory classifies a ledger entry by the business event that caused it.
type EntryCategory string

const (
	EntryWagerPlaced EntryCategory = "WAGER_PLACED"
	EntryWagerWon    EntryCategory = "WAGER_WON"
	EntryWagerRefund EntryCategory = "WAGER_REFUND"
	EntryAdjustment  EntryCategory = "ADJUSTMENT"
)

// IsValid reports whether the category is one of the known values.
func (c EntryCategory) IsValid() bool {
	switch c {
	case EntryWagerPlaced, EntryWagerWon, EntryWagerRefund, EntryAdjustment:
		return true
	}
	return false
}

// LedgerEntry is an immutable record of a single balance mutation.
// Entries are append-only: for any account the latest entry's BalanceAfter
// equals the live account balance.
type LedgerEntry struct {
	ID            string
	AccountID     string
	Amount        int64 // signed delta in minor units
	BalanceBefore int64
	BalanceAfter  int64
	Category      EntryCategory
	Note          string
	WagerID       *string
	CreatedAt     time.Time
}
