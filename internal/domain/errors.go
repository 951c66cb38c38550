package domain

import "errors"

var (
	// Not found
	ErrAccountNotFound    = errors.New("account not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrWagerNotFound      = errors.New("wager not found")
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrNoSnapshot         = errors.New("no price snapshot for match market")

	// Invalid state
	ErrWageringClosed     = errors.New("wagering is closed for this match")
	ErrInvalidMatchState  = errors.New("match is not in a valid state for this operation")
	ErrWagerNotPending    = errors.New("wager is not pending")
	ErrInvalidTransition  = errors.New("invalid match status transition")
	ErrWinnerRequired     = errors.New("completed match requires a winner")
	ErrWinnerNotInMatch   = errors.New("winner is not a competitor in this match")
	ErrRatingsApplied     = errors.New("ratings already applied for this match")
	ErrNotWagerOwner      = errors.New("wager belongs to a different account")

	// Funds
	ErrInsufficientFunds  = errors.New("insufficient chip balance")
	ErrExposureCapReached = errors.New("match exposure cap reached")

	// Validation
	ErrInvalidStake      = errors.New("stake must be a positive amount")
	ErrUnsupportedMarket = errors.New("only moneyline markets are supported")
	ErrInvalidSide       = errors.New("invalid side selection")
	ErrInvalidCategory   = errors.New("invalid ledger entry category")
	ErrInvalidAmount     = errors.New("amount must be positive")
)
