package domain

// ValidateWagerRequest checks the static parts of a wager request before
// any storage is touched. A zero or negative stake must never reach the
// ledger.
func ValidateWagerRequest(market MarketType, side Side, stake int64) error {
	if stake <= 0 {
		return ErrInvalidStake
	}
	if market != MarketMoneyline {
		return ErrUnsupportedMarket
	}
	if !side.IsValid() {
		return ErrInvalidSide
	}
	return nil
}

// ValidatePagination clamps limit/offset to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
