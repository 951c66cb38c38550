package dto

import (
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Balance   int64     `json:"balance"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Balance:   a.Balance,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Category      string    `json:"category"`
	Note          string    `json:"note,omitempty"`
	WagerID       *string   `json:"wager_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		AccountID:     e.AccountID,
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Category:      string(e.Category),
		Note:          e.Note,
		WagerID:       e.WagerID,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// WagerResponse represents a wager in API responses.
type WagerResponse struct {
	ID              string     `json:"id"`
	AccountID       string     `json:"account_id"`
	MatchID         string     `json:"match_id"`
	Market          string     `json:"market"`
	Side            string     `json:"side"`
	Stake           int64      `json:"stake"`
	Price           int32      `json:"price"`
	PotentialPayout int64      `json:"potential_payout"`
	Status          string     `json:"status"`
	ActualPayout    *int64     `json:"actual_payout,omitempty"`
	PlacedAt        time.Time  `json:"placed_at"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
}

// WagerFromDomain converts a domain wager to a response.
func WagerFromDomain(w *domain.Wager) *WagerResponse {
	return &WagerResponse{
		ID:              w.ID,
		AccountID:       w.AccountID,
		MatchID:         w.MatchID,
		Market:          string(w.Market),
		Side:            string(w.Side),
		Stake:           w.Stake,
		Price:           w.Price,
		PotentialPayout: w.PotentialPayout,
		Status:          string(w.Status),
		ActualPayout:    w.ActualPayout,
		PlacedAt:        w.PlacedAt,
		SettledAt:       w.SettledAt,
	}
}

// WagersFromDomain converts domain wagers to responses.
func WagersFromDomain(wagers []*domain.Wager) []*WagerResponse {
	result := make([]*WagerResponse, len(wagers))
	for i, w := range wagers {
		result[i] = WagerFromDomain(w)
	}
	return result
}

// WagerStatsResponse represents an account's betting record.
type WagerStatsResponse struct {
	TotalWagers  int     `json:"total_wagers"`
	WonWagers    int     `json:"won_wagers"`
	LostWagers   int     `json:"lost_wagers"`
	PendingCount int     `json:"pending_count"`
	TotalStaked  int64   `json:"total_staked"`
	TotalWon     int64   `json:"total_won"`
	NetProfit    int64   `json:"net_profit"`
	WinRate      float64 `json:"win_rate"`
}

// WagerStatsFromDomain converts domain stats to a response.
func WagerStatsFromDomain(s *domain.WagerStats) *WagerStatsResponse {
	return &WagerStatsResponse{
		TotalWagers:  s.TotalWagers,
		WonWagers:    s.WonWagers,
		LostWagers:   s.LostWagers,
		PendingCount: s.PendingCount,
		TotalStaked:  s.TotalStaked,
		TotalWon:     s.TotalWon,
		NetProfit:    s.NetProfit(),
		WinRate:      s.WinRate(),
	}
}

// CompetitorResponse represents a competitor in API responses.
type CompetitorResponse struct {
	ID           string    `json:"id"`
	Tag          string    `json:"tag"`
	Rating       int       `json:"rating"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	TotalMatches int       `json:"total_matches"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompetitorFromDomain converts a domain competitor to a response.
func CompetitorFromDomain(c *domain.Competitor) *CompetitorResponse {
	return &CompetitorResponse{
		ID:           c.ID,
		Tag:          c.Tag,
		Rating:       c.Rating,
		Wins:         c.Wins,
		Losses:       c.Losses,
		TotalMatches: c.TotalMatches,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// MatchResponse represents a match in API responses.
type MatchResponse struct {
	ID             string    `json:"id"`
	CompetitorAID  string    `json:"competitor_a_id"`
	CompetitorBID  string    `json:"competitor_b_id"`
	Status         string    `json:"status"`
	WageringOpen   bool      `json:"wagering_open"`
	WinnerID       *string   `json:"winner_id,omitempty"`
	ScoreA         *int32    `json:"score_a,omitempty"`
	ScoreB         *int32    `json:"score_b,omitempty"`
	RatingsApplied bool      `json:"ratings_applied"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MatchFromDomain converts a domain match to a response.
func MatchFromDomain(m *domain.Match) *MatchResponse {
	return &MatchResponse{
		ID:             m.ID,
		CompetitorAID:  m.CompetitorAID,
		CompetitorBID:  m.CompetitorBID,
		Status:         string(m.Status),
		WageringOpen:   m.WageringOpen,
		WinnerID:       m.WinnerID,
		ScoreA:         m.ScoreA,
		ScoreB:         m.ScoreB,
		RatingsApplied: m.RatingsApplied,
		ScheduledAt:    m.ScheduledAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// MatchesFromDomain converts domain matches to responses.
func MatchesFromDomain(matches []*domain.Match) []*MatchResponse {
	result := make([]*MatchResponse, len(matches))
	for i, m := range matches {
		result[i] = MatchFromDomain(m)
	}
	return result
}

// PriceResponse represents a price snapshot in API responses.
type PriceResponse struct {
	MatchID   string    `json:"match_id"`
	Market    string    `json:"market"`
	PriceA    int32     `json:"price_a"`
	PriceB    int32     `json:"price_b"`
	VolumeA   int64     `json:"volume_a"`
	VolumeB   int64     `json:"volume_b"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceFromDomain converts a domain snapshot to a response.
func PriceFromDomain(s *domain.PriceSnapshot) *PriceResponse {
	return &PriceResponse{
		MatchID:   s.MatchID,
		Market:    string(s.Market),
		PriceA:    s.PriceA,
		PriceB:    s.PriceB,
		VolumeA:   s.VolumeA,
		VolumeB:   s.VolumeB,
		CreatedAt: s.CreatedAt,
	}
}

// PricesFromDomain converts domain snapshots to responses.
func PricesFromDomain(snapshots []*domain.PriceSnapshot) []*PriceResponse {
	result := make([]*PriceResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = PriceFromDomain(s)
	}
	return result
}

// SettlementResponse represents a settlement summary in API responses.
type SettlementResponse struct {
	MatchID   string `json:"match_id"`
	WinnerID  string `json:"winner_id,omitempty"`
	Total     int    `json:"total"`
	Won       int    `json:"won"`
	Lost      int    `json:"lost"`
	Cancelled int    `json:"cancelled"`
	Failed    int    `json:"failed"`
}

// SettlementFromSummary converts a settlement summary to a response.
func SettlementFromSummary(s *usecase.SettlementSummary) *SettlementResponse {
	return &SettlementResponse{
		MatchID:   s.MatchID,
		WinnerID:  s.WinnerID,
		Total:     s.Total,
		Won:       s.Won,
		Lost:      s.Lost,
		Cancelled: s.Cancelled,
		Failed:    s.Failed,
	}
}

// ReconciliationResponse reports a ledger consistency check.
type ReconciliationResponse struct {
	AccountID         string    `json:"account_id"`
	RecordedBalance   int64     `json:"recorded_balance"`
	CalculatedBalance int64     `json:"calculated_balance"`
	Difference        int64     `json:"difference"`
	IsReconciled      bool      `json:"is_reconciled"`
	CheckedAt         time.Time `json:"checked_at"`
}

// ReconciliationFromResult converts a reconciliation result to a response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// PositionResponse reports the house net position for a match.
type PositionResponse struct {
	MatchID     string `json:"match_id"`
	TotalStaked int64  `json:"total_staked"`
	TotalPaid   int64  `json:"total_paid"`
	HouseNet    int64  `json:"house_net"`
}

// PositionFromDomain converts a match position to a response.
func PositionFromDomain(p *usecase.MatchPosition) *PositionResponse {
	return &PositionResponse{
		MatchID:     p.MatchID,
		TotalStaked: p.TotalStaked,
		TotalPaid:   p.TotalPaid,
		HouseNet:    p.HouseNet,
	}
}

// PriceHealthResponse reports market health checks.
type PriceHealthResponse struct {
	Healthy bool     `json:"healthy"`
	Issues  []string `json:"issues,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
