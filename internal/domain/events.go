package domain

import (
	"fmt"
	"time"
)

// Event types
const (
	EventTypePriceUpdate    = "price:update"
	EventTypeWagerPlaced    = "wager:placed"
	EventTypeWagerCancelled = "wager:cancelled"
	EventTypeSettlementDone = "settlement:done"
	EventTypeMatchUpdate    = "match:update"
)

// Aggregate types
const (
	AggregateTypeWager = "wager"
	AggregateTypeMatch = "match"
)

// Topics scope events to their subscribers. Match-scoped events go to
// the match topic, wager notifications to the owning user's topic, and
// cross-match events additionally to the global topic.
const TopicAllMatches = "match:all"

// TopicMatch returns the topic for a single match's observers.
func TopicMatch(matchID string) string {
	return fmt.Sprintf("match:%s", matchID)
}

// TopicUser returns the topic for a single account's notifications.
func TopicUser(accountID string) string {
	return fmt.Sprintf("user:%s", accountID)
}

// OutboxEvent is an event recorded transactionally alongside the state
// change that produced it, published to the bus after commit.
type OutboxEvent struct {
	ID            string
	Topic         string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// PriceUpdateEvent payload
type PriceUpdateEvent struct {
	MatchID string `json:"match_id"`
	Market  string `json:"market"`
	PriceA  int32  `json:"price_a"`
	PriceB  int32  `json:"price_b"`
	VolumeA int64  `json:"volume_a"`
	VolumeB int64  `json:"volume_b"`
}

// WagerPlacedEvent payload
type WagerPlacedEvent struct {
	AccountID       string `json:"account_id"`
	WagerID         string `json:"wager_id"`
	MatchID         string `json:"match_id"`
	Stake           int64  `json:"stake"`
	Price           int32  `json:"price"`
	PotentialPayout int64  `json:"potential_payout"`
}

// WagerCancelledEvent payload
type WagerCancelledEvent struct {
	AccountID string `json:"account_id"`
	WagerID   string `json:"wager_id"`
	Refund    int64  `json:"refund"`
}

// SettlementDoneEvent payload
type SettlementDoneEvent struct {
	MatchID      string `json:"match_id"`
	TotalWagers  int    `json:"total_wagers"`
	SettledCount int    `json:"settled_count"`
	WonCount     int    `json:"won_count"`
	LostCount    int    `json:"lost_count"`
}

// MatchUpdateEvent payload
type MatchUpdateEvent struct {
	MatchID  string `json:"match_id"`
	Status   string `json:"status"`
	WinnerID string `json:"winner_id,omitempty"`
}
