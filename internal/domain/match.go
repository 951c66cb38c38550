package domain

import "time"

// MatchStatus is the lifecycle state of a match. Transitions are monotonic.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchLive      MatchStatus = "LIVE"
	MatchCompleted MatchStatus = "COMPLETED"
	MatchCancelled MatchStatus = "CANCELLED"
)

// statusRank orders statuses for the monotonic transition guard.
// Cancelled is terminal and reachable from Scheduled or Live.
var statusRank = map[MatchStatus]int{
	MatchScheduled: 0,
	MatchLive:      1,
	MatchCompleted: 2,
	MatchCancelled: 2,
}

// Match is a head-to-head contest between two competitors.
type Match struct {
	ID             string
	CompetitorAID  string
	CompetitorBID  string
	Status         MatchStatus
	WageringOpen   bool
	WinnerID       *string
	ScoreA         *int32
	ScoreB         *int32
	RatingsApplied bool
	ScheduledAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanTransition reports whether the match may move to the target status.
// Backward transitions are never allowed; Completed and Cancelled are terminal.
func (m *Match) CanTransition(to MatchStatus) bool {
	fromRank, ok := statusRank[m.Status]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	if m.Status == MatchCompleted || m.Status == MatchCancelled {
		return false
	}
	if to == MatchCancelled {
		return true
	}
	return toRank > fromRank
}

// HasCompetitor reports whether id is one of the match's competitors.
func (m *Match) HasCompetitor(id string) bool {
	return id == m.CompetitorAID || id == m.CompetitorBID
}

// SideOf returns the side a competitor occupies in the match.
func (m *Match) SideOf(competitorID string) (Side, bool) {
	switch competitorID {
	case m.CompetitorAID:
		return SideA, true
	case m.CompetitorBID:
		return SideB, true
	}
	return "", false
}

// Competitor carries the skill rating and win/loss record used to seed prices.
// Mutated only by settlement after a match completes.
type Competitor struct {
	ID           string
	Tag          string
	Rating       int
	Wins         int
	Losses       int
	TotalMatches int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
