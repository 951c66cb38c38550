package domain

import "testing"

func TestMatchCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from MatchStatus
		to   MatchStatus
		want bool
	}{
		{name: "scheduled to live", from: MatchScheduled, to: MatchLive, want: true},
		{name: "scheduled to completed", from: MatchScheduled, to: MatchCompleted, want: true},
		{name: "scheduled to cancelled", from: MatchScheduled, to: MatchCancelled, want: true},
		{name: "live to completed", from: MatchLive, to: MatchCompleted, want: true},
		{name: "live to cancelled", from: MatchLive, to: MatchCancelled, want: true},
		{name: "live back to scheduled", from: MatchLive, to: MatchScheduled, want: false},
		{name: "completed to cancelled", from: MatchCompleted, to: MatchCancelled, want: false},
		{name: "completed to live", from: MatchCompleted, to: MatchLive, want: false},
		{name: "cancelled to completed", from: MatchCancelled, to: MatchCompleted, want: false},
		{name: "self transition", from: MatchLive, to: MatchLive, want: false},
		{name: "unknown target", from: MatchScheduled, to: MatchStatus("PAUSED"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{Status: tt.from}
			if got := m.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestMatchSideOf(t *testing.T) {
	m := &Match{CompetitorAID: "comp-a", CompetitorBID: "comp-b"}

	if side, ok := m.SideOf("comp-a"); !ok || side != SideA {
		t.Errorf("expected side A, got %s/%v", side, ok)
	}
	if side, ok := m.SideOf("comp-b"); !ok || side != SideB {
		t.Errorf("expected side B, got %s/%v", side, ok)
	}
	if _, ok := m.SideOf("comp-x"); ok {
		t.Error("outsider must not resolve to a side")
	}
}
