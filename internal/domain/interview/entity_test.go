package interview

import (
	"testing"
	"time"
)

func TestStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusActive, true},
		{StatusPending, StatusExpired, true},
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusExpired, true},

		{StatusPending, StatusCompleted, false},
		{StatusCompleted, StatusActive, false},
		{StatusCompleted, StatusExpired, false},
		{StatusExpired, StatusActive, false},
		{StatusExpired, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusActive.IsTerminal() {
		t.Error("live statuses must not be terminal")
	}
	if !StatusCompleted.IsTerminal() || !StatusExpired.IsTerminal() {
		t.Error("completed and expired must be terminal")
	}
}

func TestAssessmentTokenExpiredAt(t *testing.T) {
	now := time.Now().UTC()
	tok := AssessmentToken{ExpiresAt: now.Add(time.Hour)}
	if tok.ExpiredAt(now) {
		t.Error("token should still be valid")
	}
	if !tok.ExpiredAt(now.Add(2 * time.Hour)) {
		t.Error("token should be expired")
	}
}
