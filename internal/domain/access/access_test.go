package access

import (
	"testing"
	"time"
)

func TestSessionActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := Session{
		Token:     "tok",
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	if !sess.Active(now) {
		t.Fatalf("session should be active at creation")
	}
	if !sess.Active(now.Add(24*time.Hour - time.Second)) {
		t.Fatalf("session should be active just before expiry")
	}
	if sess.Active(now.Add(24 * time.Hour)) {
		t.Fatalf("session should not be active at expiry")
	}
	if sess.Active(now.Add(48 * time.Hour)) {
		t.Fatalf("session should not be active after expiry")
	}
}
