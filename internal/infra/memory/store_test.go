package memory

import (
	"testing"
	"time"
)

func fixedClock(start time.Time) (*time.Time, func() time.Time) {
	current := start
	return &current, func() time.Time { return current }
}

func TestSessionLifecycle(t *testing.T) {
	s := NewStore(0, 0, 0)

	sess, err := s.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected non-empty token")
	}
	if sess.Authenticated {
		t.Fatalf("new session must start unauthenticated")
	}

	got, ok := s.Get(sess.Token)
	if !ok || got.Authenticated {
		t.Fatalf("expected unauthenticated session, got ok=%v %+v", ok, got)
	}

	if !s.Authenticate(sess.Token) {
		t.Fatalf("authenticate should succeed for live session")
	}
	got, ok = s.Get(sess.Token)
	if !ok || !got.Authenticated {
		t.Fatalf("expected authenticated session, got ok=%v %+v", ok, got)
	}
	if got.Token != sess.Token || !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Fatalf("token identity or expiry changed: %+v vs %+v", got, sess)
	}

	s.Invalidate(sess.Token)
	if _, ok := s.Get(sess.Token); ok {
		t.Fatalf("invalidated session should be absent")
	}
	// 再次作廢不應造成任何問題
	s.Invalidate(sess.Token)
	s.Invalidate("never-issued")
}

func TestSessionTokensUnique(t *testing.T) {
	s := NewStore(0, 0, 0)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess, err := s.Create()
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[sess.Token] {
			t.Fatalf("duplicate token issued: %s", sess.Token)
		}
		seen[sess.Token] = true
	}
}

func TestSessionLazyExpiry(t *testing.T) {
	s := NewStore(time.Hour, 0, 0)
	current, clock := fixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.now = clock

	sess, err := s.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Authenticate(sess.Token)

	*current = current.Add(time.Hour - time.Second)
	if _, ok := s.Get(sess.Token); !ok {
		t.Fatalf("session should still be live just before expiry")
	}

	*current = current.Add(time.Second)
	if _, ok := s.Get(sess.Token); ok {
		t.Fatalf("expired session must be treated as absent")
	}
	if s.Authenticate(sess.Token) {
		t.Fatalf("authenticate must fail after expiry")
	}
}

func TestAttemptWindowCeiling(t *testing.T) {
	s := NewStore(0, time.Minute, 10)
	current, clock := fixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.now = clock

	for i := 0; i < 10; i++ {
		if !s.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		s.Record("1.2.3.4")
	}
	if s.Allow("1.2.3.4") {
		t.Fatalf("attempt 11 must be rejected within the window")
	}

	// 其他客戶端不受影響
	if !s.Allow("5.6.7.8") {
		t.Fatalf("other identities must have independent windows")
	}

	// 視窗邊界前一刻仍拒絕，邊界當下恰好解除
	*current = current.Add(time.Minute - time.Millisecond)
	if s.Allow("1.2.3.4") {
		t.Fatalf("rejection must hold until the window boundary")
	}
	*current = current.Add(time.Millisecond)
	if !s.Allow("1.2.3.4") {
		t.Fatalf("rejection must relax exactly at the window boundary")
	}

	// 新視窗從零計數
	s.Record("1.2.3.4")
	if !s.Allow("1.2.3.4") {
		t.Fatalf("new window should start counting from zero")
	}
}
