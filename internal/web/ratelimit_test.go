package web

import (
	"testing"
	"time"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") {
		t.Fatal("first request from a should pass")
	}
	if rl.Allow("a") {
		t.Error("second request from a should be limited")
	}
	if !rl.Allow("b") {
		t.Error("b has its own bucket")
	}

	now = now.Add(time.Second)
	if !rl.Allow("a") {
		t.Error("a should refill after a second")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		if !rl.Allow("a") {
			t.Fatalf("request %d limited with limiting disabled", i)
		}
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(idleAfter + time.Minute)
	rl.Allow("b")

	if _, ok := rl.clients["a"]; ok {
		t.Error("idle client a should have been dropped")
	}
	if _, ok := rl.clients["b"]; !ok {
		t.Error("client b should be tracked")
	}
}
