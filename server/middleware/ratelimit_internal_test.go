package middleware

import (
	"testing"
	"time"

	"github.com/kbukum/voicecheck/resilience"
)

func TestKeyedLimiter_SweepsIdleBuckets(t *testing.T) {
	now := time.Now()
	k := newKeyedLimiter(resilience.RateLimiterConfig{Rate: 0.001, Burst: 1})
	k.now = func() time.Time { return now }

	k.get("idle")
	busy := k.get("busy")
	if !busy.Allow() {
		t.Fatal("first request should pass")
	}
	if k.size() != 2 {
		t.Fatalf("expected 2 buckets, got %d", k.size())
	}

	now = now.Add(sweepInterval)
	if k.get("busy") != busy {
		t.Error("a bucket with spent tokens must survive the sweep")
	}
	if k.size() != 1 {
		t.Errorf("expected the idle bucket to be dropped, got %d buckets", k.size())
	}
}

func TestKeyedLimiter_SweepClockFollowsInjectedNow(t *testing.T) {
	// A clock far behind wall time must still sweep once the interval passes on it.
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	k := newKeyedLimiter(resilience.RateLimiterConfig{Rate: 0.001, Burst: 1})
	k.now = func() time.Time { return now }

	k.get("idle")
	now = now.Add(sweepInterval - time.Second)
	k.get("other")
	if k.size() != 2 {
		t.Fatalf("expected no sweep before the interval, got %d buckets", k.size())
	}

	now = now.Add(time.Second)
	k.get("other")
	if k.size() != 1 {
		t.Errorf("expected idle buckets dropped after the interval, got %d buckets", k.size())
	}
}
