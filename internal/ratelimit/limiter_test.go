package ratelimit

import (
	"testing"
	"time"
)

func TestNilLimiterAllows(t *testing.T) {
	l := New(0, 5)
	if l != nil {
		t.Fatal("expected nil limiter for zero rate")
	}
	for i := 0; i < 100; i++ {
		if !l.Allow("k", time.Now()) {
			t.Fatal("expected nil limiter to allow")
		}
	}
	l.Forget("k")
}

func TestLimiterBurstAndRefill(t *testing.T) {
	l := New(1, 2)
	now := time.Unix(1_700_000_000, 0)

	if !l.Allow("a", now) || !l.Allow("a", now) {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if l.Allow("a", now) {
		t.Fatal("expected third call in the same instant to be denied")
	}
	if !l.Allow("b", now) {
		t.Fatal("expected independent bucket per key")
	}
	if !l.Allow("a", now.Add(time.Second)) {
		t.Fatal("expected a token after one second")
	}
}

func TestLimiterForgetResetsBucket(t *testing.T) {
	l := New(1, 1)
	now := time.Unix(1_700_000_000, 0)

	if !l.Allow("a", now) {
		t.Fatal("expected first call allowed")
	}
	if l.Allow("a", now) {
		t.Fatal("expected bucket to be empty")
	}
	l.Forget("a")
	if !l.Allow("a", now) {
		t.Fatal("expected fresh bucket after forget")
	}
}
