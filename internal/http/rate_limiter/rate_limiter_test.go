package rate_limiter

import (
	"testing"
	"time"
)

func TestLimiter_Burst(t *testing.T) {
	l := New(0.001, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.1.1.1") {
			t.Fatalf("request %d should fit in the burst", i+1)
		}
	}
	if l.Allow("1.1.1.1") {
		t.Error("expected the fourth request to be limited")
	}
	if !l.Allow("2.2.2.2") {
		t.Error("limits must be per client")
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l := New(1, 1)
	l.Allow("1.1.1.1")

	l.cleanup(-time.Second)

	if len(l.visitors) != 0 {
		t.Errorf("expected idle visitors to be removed, got %d", len(l.visitors))
	}
}
