package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryWindowAllowsUpToLimit(t *testing.T) {
	w := NewMemoryWindow(5, time.Minute)
	now := time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		allowed, _, err := w.Reserve(context.Background(), now.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("reserve %d failed: %v", i, err)
		}
		if !allowed {
			t.Fatalf("reserve %d should be allowed", i)
		}
	}

	allowed, retryIn, err := w.Reserve(context.Background(), now.Add(5*time.Second))
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if allowed {
		t.Fatalf("sixth reserve within window should be denied")
	}
	if retryIn <= 0 || retryIn > time.Minute {
		t.Fatalf("retryIn should be bounded by the window, got %s", retryIn)
	}
}

func TestMemoryWindowSlides(t *testing.T) {
	w := NewMemoryWindow(2, time.Minute)
	now := time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if allowed, _, _ := w.Reserve(context.Background(), now); !allowed {
			t.Fatalf("initial reserve %d should be allowed", i)
		}
	}
	if allowed, _, _ := w.Reserve(context.Background(), now.Add(30*time.Second)); allowed {
		t.Fatalf("reserve inside window should be denied")
	}
	if allowed, _, _ := w.Reserve(context.Background(), now.Add(61*time.Second)); !allowed {
		t.Fatalf("reserve after window slid should be allowed")
	}
}

func TestLimiterWaitBlocksUntilSlotFree(t *testing.T) {
	w := NewMemoryWindow(1, time.Minute)
	l := NewLimiter(w, "test", nil)

	now := time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	var slept time.Duration
	l.sleep = func(_ context.Context, d time.Duration) error {
		slept += d
		now = now.Add(d)
		return nil
	}

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("second wait failed: %v", err)
	}
	if slept < 59*time.Second || slept > 61*time.Second {
		t.Fatalf("expected roughly one window of sleep, got %s", slept)
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	w := NewMemoryWindow(1, time.Minute)
	l := NewLimiter(w, "test", nil)

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLimiterNilWindowPassesThrough(t *testing.T) {
	l := NewLimiter(nil, "test", nil)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("nil window should not block: %v", err)
	}

	var nilLimiter *Limiter
	if err := nilLimiter.Wait(context.Background()); err != nil {
		t.Fatalf("nil limiter should not block: %v", err)
	}
}
