package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryWindow is an in-process sliding window. It only protects a quota
// within a single worker; deployments with several workers sharing one
// upstream quota should use RedisWindow instead.
type MemoryWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time
}

// NewMemoryWindow builds a sliding window allowing limit reservations per
// window duration.
func NewMemoryWindow(limit int, window time.Duration) *MemoryWindow {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryWindow{limit: limit, window: window}
}

func (w *MemoryWindow) Reserve(_ context.Context, now time.Time) (bool, time.Duration, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-w.window)
	kept := w.stamps[:0]
	for _, ts := range w.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.stamps = kept

	if len(w.stamps) < w.limit {
		w.stamps = append(w.stamps, now)
		return true, 0, nil
	}

	oldest := w.stamps[0]
	retryIn := oldest.Add(w.window).Sub(now)
	if retryIn < 0 {
		retryIn = 0
	}
	return false, retryIn, nil
}
