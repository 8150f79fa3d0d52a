package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"scout-data-service/internal/logging"
)

// Window reserves a slot in a sliding rate limit window. When the window is
// full it reports how long the caller must wait for the oldest reservation to
// fall out.
type Window interface {
	Reserve(ctx context.Context, now time.Time) (allowed bool, retryIn time.Duration, err error)
}

// Limiter blocks callers until a slot in the shared window is free. Slots are
// consumed at reservation time, not at response time, so a burst of callers
// drains the quota in order.
type Limiter struct {
	window Window
	name   string
	logger *slog.Logger
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewLimiter wraps a Window with blocking semantics. name is used only for
// log attribution.
func NewLimiter(window Window, name string, logger *slog.Logger) *Limiter {
	return &Limiter{
		window: window,
		name:   name,
		logger: logger,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// Wait blocks until a request slot is available or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.window == nil {
		return nil
	}

	for {
		allowed, retryIn, err := l.window.Reserve(ctx, l.now())
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}

		if retryIn <= 0 {
			retryIn = 100 * time.Millisecond
		}
		logging.Debug(l.logger, "rate limit window full, waiting",
			slog.String(logging.FieldSource, l.name),
			slog.Duration("retry_in", retryIn),
		)
		if err := l.sleep(ctx, retryIn); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
