package sources

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"scout-data-service/internal/domain"
	"scout-data-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultRetryInterval = 2 * time.Second
)

// retryingSource wraps a GameSource with bounded exponential backoff.
// Configuration errors are permanent and short-circuit the retry loop.
type retryingSource struct {
	inner       GameSource
	logger      *slog.Logger
	maxAttempts uint64
	interval    time.Duration
}

// NewRetryingSource wraps the given source with retries. Non-positive
// maxAttempts/interval fall back to defaults.
func NewRetryingSource(inner GameSource, logger *slog.Logger, maxAttempts int, interval time.Duration) GameSource {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		maxAttempts: uint64(maxAttempts),
		interval:    interval,
	}
}

func (r *retryingSource) Name() string {
	if r == nil || r.inner == nil {
		return "retrying"
	}
	return r.inner.Name()
}

func (r *retryingSource) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if r == nil || r.inner == nil {
		return nil, ErrSourceUnavailable
	}

	attempt := 0
	operation := func() ([]domain.GameRecord, error) {
		attempt++
		records, err := r.inner.FetchGames(ctx, date)
		if err == nil {
			return records, nil
		}
		if errors.Is(err, ErrNotConfigured) {
			return nil, backoff.Permanent(err)
		}
		logging.Warn(logging.FromContext(ctx, r.logger), "source fetch retry",
			slog.String(logging.FieldSource, r.Name()),
			slog.String(logging.FieldDate, date),
			slog.Int(logging.FieldAttempt, attempt),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.interval

	records, err := backoff.RetryWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, r.maxAttempts-1), ctx))
	if err != nil {
		return nil, err
	}
	return records, nil
}
