package sources

import (
	"context"
	"log/slog"
	"time"

	"scout-data-service/internal/domain"
	"scout-data-service/internal/logging"
	"scout-data-service/internal/metrics"
)

// instrumentedSource wraps a GameSource with structured logging and metrics.
type instrumentedSource struct {
	inner    GameSource
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewInstrumentedSource decorates a source with per-call logging and counter
// updates. Either logger or recorder may be nil.
func NewInstrumentedSource(inner GameSource, logger *slog.Logger, recorder *metrics.Recorder) GameSource {
	return &instrumentedSource{
		inner:    inner,
		logger:   logger,
		recorder: recorder,
	}
}

func (s *instrumentedSource) Name() string {
	if s == nil || s.inner == nil {
		return "instrumented"
	}
	return s.inner.Name()
}

func (s *instrumentedSource) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if s == nil || s.inner == nil {
		return nil, ErrSourceUnavailable
	}

	start := time.Now()
	records, err := s.inner.FetchGames(ctx, date)
	elapsed := time.Since(start)

	s.recorder.RecordSourceAttempt(s.Name(), elapsed, err)

	logger := logging.FromContext(ctx, s.logger)
	if err != nil {
		if rlErr, ok := AsRateLimitError(err); ok {
			s.recorder.RecordRateLimit(s.Name(), rlErr.RetryAfter)
		}
		logging.Warn(logger, "source fetch failed",
			slog.String(logging.FieldSource, s.Name()),
			slog.String(logging.FieldDate, date),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	logging.Info(logger, "source fetch succeeded",
		slog.String(logging.FieldSource, s.Name()),
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(records)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return records, nil
}
