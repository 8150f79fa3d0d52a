package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"scout-data-service/internal/logging"
)

// Job is a named unit of sync work with a per-attempt timeout.
type Job struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Runner executes jobs with bounded retries, a fixed backoff between
// attempts, and panic containment. Every run gets a run id that threads
// through the logs of everything the job touches.
type Runner struct {
	logger      *slog.Logger
	maxAttempts int
	backoff     time.Duration
	newRunID    func() string
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRunner constructs a runner. Non-positive maxAttempts means one attempt.
func NewRunner(logger *slog.Logger, maxAttempts int, backoff time.Duration) *Runner {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Runner{
		logger:      logger,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		newRunID:    uuid.NewString,
		sleep:       sleepCtx,
	}
}

// Run executes the job until it succeeds or attempts are exhausted.
func (r *Runner) Run(ctx context.Context, job Job) error {
	runID := r.newRunID()
	logger := r.logger
	if logger != nil {
		logger = logger.With(
			slog.String(logging.FieldJob, job.Name),
			slog.String(logging.FieldRunID, runID),
		)
	}
	ctx = logging.WithContext(ctx, logger)

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		err := r.runOnce(ctx, job)
		elapsed := time.Since(start)

		if err == nil {
			logging.Info(logger, "job succeeded",
				slog.Int(logging.FieldAttempt, attempt),
				slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			)
			return nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}
		logging.Warn(logger, "job attempt failed, retrying",
			slog.Int(logging.FieldAttempt, attempt),
			slog.String("err", err.Error()),
		)
		if r.backoff > 0 {
			if sleepErr := r.sleep(ctx, r.backoff); sleepErr != nil {
				return sleepErr
			}
		}
	}

	logging.Error(logger, "job failed", lastErr,
		slog.Int("attempts", r.maxAttempts),
	)
	return fmt.Errorf("job %s failed after %d attempts: %w", job.Name, r.maxAttempts, lastErr)
}

func (r *Runner) runOnce(ctx context.Context, job Job) (err error) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, rec)
		}
	}()

	return job.Run(ctx)
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
