package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scout-data-service/internal/logging"
	"scout-data-service/internal/reconcile"
	"scout-data-service/internal/timeutil"
)

// Syncer is the reconciliation surface the jobs drive.
type Syncer interface {
	SyncSchedule(ctx context.Context, date string, force bool) (reconcile.ScheduleSummary, error)
	SyncPlayers(ctx context.Context) (reconcile.PlayerSummary, error)
}

// ScheduleJob syncs the schedule for the next `days` days starting today in
// the given location. A failed date does not stop the remaining dates.
func ScheduleJob(engine Syncer, days int, timeout time.Duration, loc *time.Location, force bool) Job {
	if days <= 0 {
		days = 1
	}
	if loc == nil {
		loc = time.UTC
	}
	return Job{
		Name:    "schedule-sync",
		Timeout: timeout,
		Run: func(ctx context.Context) error {
			logger := logging.FromContext(ctx, nil)

			var failures []error
			for _, date := range timeutil.DateRange(time.Now().In(loc), days) {
				summary, err := engine.SyncSchedule(ctx, date, force)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					failures = append(failures, fmt.Errorf("%s: %w", date, err))
					continue
				}
				logging.Info(logger, "schedule synced",
					slog.String(logging.FieldDate, date),
					slog.Int("fetched", summary.Fetched),
					slog.Int("created", summary.Created),
					slog.Int("updated", summary.Updated),
					slog.Int("skipped", summary.Skipped),
				)
			}

			if len(failures) == days {
				return fmt.Errorf("schedule sync failed for every date: %w", errors.Join(failures...))
			}
			for _, err := range failures {
				logging.Warn(logger, "schedule sync incomplete", slog.String("err", err.Error()))
			}
			return nil
		},
	}
}

// PlayersJob syncs rosters and active status.
func PlayersJob(engine Syncer, timeout time.Duration) Job {
	return Job{
		Name:    "players-sync",
		Timeout: timeout,
		Run: func(ctx context.Context) error {
			summary, err := engine.SyncPlayers(ctx)
			if err != nil {
				return err
			}
			logging.Info(logging.FromContext(ctx, nil), "players synced",
				slog.Int("fetched", summary.Fetched),
				slog.Int("created", summary.Created),
				slog.Int("updated", summary.Updated),
				slog.Int("unmatched", summary.Unmatched),
			)
			return nil
		},
	}
}
