package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scout-data-service/internal/reconcile"
)

func newTestRunner(maxAttempts int) *Runner {
	r := NewRunner(nil, maxAttempts, time.Minute)
	r.sleep = func(context.Context, time.Duration) error { return nil }
	return r
}

func TestRunnerSucceedsFirstAttempt(t *testing.T) {
	runs := 0
	err := newTestRunner(3).Run(context.Background(), Job{
		Name: "test",
		Run: func(context.Context) error {
			runs++
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}
}

func TestRunnerRetriesUntilSuccess(t *testing.T) {
	runs := 0
	err := newTestRunner(3).Run(context.Background(), Job{
		Name: "test",
		Run: func(context.Context) error {
			runs++
			if runs < 3 {
				return errors.New("transient")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("expected eventual success: %v", err)
	}
	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
}

func TestRunnerExhaustsAttempts(t *testing.T) {
	runs := 0
	err := newTestRunner(2).Run(context.Background(), Job{
		Name: "test",
		Run: func(context.Context) error {
			runs++
			return errors.New("always broken")
		},
	})
	if err == nil {
		t.Fatalf("expected failure after exhausting attempts")
	}
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
}

func TestRunnerRecoversPanics(t *testing.T) {
	err := newTestRunner(1).Run(context.Background(), Job{
		Name: "test",
		Run: func(context.Context) error {
			panic("boom")
		},
	})
	if err == nil || !strings.Contains(err.Error(), "panicked") {
		t.Fatalf("expected panic converted to error, got %v", err)
	}
}

func TestRunnerAppliesTimeout(t *testing.T) {
	err := newTestRunner(1).Run(context.Background(), Job{
		Name:    "test",
		Timeout: time.Millisecond,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	if err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

type stubSyncer struct {
	scheduleErr map[string]error
	dates       []string
	playerRuns  int
}

func (s *stubSyncer) SyncSchedule(_ context.Context, date string, _ bool) (reconcile.ScheduleSummary, error) {
	s.dates = append(s.dates, date)
	if err := s.scheduleErr[date]; err != nil {
		return reconcile.ScheduleSummary{}, err
	}
	return reconcile.ScheduleSummary{Date: date, Fetched: 1, Created: 1}, nil
}

func (s *stubSyncer) SyncPlayers(context.Context) (reconcile.PlayerSummary, error) {
	s.playerRuns++
	return reconcile.PlayerSummary{Fetched: 10, Updated: 10}, nil
}

func TestScheduleJobCoversDateRange(t *testing.T) {
	syncer := &stubSyncer{}
	job := ScheduleJob(syncer, 3, 0, time.UTC, false)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("job failed: %v", err)
	}
	if len(syncer.dates) != 3 {
		t.Fatalf("expected 3 dates synced, got %d", len(syncer.dates))
	}
	for i := 1; i < len(syncer.dates); i++ {
		if syncer.dates[i] <= syncer.dates[i-1] {
			t.Fatalf("dates should ascend: %v", syncer.dates)
		}
	}
}

func TestScheduleJobToleratesPartialFailure(t *testing.T) {
	syncer := &stubSyncer{scheduleErr: map[string]error{}}
	job := ScheduleJob(syncer, 2, 0, time.UTC, false)

	// Fail only the first date; the run should continue and succeed overall.
	first := timeDate(0)
	syncer.scheduleErr[first] = errors.New("sources down")

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("partial failure should not fail the job: %v", err)
	}
	if len(syncer.dates) != 2 {
		t.Fatalf("remaining dates should still sync, got %v", syncer.dates)
	}
}

func TestScheduleJobFailsWhenAllDatesFail(t *testing.T) {
	syncer := &stubSyncer{scheduleErr: map[string]error{
		timeDate(0): errors.New("down"),
		timeDate(1): errors.New("down"),
	}}
	job := ScheduleJob(syncer, 2, 0, time.UTC, false)

	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected failure when every date fails")
	}
}

func TestPlayersJob(t *testing.T) {
	syncer := &stubSyncer{}
	job := PlayersJob(syncer, 0)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("job failed: %v", err)
	}
	if syncer.playerRuns != 1 {
		t.Fatalf("expected 1 player sync, got %d", syncer.playerRuns)
	}
}

func timeDate(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}
