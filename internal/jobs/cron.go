package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"scout-data-service/internal/logging"
)

// Scheduler runs jobs on cron expressions in a fixed timezone. The league
// publishes its schedule against US Eastern time, so that is the default.
type Scheduler struct {
	cron   *cron.Cron
	runner *Runner
	logger *slog.Logger
}

// NewScheduler builds a scheduler in the given location.
func NewScheduler(runner *Runner, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		runner: runner,
		logger: logger,
	}
}

// Add registers a job under a cron expression.
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.runner.Run(context.Background(), job); err != nil {
			logging.Error(s.logger, "scheduled job failed", err,
				slog.String(logging.FieldJob, job.Name),
			)
		}
	})
	return err
}

// Start begins dispatching in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts dispatching and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
