// Package job schedules background maintenance work in server mode.
package job

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of scheduled work. Run carries no arguments and no
// return so implementations plug directly into the cron runner; they handle
// their own timeouts and logging.
type Job interface {
	Name() string
	Run()
}

// Scheduler runs jobs at fixed intervals on top of robfig/cron
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates an empty scheduler
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// AddJob schedules a job to run every interval
func (s *Scheduler) AddJob(interval time.Duration, j Job) error {
	if _, err := s.cron.AddJob(fmt.Sprintf("@every %s", interval), j); err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", j.Name(), err)
	}

	s.logger.Info("scheduled job",
		zap.String("job", j.Name()),
		zap.Duration("interval", interval))
	return nil
}

// Start begins running scheduled jobs in their own goroutines
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
