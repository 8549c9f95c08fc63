package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"heavyrent-backend/internal/jobs"
	"heavyrent-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner.
// An invalid cron expression fails construction.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	entries := []struct {
		name     string
		schedule string
		run      func()
	}{
		{"ExpireUnpaidBookings", cfg.ExpireUnpaidBookings, s.jobs.ExpireUnpaidBookings},
		{"ActivateStartedBookings", cfg.ActivateStartedBookings, s.jobs.ActivateStartedBookings},
		{"CompleteEndedBookings", cfg.CompleteEndedBookings, s.jobs.CompleteEndedBookings},
	}
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.schedule, e.run); err != nil {
			logger.Error("Failed to register job", "job", e.name, "schedule", e.schedule, "error", err)
			return err
		}
		logger.Debug("Registered job", "job", e.name, "schedule", e.schedule)
	}

	logger.Info("All cron jobs registered successfully", "count", len(entries))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries reports how many jobs are scheduled.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
