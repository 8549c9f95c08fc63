package jobs

import (
	"context"
	"time"

	"heavyrent-backend/internal/config"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/metrics"
	"heavyrent-backend/internal/repository"
	"heavyrent-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings repository.BookingRepository
	notifier *service.Notifier
	metrics  *metrics.Metrics
	config   *config.Config
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookings repository.BookingRepository, notifier *service.Notifier, m *metrics.Metrics, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookings: bookings,
		notifier: notifier,
		metrics:  m,
		config:   cfg,
		now:      time.Now,
	}
}

// Config exposes the schedule settings to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	ctx := logger.WithContext(context.Background(), "job", jobName)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Job panicked", "panic", r)
			jr.metrics.JobRun(jobName, errJobPanicked)
		}
	}()

	logger.InfoContext(ctx, "Starting job")
	err := jobFunc(ctx)
	jr.metrics.JobRun(jobName, err)
	if err != nil {
		logger.ErrorContext(ctx, "Job failed", "error", err, "elapsed", time.Since(start))
		return
	}
	logger.InfoContext(ctx, "Job completed", "elapsed", time.Since(start))
}

// RunAll runs every booking job once, in lifecycle order.
func (jr *JobRunner) RunAll() {
	jr.ExpireUnpaidBookings()
	jr.ActivateStartedBookings()
	jr.CompleteEndedBookings()
}
