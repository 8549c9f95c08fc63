package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heavyrent-backend/internal/config"
	"heavyrent-backend/internal/jobs"
)

func TestNewScheduler(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		ExpireUnpaidBookings:    "0 */15 * * * *",
		ActivateStartedBookings: "0 5 0 * * *",
		CompleteEndedBookings:   "0 10 0 * * *",
	}}

	s, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, cfg))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Entries())

	s.Start()
	s.Stop()
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		ExpireUnpaidBookings:    "every now and then",
		ActivateStartedBookings: "0 5 0 * * *",
		CompleteEndedBookings:   "0 10 0 * * *",
	}}

	_, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, cfg))
	assert.Error(t, err)
}
