package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aubri-backend/internal/config"
	"aubri-backend/internal/jobs"
)

func TestNewScheduler(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		CompleteBookings: "0 0 2 * * *",
		WarmListings:     "0 */10 * * * *",
	}}

	s, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, cfg))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())

	s.Start()
	s.Stop()
}

func TestNewScheduler_BadSpec(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		CompleteBookings: "every day",
		WarmListings:     "0 */10 * * * *",
	}}

	_, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, cfg))
	assert.Error(t, err)
}
