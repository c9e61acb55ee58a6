package jobs

import (
	"time"

	"aubri-backend/internal/cache"
	"aubri-backend/internal/config"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings   repository.BookingRepository
	properties repository.PropertyRepository
	cache      cache.ListingCache
	config     *config.Config
	now        func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookings repository.BookingRepository, properties repository.PropertyRepository, listingCache cache.ListingCache, cfg *config.Config) *JobRunner {
	if listingCache == nil {
		listingCache = cache.Nop()
	}
	return &JobRunner{
		bookings:   bookings,
		properties: properties,
		cache:      listingCache,
		config:     cfg,
		now:        time.Now,
	}
}

// Config exposes the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CompleteFinishedBookings()
	jr.WarmListingCache()
}
