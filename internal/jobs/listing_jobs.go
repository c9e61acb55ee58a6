package jobs

import (
	"context"

	"aubri-backend/internal/logger"
)

// WarmListingCache reloads the approved listing feed into the cache so the
// public browse path rarely falls through to the database.
func (jr *JobRunner) WarmListingCache() {
	jr.runWithRecovery("WarmListingCache", func() {
		ctx := context.Background()

		gen, err := jr.cache.Generation(ctx)
		if err != nil {
			logger.Error("Failed to read cache generation", "error", err)
			return
		}
		props, err := jr.properties.ListApproved(ctx)
		if err != nil {
			logger.Error("Failed to load approved listings", "error", err)
			return
		}
		jr.cache.SetApproved(ctx, gen, props)
		logger.Info("Warmed listing cache", "count", len(props))
	})
}
