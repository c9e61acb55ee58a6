package jobs

import (
	"context"

	"aubri-backend/internal/logger"
)

// CompleteFinishedBookings marks confirmed bookings as completed once their
// end date has passed.
func (jr *JobRunner) CompleteFinishedBookings() {
	jr.runWithRecovery("CompleteFinishedBookings", func() {
		ctx := context.Background()

		count, err := jr.bookings.CompleteFinished(ctx, jr.now().UTC())
		if err != nil {
			logger.Error("Failed to complete finished bookings", "error", err)
			return
		}
		logger.Info("Marked bookings as completed", "count", count)
	})
}
