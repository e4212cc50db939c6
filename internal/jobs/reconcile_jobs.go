package jobs

import (
	"context"
	"time"

	"points-backend/internal/logger"
)

const reconcileBatchSize = 100

// ReconcileStockSync retries remote stock decrements that failed after a
// redemption committed locally. Each sweep is idempotent: a failure row is
// retried until one attempt succeeds, then marked synced and never touched
// again.
func (jr *JobRunner) ReconcileStockSync() {
	jr.runWithRecovery("ReconcileStockSync", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		failures, err := jr.store.ListUnsynced(ctx, reconcileBatchSize)
		if err != nil {
			logger.Error("failed to list pending stock syncs", "error", err)
			return
		}
		if len(failures) == 0 {
			return
		}
		logger.Info("reconciling stock decrements", "pending", len(failures))

		for _, f := range failures {
			if err := jr.products.DecrementStock(ctx, f.ProductID, f.Quantity, f.UserID); err != nil {
				logger.Warn("stock reconcile attempt failed",
					"redemption_id", f.RedemptionID, "product_id", f.ProductID,
					"attempts", f.Attempts, "error", err)
				if merr := jr.store.MarkAttempt(ctx, f.ID, err.Error()); merr != nil {
					logger.Error("failed to record reconcile attempt", "id", f.ID, "error", merr)
				}
				continue
			}
			if err := jr.store.MarkSynced(ctx, f.ID); err != nil {
				logger.Error("failed to mark stock sync complete", "id", f.ID, "error", err)
			}
		}
	})
}
