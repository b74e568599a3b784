package sync

import (
	"context"

	deviceRepo "equiptrack/database/repository/device"
	"equiptrack/models"
	"equiptrack/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxBatchOps is the store's per-request write cap, kept just under the
// provider limit of 500.
const maxBatchOps = 499

// Writer commits prepared operations in capped batches. It owns id allocation
// for creates, so the prepare stage stays free of store concerns.
type Writer struct {
	devices deviceRepo.DeviceRepository
	limiter *rate.Limiter
}

func NewWriter(devices deviceRepo.DeviceRepository) *Writer {
	return &Writer{
		devices: devices,
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
}

// Commit splits ops into batches of at most maxBatchOps, allocates ids for
// creates, and applies each batch. A failed batch is logged and skipped; the
// remaining batches still run. Returns the number of applied operations and
// the number lost to failed batches.
func (w *Writer) Commit(ctx context.Context, orgID string, ops []models.DeviceWriteOp) (applied, failed int) {
	for start := 0; start < len(ops); start += maxBatchOps {
		end := start + maxBatchOps
		if end > len(ops) {
			end = len(ops)
		}
		batch := ops[start:end]

		for i := range batch {
			if batch[i].Action == models.WriteActionCreate {
				batch[i].Fields["id"] = uuid.NewString()
			}
		}

		if err := w.limiter.Wait(ctx); err != nil {
			failed += len(ops) - start
			return applied, failed
		}
		changed, err := w.devices.CommitBatch(orgID, batch)
		if err != nil {
			utils.GetLogger().Error("device batch write failed",
				zap.String("orgId", orgID),
				zap.Int("batchSize", len(batch)),
				zap.Error(err))
			failed += len(batch)
			continue
		}
		utils.GetLogger().Debug("device batch committed",
			zap.String("orgId", orgID),
			zap.Int("ops", len(batch)),
			zap.Int("changed", changed))
		applied += len(batch)
	}
	return applied, failed
}
