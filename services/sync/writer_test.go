package sync

import (
	"context"
	"fmt"
	"testing"

	"equiptrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOps(n int) []models.DeviceWriteOp {
	ops := make([]models.DeviceWriteOp, n)
	for i := range ops {
		ops[i] = models.DeviceWriteOp{
			Action:       models.WriteActionCreate,
			SerialNumber: fmt.Sprintf("CAM-%06d", i),
			Fields: map[string]interface{}{
				"serialNumber": fmt.Sprintf("CAM-%06d", i),
				"category":     models.CategoryCamera,
			},
		}
	}
	return ops
}

func TestCommitRespectsBatchCap(t *testing.T) {
	repo := newFakeDeviceRepo()
	w := NewWriter(repo)

	applied, failed := w.Commit(context.Background(), "org-1", createOps(1000))
	assert.Equal(t, 1000, applied)
	assert.Equal(t, 0, failed)
	require.Equal(t, []int{499, 499, 2}, repo.batches)
	assert.Equal(t, 1000, repo.creates)
}

func TestCommitAllocatesIDsForCreates(t *testing.T) {
	repo := newFakeDeviceRepo()
	w := NewWriter(repo)

	w.Commit(context.Background(), "org-1", createOps(5))
	seen := map[string]bool{}
	for id, dev := range repo.devices {
		require.NotEmpty(t, id)
		require.Equal(t, id, dev.ID)
		require.False(t, seen[id], "duplicate allocated id")
		seen[id] = true
	}
	assert.Len(t, seen, 5)
}

func TestCommitSurvivesFailedBatch(t *testing.T) {
	repo := newFakeDeviceRepo()
	repo.failBatches[1] = true
	w := NewWriter(repo)

	applied, failed := w.Commit(context.Background(), "org-1", createOps(1000))
	assert.Equal(t, 501, applied)
	assert.Equal(t, 499, failed)
	assert.Equal(t, 501, repo.creates)
	require.Len(t, repo.batches, 3, "later batches still run after a failure")
}
