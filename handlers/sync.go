package handlers

import (
	"net/http"

	"equiptrack/cron"
	syncsvc "equiptrack/services/sync"
	"equiptrack/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SyncHandler exposes the on-demand sync endpoint.
type SyncHandler struct {
	Enqueuer cron.SyncEnqueuer
}

var validPipelines = map[string]bool{
	syncsvc.PipelineDevices: true,
	syncsvc.PipelineSites:   true,
	syncsvc.PipelineMoves:   true,
	syncsvc.PipelineNames:   true,
	syncsvc.PipelineGroups:  true,
	syncsvc.PipelineCleanup: true,
	syncsvc.PipelineReclaim: true,
	syncsvc.PipelineFull:    true,
}

// SyncNowHandler handles POST /api/admin/orgs/:id/sync. The run happens on
// the task queue; the response only confirms acceptance.
func (h *SyncHandler) SyncNowHandler(c *gin.Context) {
	var req struct {
		Pipeline string `json:"pipeline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Pipeline == "" {
		req.Pipeline = syncsvc.PipelineFull
	}
	if !validPipelines[req.Pipeline] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown pipeline: " + req.Pipeline})
		return
	}

	orgID := c.Param("id")
	if err := h.Enqueuer.EnqueueSync(orgID, req.Pipeline); err != nil {
		utils.GetLogger().Error("Failed to enqueue sync",
			zap.String("orgId", orgID),
			zap.String("pipeline", req.Pipeline),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Sync queued", "pipeline": req.Pipeline})
}
