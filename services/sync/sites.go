package sync

import (
	"context"
	stdsync "sync"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"go.uber.org/zap"
)

// SyncSiteIDs back-fills remote site ids onto local records by walking the
// site tree and matching its device id lists against stored remote device
// ids. Devices already carrying the right site id are left untouched.
func (e *Engine) SyncSiteIDs(ctx context.Context, orgID string, session *command.Session) *models.RunReport {
	report := &models.RunReport{
		OrgID:     orgID,
		Pipeline:  PipelineSites,
		Outcome:   models.RunSucceeded,
		StartedAt: time.Now().UTC(),
	}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	entries, err := e.cmd.FetchSiteTree(ctx, session)
	if err != nil {
		report.AddNote("site-tree", err.Error())
		return report
	}

	type assignment struct {
		deviceID string
		siteID   string
	}
	var assignments []assignment
	for _, entry := range entries {
		for _, id := range entry.DeviceIDs {
			assignments = append(assignments, assignment{deviceID: id, siteID: entry.SiteID})
		}
	}

	var mu stdsync.Mutex
	e.pool.Run(ctx, len(assignments), func(i int) {
		a := assignments[i]
		dev, err := e.devices.GetByCommandDeviceID(orgID, a.deviceID)
		if err != nil {
			mu.Lock()
			report.AddNote("site-tree", err.Error())
			mu.Unlock()
			return
		}
		if dev == nil || dev.CommandSiteID == a.siteID {
			return
		}
		if err := e.devices.Update(orgID, dev.ID, map[string]interface{}{"commandSiteId": a.siteID}); err != nil {
			mu.Lock()
			report.AddNote("site-tree", err.Error())
			mu.Unlock()
			return
		}
		utils.GetLogger().Debug("site id assigned",
			zap.String("orgId", orgID),
			zap.String("serialNumber", dev.SerialNumber),
			zap.String("siteId", a.siteID))
		mu.Lock()
		report.Processed++
		mu.Unlock()
	})

	return report
}
