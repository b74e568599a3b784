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

// ReclaimOrphans deletes remote zones and sites no local device references.
// Zones are reclaimed before sites: a zone that still exists keeps its parent
// site undeletable on the remote end. Only runs for organizations that opted
// in via the site cleaner flag; the orchestrator enforces that.
func (e *Engine) ReclaimOrphans(ctx context.Context, orgID string, settings *models.IntegrationSettings, session *command.Session) *models.RunReport {
	report := &models.RunReport{
		OrgID:     orgID,
		Pipeline:  PipelineReclaim,
		Outcome:   models.RunSucceeded,
		StartedAt: time.Now().UTC(),
	}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	e.reclaimZones(ctx, settings, session, report)
	e.reclaimSites(ctx, orgID, session, report)
	return report
}

func (e *Engine) reclaimZones(ctx context.Context, settings *models.IntegrationSettings, session *command.Session, report *models.RunReport) {
	if settings.AlarmZoneID == "" {
		utils.GetLogger().Info("no alarm zone configured, skipping zone reclaim",
			zap.String("orgId", settings.OrgID))
		return
	}

	zoneIDs, err := e.cmd.ListZoneIDs(ctx, session)
	if err != nil {
		report.AddNote("zones", err.Error())
		return
	}

	var orphans []string
	for _, id := range zoneIDs {
		if id != settings.AlarmZoneID {
			orphans = append(orphans, id)
		}
	}
	e.deleteAll(ctx, report, "zones", orphans, func(id string) error {
		return e.cmd.DeleteZone(ctx, session, id)
	})
}

func (e *Engine) reclaimSites(ctx context.Context, orgID string, session *command.Session, report *models.RunReport) {
	active, err := e.devices.ActiveSiteIDs(orgID)
	if err != nil {
		report.AddNote("sites", err.Error())
		return
	}
	remote, err := e.cmd.ListSiteIDs(ctx, session)
	if err != nil {
		report.AddNote("sites", err.Error())
		return
	}

	referenced := make(map[string]struct{}, len(active))
	for _, id := range active {
		referenced[id] = struct{}{}
	}
	var orphans []string
	for _, id := range remote {
		if _, ok := referenced[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	e.deleteAll(ctx, report, "sites", orphans, func(id string) error {
		return e.cmd.DeleteSite(ctx, session, id)
	})
}

// deleteAll fans the deletes over the delete pool, which is sized tighter
// than the sync pool since remote deletes are the expensive path.
func (e *Engine) deleteAll(ctx context.Context, report *models.RunReport, scope string, ids []string, del func(id string) error) {
	var mu stdsync.Mutex
	e.deletePool.Run(ctx, len(ids), func(i int) {
		if err := del(ids[i]); err != nil {
			mu.Lock()
			report.AddNote(scope, err.Error())
			mu.Unlock()
			return
		}
		mu.Lock()
		report.Processed++
		mu.Unlock()
	})
}
