package sync

import (
	"context"
	"fmt"
	"time"

	"equiptrack/models"
	"equiptrack/utils"

	"go.uber.org/zap"
)

// Pipeline names. PipelineFull chains the regular maintenance pipelines in
// dependency order for one organization. The names, cleanup and reclaim
// pipelines mutate or delete remote state beyond the inventory mirror, so they
// additionally require the organization's site-cleaner opt-in.
const (
	PipelineDevices = "device-id-sync"
	PipelineSites   = "site-id-sync"
	PipelineMoves   = "device-moves"
	PipelineNames   = "device-names"
	PipelineGroups  = "group-mirror"
	PipelineCleanup = "access-cleanup"
	PipelineReclaim = "orphan-reclaim"
	PipelineFull    = "full-sync"
)

// RunAll executes one pipeline for every integration-enabled organization.
// Organizations are isolated from each other: a failing org is reported and
// the iteration continues.
func (e *Engine) RunAll(ctx context.Context, pipeline string) []*models.RunReport {
	orgs, err := e.orgs.ListIntegrationEnabled()
	if err != nil {
		utils.GetLogger().Error("failed to list integration-enabled organizations", zap.Error(err))
		return nil
	}

	reports := make([]*models.RunReport, 0, len(orgs))
	for _, org := range orgs {
		if ctx.Err() != nil {
			utils.GetLogger().Warn("run budget exhausted, stopping org iteration",
				zap.String("pipeline", pipeline))
			break
		}
		reports = append(reports, e.RunForOrg(ctx, org.ID, pipeline)...)
	}
	return reports
}

// RunForOrg executes one pipeline for one organization and delivers each
// resulting report. PipelineFull yields one report per chained stage; every
// other pipeline yields exactly one.
func (e *Engine) RunForOrg(ctx context.Context, orgID, pipeline string) []*models.RunReport {
	reports := e.runForOrg(ctx, orgID, pipeline)
	for _, report := range reports {
		e.deliver(ctx, report)
	}
	return reports
}

func (e *Engine) runForOrg(ctx context.Context, orgID, pipeline string) []*models.RunReport {
	settings, err := e.orgs.GetSettings(orgID)
	if err != nil {
		return []*models.RunReport{failedReport(orgID, pipeline, fmt.Sprintf("load settings: %v", err))}
	}
	if settings == nil || !settings.HasCredentials() {
		utils.GetLogger().Info("skipping org without integration credentials",
			zap.String("orgId", orgID))
		return nil
	}

	session, err := e.sessions.Session(ctx, settings)
	if err != nil {
		return []*models.RunReport{failedReport(orgID, pipeline, fmt.Sprintf("session: %v", err))}
	}

	switch pipeline {
	case PipelineDevices:
		return []*models.RunReport{e.SyncDeviceIDs(ctx, orgID, session)}
	case PipelineSites:
		return []*models.RunReport{e.SyncSiteIDs(ctx, orgID, session)}
	case PipelineMoves:
		return []*models.RunReport{e.MoveDevices(ctx, orgID, settings, session)}
	case PipelineNames:
		if !settings.SiteCleanerEnabled {
			utils.GetLogger().Info("site cleaner disabled, skipping device name sweep",
				zap.String("orgId", orgID))
			return nil
		}
		return []*models.RunReport{e.SyncDeviceNames(ctx, orgID, session)}
	case PipelineGroups:
		return []*models.RunReport{e.SyncGroups(ctx, orgID, settings, session)}
	case PipelineCleanup:
		if !settings.SiteCleanerEnabled {
			utils.GetLogger().Info("site cleaner disabled, skipping access cleanup",
				zap.String("orgId", orgID))
			return nil
		}
		return []*models.RunReport{e.CleanOrgAccess(ctx, orgID, settings, session)}
	case PipelineReclaim:
		if !settings.SiteCleanerEnabled {
			utils.GetLogger().Info("site cleaner disabled, skipping orphan reclaim",
				zap.String("orgId", orgID))
			return nil
		}
		return []*models.RunReport{e.ReclaimOrphans(ctx, orgID, settings, session)}
	case PipelineFull:
		reports := []*models.RunReport{
			e.SyncDeviceIDs(ctx, orgID, session),
			e.SyncSiteIDs(ctx, orgID, session),
			e.MoveDevices(ctx, orgID, settings, session),
			e.SyncGroups(ctx, orgID, settings, session),
		}
		if settings.SiteCleanerEnabled {
			reports = append(reports,
				e.SyncDeviceNames(ctx, orgID, session),
				e.ReclaimOrphans(ctx, orgID, settings, session))
		}
		return reports
	default:
		return []*models.RunReport{failedReport(orgID, pipeline, "unknown pipeline")}
	}
}

func (e *Engine) deliver(ctx context.Context, report *models.RunReport) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.NotifyRunReport(ctx, report); err != nil {
		utils.GetLogger().Warn("run report delivery failed",
			zap.String("orgId", report.OrgID),
			zap.String("pipeline", report.Pipeline),
			zap.Error(err))
	}
}

func failedReport(orgID, pipeline, reason string) *models.RunReport {
	now := time.Now().UTC()
	report := &models.RunReport{
		OrgID:      orgID,
		Pipeline:   pipeline,
		Outcome:    models.RunSucceeded,
		StartedAt:  now,
		FinishedAt: now,
	}
	report.AddNote("run", reason)
	return report
}
