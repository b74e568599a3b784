package sync

import (
	"context"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
)

// SyncGroups mirrors the remote group list into the organization's whitelist.
// Existing whitelist decisions are preserved; newly discovered groups arrive
// un-whitelisted so a later cleanup run removes them unless an admin opts
// them in first.
func (e *Engine) SyncGroups(ctx context.Context, orgID string, settings *models.IntegrationSettings, session *command.Session) *models.RunReport {
	report := &models.RunReport{
		OrgID:     orgID,
		Pipeline:  PipelineGroups,
		Outcome:   models.RunSucceeded,
		StartedAt: time.Now().UTC(),
	}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	groups, err := e.cmd.ListGroups(ctx, session)
	if err != nil {
		report.AddNote("groups", err.Error())
		return report
	}

	existing := make(map[string]models.GroupWhitelistEntry, len(settings.GroupWhitelist))
	for _, entry := range settings.GroupWhitelist {
		existing[entry.GroupID] = entry
	}

	merged := make([]models.GroupWhitelistEntry, 0, len(groups))
	for _, g := range groups {
		entry := models.GroupWhitelistEntry{GroupID: g.GroupID, GroupName: g.Name}
		if prev, ok := existing[g.GroupID]; ok {
			entry.Whitelisted = prev.Whitelisted
		}
		merged = append(merged, entry)
	}

	if err := e.orgs.UpsertSettings(orgID, map[string]interface{}{"groupWhitelist": merged}); err != nil {
		report.AddNote("groups", err.Error())
		return report
	}
	report.Processed = len(merged)
	return report
}
