package sync

import (
	"context"
	"strings"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"go.uber.org/zap"
)

// keepUser reports whether a remote user account survives cleanup: company
// accounts under the keep domain stay, aliased ("+") variants do not.
func (e *Engine) keepUser(email string) bool {
	return strings.Contains(email, "@"+e.keepDomain) && !strings.Contains(email, "+")
}

// CleanOrgAccess removes remote users and groups that should not exist on the
// managed organization. The service bot itself and whitelisted groups are
// never touched.
func (e *Engine) CleanOrgAccess(ctx context.Context, orgID string, settings *models.IntegrationSettings, session *command.Session) *models.RunReport {
	report := &models.RunReport{
		OrgID:     orgID,
		Pipeline:  PipelineCleanup,
		Outcome:   models.RunSucceeded,
		StartedAt: time.Now().UTC(),
	}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	e.cleanUsers(ctx, session, report)
	e.cleanGroups(ctx, settings, session, report)
	return report
}

func (e *Engine) cleanUsers(ctx context.Context, session *command.Session, report *models.RunReport) {
	users, err := e.cmd.ListUsers(ctx, session)
	if err != nil {
		report.AddNote("users", err.Error())
		return
	}

	var doomed []string
	for _, u := range users {
		if u.UserID == session.BotUserID {
			continue
		}
		if e.keepUser(u.Email) {
			continue
		}
		utils.GetLogger().Info("removing remote user",
			zap.String("orgId", session.OrgID),
			zap.String("email", u.Email))
		doomed = append(doomed, u.UserID)
	}
	e.deleteAll(ctx, report, "users", doomed, func(id string) error {
		return e.cmd.DeleteUser(ctx, session, id)
	})
}

func (e *Engine) cleanGroups(ctx context.Context, settings *models.IntegrationSettings, session *command.Session, report *models.RunReport) {
	groups, err := e.cmd.ListGroups(ctx, session)
	if err != nil {
		report.AddNote("groups", err.Error())
		return
	}

	whitelisted := make(map[string]bool, len(settings.GroupWhitelist))
	for _, entry := range settings.GroupWhitelist {
		whitelisted[entry.GroupID] = entry.Whitelisted
	}

	var doomed []string
	for _, g := range groups {
		if whitelisted[g.GroupID] {
			continue
		}
		utils.GetLogger().Info("removing remote group",
			zap.String("orgId", session.OrgID),
			zap.String("groupName", g.Name))
		doomed = append(doomed, g.GroupID)
	}
	e.deleteAll(ctx, report, "groups", doomed, func(id string) error {
		return e.cmd.DeleteGroup(ctx, session, id)
	})
}
