package sync

import (
	"context"
	"testing"

	"equiptrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncGroupsMergesPreservingDecisions(t *testing.T) {
	fixture := newCommandFixture()
	fixture.groups = []map[string]string{
		{"entityGroupId": "g-1", "name": "Site Operators"},
		{"entityGroupId": "g-2", "name": "New Group"},
	}
	orgs := newFakeOrgRepo()
	engine := newTestEngine(t, fixture, newFakeDeviceRepo(), orgs)

	settings := &models.IntegrationSettings{
		OrgID: "org-1",
		GroupWhitelist: []models.GroupWhitelistEntry{
			{GroupID: "g-1", GroupName: "Site Operators", Whitelisted: true},
			{GroupID: "g-gone", GroupName: "Removed Remotely", Whitelisted: true},
		},
	}
	report := engine.SyncGroups(context.Background(), "org-1", settings, testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)
	assert.Equal(t, 2, report.Processed)

	stored, err := orgs.GetSettings("org-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.GroupWhitelist, 2)

	byID := map[string]models.GroupWhitelistEntry{}
	for _, e := range stored.GroupWhitelist {
		byID[e.GroupID] = e
	}
	assert.True(t, byID["g-1"].Whitelisted, "existing decision preserved")
	assert.False(t, byID["g-2"].Whitelisted, "new arrivals start un-whitelisted")
	assert.NotContains(t, byID, "g-gone", "groups removed remotely drop out of the mirror")
}
