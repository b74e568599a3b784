package sync

import (
	"context"
	"testing"

	"equiptrack/models"

	"github.com/stretchr/testify/assert"
)

func TestCleanUsersKeepsCompanyAccountsAndBot(t *testing.T) {
	fixture := newCommandFixture()
	fixture.users = []map[string]string{
		{"userId": "bot-1", "email": "contractor@gmail.com"},
		{"userId": "u-keep", "email": "tech@verkada.com"},
		{"userId": "u-alias", "email": "tech+test@verkada.com"},
		{"userId": "u-ext", "email": "someone@example.com"},
	}
	engine := newTestEngine(t, fixture, newFakeDeviceRepo(), newFakeOrgRepo())

	settings := &models.IntegrationSettings{OrgID: "org-1"}
	report := engine.CleanOrgAccess(context.Background(), "org-1", settings, testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)

	deletes := 0
	for _, p := range fixture.recorded() {
		if p == "/org/org-remote-1/users/delete" {
			deletes++
		}
	}
	assert.Equal(t, 2, deletes, "alias and external accounts removed; bot and company account kept")
}

func TestCleanGroupsHonorsWhitelist(t *testing.T) {
	fixture := newCommandFixture()
	fixture.groups = []map[string]string{
		{"entityGroupId": "g-keep", "name": "Site Operators"},
		{"entityGroupId": "g-off", "name": "Legacy Group"},
		{"entityGroupId": "g-new", "name": "Unreviewed Group"},
	}
	engine := newTestEngine(t, fixture, newFakeDeviceRepo(), newFakeOrgRepo())

	settings := &models.IntegrationSettings{
		OrgID: "org-1",
		GroupWhitelist: []models.GroupWhitelistEntry{
			{GroupID: "g-keep", GroupName: "Site Operators", Whitelisted: true},
			{GroupID: "g-off", GroupName: "Legacy Group", Whitelisted: false},
		},
	}
	report := engine.CleanOrgAccess(context.Background(), "org-1", settings, testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)

	deletes := 0
	for _, p := range fixture.recorded() {
		if p == "/security_entity_group/delete" {
			deletes++
		}
	}
	assert.Equal(t, 2, deletes, "non-whitelisted and unknown groups removed")
}

func TestKeepUserRule(t *testing.T) {
	engine := &Engine{keepDomain: "verkada."}
	assert.True(t, engine.keepUser("a@verkada.com"))
	assert.False(t, engine.keepUser("a+1@verkada.com"))
	assert.False(t, engine.keepUser("a@gmail.com"))
	assert.False(t, engine.keepUser("verkada.user@gmail.com"))
}
