package sync

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakySessions struct {
	failOrgs map[string]bool
}

func (f *flakySessions) Session(ctx context.Context, settings *models.IntegrationSettings) (*command.Session, error) {
	if f.failOrgs[settings.OrgID] {
		return nil, fmt.Errorf("login rejected")
	}
	return testSession(), nil
}

func (f *flakySessions) Invalidate(ctx context.Context, orgID string) error { return nil }

func enabledOrg(orgs *fakeOrgRepo, id string) {
	orgs.orgs[id] = &models.Organization{ID: id, Name: id, IntegrationEnabled: true}
	orgs.settings[id] = &models.IntegrationSettings{
		OrgID:     id,
		ShortName: "acme",
		BotEmail:  "bot@example.com",
		BotSecret: "secret",
	}
}

func TestRunAllIsolatesFailingOrgs(t *testing.T) {
	fixture := newCommandFixture()
	fixture.cameras = []map[string]interface{}{
		{"cameraId": "cam-1", "serialNumber": "CAM-111-111"},
	}
	srv := httptest.NewServer(fixture)
	t.Cleanup(srv.Close)

	orgs := newFakeOrgRepo()
	enabledOrg(orgs, "org-good")
	enabledOrg(orgs, "org-bad")
	repo := newFakeDeviceRepo()
	notifier := &fakeNotifier{}

	cmd := command.NewClientWith(utils.NewRetryClient(1, time.Millisecond, time.Second), srv.URL)
	engine := NewEngine(cmd, repo, orgs, &flakySessions{failOrgs: map[string]bool{"org-bad": true}},
		notifier, Config{SyncWorkers: 2, DeleteWorkers: 1, KeepDomain: "verkada."})

	reports := engine.RunAll(context.Background(), PipelineDevices)
	require.Len(t, reports, 2)

	byOrg := map[string]*models.RunReport{}
	for _, r := range reports {
		byOrg[r.OrgID] = r
	}
	assert.Equal(t, models.RunSucceeded, byOrg["org-good"].Outcome)
	assert.Equal(t, models.RunPartiallyFailed, byOrg["org-bad"].Outcome)
	requireNoteScope(t, byOrg["org-bad"], "run")

	assert.Len(t, notifier.reports, 2, "every report is delivered")
}

func TestRunForOrgSkipsUnconfiguredOrg(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.orgs["org-1"] = &models.Organization{ID: "org-1", IntegrationEnabled: true}
	engine := newTestEngine(t, newCommandFixture(), newFakeDeviceRepo(), orgs)

	reports := engine.RunForOrg(context.Background(), "org-1", PipelineDevices)
	assert.Empty(t, reports)
}

func TestRunForOrgEnforcesReclaimOptIn(t *testing.T) {
	orgs := newFakeOrgRepo()
	enabledOrg(orgs, "org-1")
	fixture := newCommandFixture()
	fixture.sites = []string{"site-orphan"}
	engine := newTestEngine(t, fixture, newFakeDeviceRepo(), orgs)

	reports := engine.RunForOrg(context.Background(), "org-1", PipelineReclaim)
	assert.Empty(t, reports, "reclaim requires the site cleaner flag")
	assert.NotContains(t, fixture.recorded(), "/org/camera_group/delete")

	orgs.settings["org-1"].SiteCleanerEnabled = true
	reports = engine.RunForOrg(context.Background(), "org-1", PipelineReclaim)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].Processed)
}

func TestRunForOrgEnforcesCleanupOptIn(t *testing.T) {
	orgs := newFakeOrgRepo()
	enabledOrg(orgs, "org-1")
	fixture := newCommandFixture()
	fixture.users = []map[string]string{
		{"userId": "u-ext", "email": "someone@example.com"},
	}
	engine := newTestEngine(t, fixture, newFakeDeviceRepo(), orgs)

	reports := engine.RunForOrg(context.Background(), "org-1", PipelineCleanup)
	assert.Empty(t, reports, "access cleanup requires the site cleaner flag")
	assert.NotContains(t, fixture.recorded(), "/org/org-remote-1/users/delete")

	orgs.settings["org-1"].SiteCleanerEnabled = true
	reports = engine.RunForOrg(context.Background(), "org-1", PipelineCleanup)
	require.Len(t, reports, 1)
	assert.Contains(t, fixture.recorded(), "/org/org-remote-1/users/delete")
}

func TestRunForOrgEnforcesNameSweepOptIn(t *testing.T) {
	orgs := newFakeOrgRepo()
	enabledOrg(orgs, "org-1")
	repo := newFakeDeviceRepo()
	repo.add(&models.EquipmentDevice{
		ID:              "dev-1",
		OrgID:           "org-1",
		SerialNumber:    "CAM-111-111",
		Category:        models.CategoryCamera,
		CommandDeviceID: "cam-1",
	})
	fixture := newCommandFixture()
	engine := newTestEngine(t, fixture, repo, orgs)

	reports := engine.RunForOrg(context.Background(), "org-1", PipelineNames)
	assert.Empty(t, reports, "the name sweep requires the site cleaner flag")
	assert.NotContains(t, fixture.recorded(), "/camera/name/set")

	orgs.settings["org-1"].SiteCleanerEnabled = true
	reports = engine.RunForOrg(context.Background(), "org-1", PipelineNames)
	require.Len(t, reports, 1)
	assert.Contains(t, fixture.recorded(), "/camera/name/set")
}

func TestRunForOrgRejectsUnknownPipeline(t *testing.T) {
	orgs := newFakeOrgRepo()
	enabledOrg(orgs, "org-1")
	engine := newTestEngine(t, newCommandFixture(), newFakeDeviceRepo(), orgs)

	reports := engine.RunForOrg(context.Background(), "org-1", "no-such-pipeline")
	require.Len(t, reports, 1)
	assert.Equal(t, models.RunPartiallyFailed, reports[0].Outcome)
}
