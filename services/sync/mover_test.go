package sync

import (
	"context"
	"testing"

	"equiptrack/models"

	"github.com/stretchr/testify/assert"
)

func moverSettings() *models.IntegrationSettings {
	return &models.IntegrationSettings{
		OrgID:     "org-1",
		ShortName: "acme",
		SiteDesignations: map[models.Category]string{
			models.CategoryCamera:           "site-cam",
			models.CategoryAccessController: "site-ac",
			models.CategoryIOBoard:          "site-ac",
		},
		AlarmZoneID: "zone-1",
	}
}

func TestMoveDevicesRoutesPerCategory(t *testing.T) {
	fixture := newCommandFixture()
	repo := newFakeDeviceRepo()
	repo.add(&models.EquipmentDevice{ID: "d1", OrgID: "org-1", SerialNumber: "CAM-111-111",
		Category: models.CategoryCamera, CommandDeviceID: "cam-1", CommandSiteID: "site-old"})
	repo.add(&models.EquipmentDevice{ID: "d2", OrgID: "org-1", SerialNumber: "6GA-111-111",
		Category: models.CategoryIOBoard, CommandDeviceID: "io-1", CommandSiteID: "site-old"})
	repo.add(&models.EquipmentDevice{ID: "d3", OrgID: "org-1", SerialNumber: "DC3-111-111",
		Category: models.CategoryDoorContact, CommandDeviceID: "dc-1"})
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	report := engine.MoveDevices(context.Background(), "org-1", moverSettings(), testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)
	assert.Equal(t, 3, report.Processed)

	paths := fixture.recorded()
	assert.Contains(t, paths, "/camera/site/batch/set")
	assert.Contains(t, paths, "/access_controller/move_to_site", "IO boards move through the access controller endpoint")
	assert.Contains(t, paths, "/device/move")
}

func TestMoveDevicesSkipsWithoutDesignation(t *testing.T) {
	fixture := newCommandFixture()
	repo := newFakeDeviceRepo()
	repo.add(&models.EquipmentDevice{ID: "d1", OrgID: "org-1", SerialNumber: "PR4-111-111",
		Category: models.CategoryGateway, CommandDeviceID: "gw-1", CommandSiteID: "site-old"})
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	report := engine.MoveDevices(context.Background(), "org-1", moverSettings(), testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)
	assert.Equal(t, 0, report.Processed)
	assert.Empty(t, fixture.recorded())
}

func TestMoveDevicesSkipsDevicesAlreadyInPlace(t *testing.T) {
	fixture := newCommandFixture()
	repo := newFakeDeviceRepo()
	repo.add(&models.EquipmentDevice{ID: "d1", OrgID: "org-1", SerialNumber: "CAM-111-111",
		Category: models.CategoryCamera, CommandDeviceID: "cam-1", CommandSiteID: "site-cam"})
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	report := engine.MoveDevices(context.Background(), "org-1", moverSettings(), testSession())
	assert.Equal(t, 0, report.Processed)
	assert.Empty(t, fixture.recorded())
}

func TestMoveDevicesToleratesUnimplementedCategories(t *testing.T) {
	fixture := newCommandFixture()
	repo := newFakeDeviceRepo()
	repo.add(&models.EquipmentDevice{ID: "d1", OrgID: "org-1", SerialNumber: "DRJ-111-111",
		Category: models.CategoryViewingStation, CommandDeviceID: "vx-1"})
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	report := engine.MoveDevices(context.Background(), "org-1", moverSettings(), testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)
	assert.Empty(t, report.Notes)
}
