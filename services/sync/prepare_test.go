package sync

import (
	"testing"

	"equiptrack/models"
	"equiptrack/services/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cameraSpec() command.FetchSpec {
	return command.FetchSpec{
		Category:    models.CategoryCamera,
		ResultKey:   "cameras",
		IDField:     "cameraId",
		SerialField: "serialNumber",
	}
}

func TestPrepareUpdatesExistingSerial(t *testing.T) {
	repo := newFakeDeviceRepo()
	repo.add(&models.EquipmentDevice{ID: "dev-1", OrgID: "org-1", SerialNumber: "CAM-111-111"})
	p := &Preparer{devices: repo}

	out, err := p.Prepare("org-1", command.RawItem{
		"cameraId":     "cam-1",
		"serialNumber": "CAM-111-111",
	}, cameraSpec())
	require.NoError(t, err)
	require.NotNil(t, out.Op)
	assert.Equal(t, models.WriteActionUpdate, out.Op.Action)
	assert.Equal(t, "dev-1", out.Op.TargetID)
	assert.Equal(t, "cam-1", out.Op.Fields["commandDeviceId"])
	assert.Equal(t, models.CategoryCamera, out.Op.Fields["category"])
	assert.NotContains(t, out.Op.Fields, "serialNumber", "updates must not rewrite the serial")
}

func TestPrepareCreatesUnknownSerial(t *testing.T) {
	p := &Preparer{devices: newFakeDeviceRepo()}

	out, err := p.Prepare("org-1", command.RawItem{
		"cameraId":     "cam-2",
		"serialNumber": "CAM-222-222",
	}, cameraSpec())
	require.NoError(t, err)
	require.NotNil(t, out.Op)
	assert.Equal(t, models.WriteActionCreate, out.Op.Action)
	assert.Equal(t, "CAM-222-222", out.Op.SerialNumber)
	assert.Equal(t, "CAM-222-222", out.Op.Fields["serialNumber"])
	assert.Equal(t, false, out.Op.Fields["checkedOut"])
	assert.Equal(t, false, out.Op.Fields["deleted"])
	assert.NotContains(t, out.Op.Fields, "id", "id allocation belongs to the writer")
}

func TestPrepareSkipsIncompleteItems(t *testing.T) {
	p := &Preparer{devices: newFakeDeviceRepo()}

	out, err := p.Prepare("org-1", command.RawItem{"serialNumber": "CAM-333-333"}, cameraSpec())
	require.NoError(t, err)
	assert.Nil(t, out.Op)
	assert.Contains(t, out.SkipReason, "missing")

	out, err = p.Prepare("org-1", command.RawItem{"cameraId": "cam-3"}, cameraSpec())
	require.NoError(t, err)
	assert.Nil(t, out.Op)
}

func TestPrepareSkipsOverlappingClassification(t *testing.T) {
	p := &Preparer{devices: newFakeDeviceRepo()}
	spec := cameraSpec()
	spec.SkipWhenClassified = []models.Category{models.CategoryIntercom}

	// CHA is an intercom prefix; the camera endpoint also lists intercoms.
	out, err := p.Prepare("org-1", command.RawItem{
		"cameraId":     "cam-4",
		"serialNumber": "CHA-444-444",
	}, spec)
	require.NoError(t, err)
	assert.Nil(t, out.Op)
	assert.Contains(t, out.SkipReason, "Intercom")
}

func TestPrepareUsesSerialFallbackAndExtras(t *testing.T) {
	p := &Preparer{devices: newFakeDeviceRepo()}
	spec := command.FetchSpec{
		Category:       models.CategoryAlarmHub,
		IDField:        "deviceId",
		SerialField:    "claimedSerialNumber",
		SerialFallback: "serialNumber",
		ExtraFields:    map[string]string{"commandSiteId": "siteId"},
	}

	out, err := p.Prepare("org-1", command.RawItem{
		"deviceId":     "hub-1",
		"serialNumber": "DQ6-111-111",
		"siteId":       "site-1",
	}, spec)
	require.NoError(t, err)
	require.NotNil(t, out.Op)
	assert.Equal(t, "DQ6-111-111", out.Op.SerialNumber)
	assert.Equal(t, "site-1", out.Op.Fields["commandSiteId"])
}
