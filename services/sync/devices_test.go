package sync

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	stdsync "sync"
	"testing"

	"equiptrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commandFixture serves every Command listing endpoint the device pipeline
// hits. Endpoints default to empty lists; tests fill in the categories they
// care about.
type commandFixture struct {
	mu        stdsync.Mutex
	requests  []string
	failPaths map[string]bool

	cameras           []map[string]interface{}
	accessControllers []map[string]interface{}
	cameraGroups      []map[string]interface{}
	intercoms         []map[string]interface{}
	hubDevices        []map[string]interface{}
	sites             []string
	zones             []string
	users             []map[string]string
	groups            []map[string]string
}

func newCommandFixture() *commandFixture {
	return &commandFixture{failPaths: make(map[string]bool)}
}

func (f *commandFixture) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *commandFixture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/__v/acme")
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, path)
	fail := f.failPaths[path]
	f.mu.Unlock()

	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	write := func(v interface{}) {
		json.NewEncoder(w).Encode(v)
	}

	switch {
	case path == "/app/v2/init":
		write(map[string]interface{}{"cameras": f.cameras, "cameraGroups": f.cameraGroups})
	case path == "/access/v2/user/access_controllers":
		write(map[string]interface{}{"accessControllers": f.accessControllers})
	case path == "/devices/list":
		// vsensor and vnet share this path; the sensor payload carries a
		// favoritesOnly flag, the network one does not.
		if strings.Contains(string(body), "favoritesOnly") {
			write(map[string]interface{}{"sensorDevice": []interface{}{}})
		} else {
			write([]interface{}{})
		}
	case path == "/vfortress/list_boxes":
		write([]interface{}{})
	case path == "/device/list":
		write(map[string]interface{}{"viewingStations": []interface{}{}})
	case path == "/management/speaker/list":
		write(map[string]interface{}{"garfunkel": []interface{}{}})
	case path == "/device/keypad/get_all":
		write(map[string]interface{}{"keypad": []interface{}{}})
	case path == "/org/get_devices_and_alarm_systems":
		write(map[string]interface{}{"devices": []interface{}{}})
	case strings.HasPrefix(path, "/vinter/v1/user/organization/"):
		write(map[string]interface{}{"deskApps": []interface{}{}, "intercoms": f.intercoms})
	case path == "/device/get_all":
		write(map[string]interface{}{"hubDevice": f.hubDevices})
	case path == "/org/site/list":
		sites := make([]map[string]string, 0, len(f.sites))
		for _, id := range f.sites {
			sites = append(sites, map[string]string{"siteId": id})
		}
		write(map[string]interface{}{"sites": sites})
	case path == "/zone/list":
		zones := make([]map[string]string, 0, len(f.zones))
		for _, id := range f.zones {
			zones = append(zones, map[string]string{"zoneId": id})
		}
		write(map[string]interface{}{"zone": zones})
	case strings.HasSuffix(path, "/users/search"):
		write(map[string]interface{}{"users": f.users})
	case path == "/security_entity_group/list":
		write(map[string]interface{}{"securityEntityGroup": f.groups})
	default:
		// deletes, moves and renames just need a 2xx
		write(map[string]interface{}{})
	}
}

func TestSyncDeviceIDsCreatesLocalRecords(t *testing.T) {
	fixture := newCommandFixture()
	fixture.cameras = []map[string]interface{}{
		{"cameraId": "cam-1", "serialNumber": "CAM-111-111"},
		{"cameraId": "cam-2", "serialNumber": "CAM-222-222"},
	}
	fixture.accessControllers = []map[string]interface{}{
		{"accessControllerId": "ac-1", "serialNumber": "R7M-111-111"},
	}
	repo := newFakeDeviceRepo()
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	report := engine.SyncDeviceIDs(context.Background(), "org-1", testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 3, repo.creates)

	cam, err := repo.GetBySerial("org-1", "CAM-111-111")
	require.NoError(t, err)
	require.NotNil(t, cam)
	assert.Equal(t, "cam-1", cam.CommandDeviceID)
	assert.Equal(t, models.CategoryCamera, cam.Category)
	assert.NotEmpty(t, cam.ID)

	ac, err := repo.GetBySerial("org-1", "R7M-111-111")
	require.NoError(t, err)
	require.NotNil(t, ac)
	assert.Equal(t, models.CategoryAccessController, ac.Category)
}

func TestSyncDeviceIDsSecondRunCreatesNothing(t *testing.T) {
	fixture := newCommandFixture()
	fixture.cameras = []map[string]interface{}{
		{"cameraId": "cam-1", "serialNumber": "CAM-111-111"},
	}
	repo := newFakeDeviceRepo()
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	engine.SyncDeviceIDs(context.Background(), "org-1", testSession())
	require.Equal(t, 1, repo.creates)

	report := engine.SyncDeviceIDs(context.Background(), "org-1", testSession())
	assert.Equal(t, models.RunSucceeded, report.Outcome)
	assert.Equal(t, 1, repo.creates, "existing serials must update, not duplicate")
}

func TestSyncDeviceIDsMatchesPreRegisteredSerial(t *testing.T) {
	fixture := newCommandFixture()
	fixture.cameras = []map[string]interface{}{
		{"cameraId": "cam-1", "serialNumber": "CAM-111-111"},
	}
	repo := newFakeDeviceRepo()
	repo.add(&models.EquipmentDevice{ID: "dev-1", OrgID: "org-1", SerialNumber: "CAM-111-111"})
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	engine.SyncDeviceIDs(context.Background(), "org-1", testSession())
	assert.Equal(t, 0, repo.creates)

	dev, err := repo.GetByID("org-1", "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "cam-1", dev.CommandDeviceID, "manual registration linked to the remote record")
}

func TestSyncDeviceIDsIsolatesCategoryFailure(t *testing.T) {
	fixture := newCommandFixture()
	fixture.cameras = []map[string]interface{}{
		{"cameraId": "cam-1", "serialNumber": "CAM-111-111"},
	}
	fixture.failPaths["/access/v2/user/access_controllers"] = true
	repo := newFakeDeviceRepo()
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	report := engine.SyncDeviceIDs(context.Background(), "org-1", testSession())
	assert.Equal(t, models.RunPartiallyFailed, report.Outcome)
	requireNoteScope(t, report, string(models.CategoryAccessController))
	assert.Equal(t, 1, repo.creates, "other categories still synced")
}

func TestSyncDeviceIDsSkipsIntercomsOnCameraEndpoint(t *testing.T) {
	fixture := newCommandFixture()
	fixture.cameras = []map[string]interface{}{
		{"cameraId": "cam-1", "serialNumber": "CAM-111-111"},
		// intercoms appear on the camera endpoint too
		{"cameraId": "int-1", "serialNumber": "CHA-111-111"},
	}
	fixture.intercoms = []map[string]interface{}{
		{"deviceId": "int-1", "serialNumber": "CHA-111-111"},
	}
	repo := newFakeDeviceRepo()
	engine := newTestEngine(t, fixture, repo, newFakeOrgRepo())

	engine.SyncDeviceIDs(context.Background(), "org-1", testSession())

	dev, err := repo.GetBySerial("org-1", "CHA-111-111")
	require.NoError(t, err)
	require.NotNil(t, dev)
	assert.Equal(t, models.CategoryIntercom, dev.Category)
	assert.Equal(t, 2, repo.creates)
}
