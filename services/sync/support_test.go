package sync

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	stdsync "sync"
	"testing"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"github.com/stretchr/testify/require"
)

// fakeDeviceRepo is an in-memory DeviceRepository tracking write counts.
type fakeDeviceRepo struct {
	mu      stdsync.Mutex
	devices map[string]*models.EquipmentDevice
	creates int
	updates int
	batches []int
	// failBatches holds zero-based batch indexes that should error.
	failBatches map[int]bool
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{
		devices:     make(map[string]*models.EquipmentDevice),
		failBatches: make(map[int]bool),
	}
}

func (r *fakeDeviceRepo) add(dev *models.EquipmentDevice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[dev.ID] = dev
}

func (r *fakeDeviceRepo) GetByID(orgID, id string) (*models.EquipmentDevice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dev, ok := r.devices[id]; ok && dev.OrgID == orgID {
		copy := *dev
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeDeviceRepo) GetBySerial(orgID, serial string) (*models.EquipmentDevice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dev := range r.devices {
		if dev.OrgID == orgID && dev.SerialNumber == serial {
			copy := *dev
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeDeviceRepo) GetByCommandDeviceID(orgID, commandDeviceID string) (*models.EquipmentDevice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dev := range r.devices {
		if dev.OrgID == orgID && dev.CommandDeviceID == commandDeviceID {
			copy := *dev
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeDeviceRepo) ListByOrg(orgID string, includeDeleted bool) ([]models.EquipmentDevice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EquipmentDevice
	for _, dev := range r.devices {
		if dev.OrgID == orgID && (includeDeleted || !dev.Deleted) {
			out = append(out, *dev)
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) ListSynced(orgID string) ([]models.EquipmentDevice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EquipmentDevice
	for _, dev := range r.devices {
		if dev.OrgID == orgID && !dev.Deleted && dev.CommandDeviceID != "" {
			out = append(out, *dev)
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) ActiveSiteIDs(orgID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, dev := range r.devices {
		if dev.OrgID == orgID && !dev.Deleted && dev.CommandSiteID != "" && !seen[dev.CommandSiteID] {
			seen[dev.CommandSiteID] = true
			out = append(out, dev.CommandSiteID)
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) Create(dev *models.EquipmentDevice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[dev.ID] = dev
	r.creates++
	return nil
}

func (r *fakeDeviceRepo) Update(orgID, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dev, ok := r.devices[id]
	if !ok || dev.OrgID != orgID {
		return fmt.Errorf("device %s not found", id)
	}
	applyFields(dev, fields)
	r.updates++
	return nil
}

func (r *fakeDeviceRepo) CommitBatch(orgID string, ops []models.DeviceWriteOp) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := len(r.batches)
	r.batches = append(r.batches, len(ops))
	if r.failBatches[idx] {
		return 0, fmt.Errorf("batch %d failed", idx)
	}
	for _, op := range ops {
		switch op.Action {
		case models.WriteActionCreate:
			id, _ := op.Fields["id"].(string)
			dev := &models.EquipmentDevice{ID: id, OrgID: orgID, SerialNumber: op.SerialNumber}
			applyFields(dev, op.Fields)
			r.devices[id] = dev
			r.creates++
		case models.WriteActionUpdate:
			if dev, ok := r.devices[op.TargetID]; ok {
				applyFields(dev, op.Fields)
			}
			r.updates++
		}
	}
	return len(ops), nil
}

func applyFields(dev *models.EquipmentDevice, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "serialNumber":
			dev.SerialNumber, _ = v.(string)
		case "category":
			if c, ok := v.(models.Category); ok {
				dev.Category = c
			}
		case "commandDeviceId":
			dev.CommandDeviceID, _ = v.(string)
		case "commandSiteId":
			dev.CommandSiteID, _ = v.(string)
		case "alarmSystemId":
			dev.AlarmSystemID, _ = v.(string)
		case "checkedOut":
			dev.CheckedOut, _ = v.(bool)
		case "checkedOutBy":
			dev.CheckedOutBy, _ = v.(string)
		case "checkedOutNote":
			dev.CheckedOutNote, _ = v.(string)
		case "deleted":
			dev.Deleted, _ = v.(bool)
		}
	}
}

// fakeOrgRepo is an in-memory OrganizationRepository.
type fakeOrgRepo struct {
	mu       stdsync.Mutex
	orgs     map[string]*models.Organization
	settings map[string]*models.IntegrationSettings
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		orgs:     make(map[string]*models.Organization),
		settings: make(map[string]*models.IntegrationSettings),
	}
}

func (r *fakeOrgRepo) GetByID(id string) (*models.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if org, ok := r.orgs[id]; ok {
		copy := *org
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeOrgRepo) ListIntegrationEnabled() ([]models.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Organization
	for _, org := range r.orgs {
		if org.IntegrationEnabled {
			out = append(out, *org)
		}
	}
	return out, nil
}

func (r *fakeOrgRepo) Create(org *models.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeOrgRepo) Update(id string, fields map[string]interface{}) error {
	return nil
}

func (r *fakeOrgRepo) GetSettings(orgID string) (*models.IntegrationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.settings[orgID]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeOrgRepo) UpsertSettings(orgID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[orgID]
	if !ok {
		s = &models.IntegrationSettings{OrgID: orgID}
		r.settings[orgID] = s
	}
	if wl, ok := fields["groupWhitelist"].([]models.GroupWhitelistEntry); ok {
		s.GroupWhitelist = wl
	}
	return nil
}

// fakeSessions hands out a fixed session without touching Redis.
type fakeSessions struct {
	session *command.Session
	err     error
}

func (f *fakeSessions) Session(ctx context.Context, settings *models.IntegrationSettings) (*command.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeSessions) Invalidate(ctx context.Context, orgID string) error { return nil }

// fakeNotifier records delivered reports.
type fakeNotifier struct {
	mu      stdsync.Mutex
	reports []*models.RunReport
}

func (f *fakeNotifier) NotifyRunReport(ctx context.Context, report *models.RunReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, report)
	return nil
}

func testSession() *command.Session {
	return &command.Session{
		ShortName: "acme",
		OrgID:     "org-remote-1",
		BotUserID: "bot-1",
		Token:     "tok-1",
		Headers:   map[string]string{"X-Verkada-Auth": "tok-1"},
	}
}

// newTestEngine wires an engine against an httptest Command server and fakes.
func newTestEngine(t *testing.T, handler http.Handler, devices *fakeDeviceRepo, orgs *fakeOrgRepo) *Engine {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cmd := command.NewClientWith(utils.NewRetryClient(1, time.Millisecond, time.Second), srv.URL)
	return NewEngine(cmd, devices, orgs, &fakeSessions{session: testSession()}, nil, Config{
		SyncWorkers:   4,
		DeleteWorkers: 2,
		KeepDomain:    "verkada.",
	})
}

func requireNoteScope(t *testing.T, report *models.RunReport, scope string) {
	t.Helper()
	for _, n := range report.Notes {
		if n.Scope == scope {
			return
		}
	}
	require.Failf(t, "missing note", "no note with scope %q in %+v", scope, report.Notes)
}
