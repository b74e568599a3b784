package deviceRepo

import (
	"equiptrack/models"
)

// DeviceRepository defines the persistence operations for equipment devices.
type DeviceRepository interface {
	// GetByID retrieves a device by its internal id within an organization.
	GetByID(orgID, id string) (*models.EquipmentDevice, error)
	// GetBySerial retrieves the device matching a serial number within an
	// organization, or nil when no such device exists.
	GetBySerial(orgID, serial string) (*models.EquipmentDevice, error)
	// GetByCommandDeviceID retrieves the device holding a remote device id, or
	// nil when none does.
	GetByCommandDeviceID(orgID, commandDeviceID string) (*models.EquipmentDevice, error)
	// ListByOrg returns the organization's devices, excluding soft-deleted
	// records unless includeDeleted is set.
	ListByOrg(orgID string, includeDeleted bool) ([]models.EquipmentDevice, error)
	// ListSynced returns non-deleted devices already matched to the remote
	// platform (remote device id present).
	ListSynced(orgID string) ([]models.EquipmentDevice, error)
	// ActiveSiteIDs returns the distinct remote site ids referenced by the
	// organization's non-deleted devices.
	ActiveSiteIDs(orgID string) ([]string, error)
	// Create inserts a new device record.
	Create(device *models.EquipmentDevice) error
	// Update applies a partial, non-destructive field merge to one device.
	Update(orgID, id string, fields map[string]interface{}) error
	// CommitBatch applies one batch of prepared write operations. The caller
	// is responsible for keeping the batch under the store's per-request cap
	// and for having allocated ids on create operations.
	CommitBatch(orgID string, ops []models.DeviceWriteOp) (int, error)
}
