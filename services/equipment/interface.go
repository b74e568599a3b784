package equipment

import (
	"context"

	deviceRepo "equiptrack/database/repository/device"
	"equiptrack/models"
)

// Renamer pushes a device's checkout-status display name to the remote
// platform after a status change.
type Renamer interface {
	RenameAfterStatusChange(ctx context.Context, orgID, deviceID string) error
}

// Notifier pushes checkout and return events to org admins.
type Notifier interface {
	NotifyDeviceEvent(ctx context.Context, orgID, title, body string, data map[string]string) error
}

// EquipmentService defines the device lifecycle operations exposed to the
// tracking apps.
type EquipmentService interface {
	RegisterDevice(orgID, serialNumber string) (*models.EquipmentDevice, error)
	GetDevice(orgID, id string) (*models.EquipmentDevice, error)
	ListDevices(orgID string, includeDeleted bool) ([]models.EquipmentDevice, error)
	Checkout(ctx context.Context, orgID, deviceID, userID, note string) (*models.EquipmentDevice, error)
	Return(ctx context.Context, orgID, deviceID, userID, role string) (*models.EquipmentDevice, error)
	DeleteDevice(orgID, id string) error
}

// DefaultEquipmentService is the production implementation.
type DefaultEquipmentService struct {
	Repo     deviceRepo.DeviceRepository
	Renamer  Renamer
	Notifier Notifier
}

func NewDefaultEquipmentService(repo deviceRepo.DeviceRepository, renamer Renamer, notifier Notifier) *DefaultEquipmentService {
	return &DefaultEquipmentService{Repo: repo, Renamer: renamer, Notifier: notifier}
}
