package equipment

import (
	"fmt"
	"strings"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"

	"github.com/google/uuid"
)

// RegisterDevice creates a local record for a physical unit. The category is
// derived from the serial prefix; unrecognized serials register as Unknown
// and still participate in checkout tracking.
func (s *DefaultEquipmentService) RegisterDevice(orgID, serialNumber string) (*models.EquipmentDevice, error) {
	serialNumber = strings.ToUpper(strings.TrimSpace(serialNumber))
	if serialNumber == "" {
		return nil, fmt.Errorf("serial number is required")
	}

	existing, err := s.Repo.GetBySerial(orgID, serialNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check serial %s: %w", serialNumber, err)
	}
	if existing != nil {
		return nil, DuplicateSerialError{SerialNumber: serialNumber}
	}

	dev := &models.EquipmentDevice{
		ID:           uuid.NewString(),
		OrgID:        orgID,
		SerialNumber: serialNumber,
		Category:     command.Classify(serialNumber),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(dev); err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	return dev, nil
}

func (s *DefaultEquipmentService) GetDevice(orgID, id string) (*models.EquipmentDevice, error) {
	dev, err := s.Repo.GetByID(orgID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device %s: %w", id, err)
	}
	if dev == nil || dev.Deleted {
		return nil, NotFoundError{DeviceID: id}
	}
	return dev, nil
}

func (s *DefaultEquipmentService) ListDevices(orgID string, includeDeleted bool) ([]models.EquipmentDevice, error) {
	devices, err := s.Repo.ListByOrg(orgID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

// DeleteDevice soft-deletes a record. The row survives so sync history and
// serial uniqueness stay intact; reconciliation re-links the serial if the
// unit reappears remotely.
func (s *DefaultEquipmentService) DeleteDevice(orgID, id string) error {
	dev, err := s.GetDevice(orgID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Update(orgID, dev.ID, map[string]interface{}{"deleted": true}); err != nil {
		return fmt.Errorf("failed to delete device %s: %w", id, err)
	}
	return nil
}
