package equipment

import (
	"context"
	"fmt"
	"time"

	"equiptrack/models"
	"equiptrack/utils"

	"go.uber.org/zap"
)

// Roles carried in auth claims. Desk stations are shared kiosk identities
// allowed to return devices on anyone's behalf.
const (
	RoleAdmin       = "admin"
	RoleDeskStation = "deskstation"
	RoleMember      = "member"
)

// Checkout marks a device as held by userID. Fails when the device is
// already out.
func (s *DefaultEquipmentService) Checkout(ctx context.Context, orgID, deviceID, userID, note string) (*models.EquipmentDevice, error) {
	dev, err := s.GetDevice(orgID, deviceID)
	if err != nil {
		return nil, err
	}
	if dev.CheckedOut {
		return nil, AlreadyCheckedOutError{DeviceID: deviceID, HeldBy: dev.CheckedOutBy}
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{
		"checkedOut":     true,
		"checkedOutBy":   userID,
		"checkedOutAt":   now,
		"checkedOutNote": note,
	}
	if err := s.Repo.Update(orgID, dev.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to check out device %s: %w", deviceID, err)
	}
	dev.CheckedOut = true
	dev.CheckedOutBy = userID
	dev.CheckedOutAt = &now
	dev.CheckedOutNote = note

	s.afterStatusChange(ctx, dev, "device_checked_out",
		"Equipment checked out",
		fmt.Sprintf("%s checked out by %s", dev.SerialNumber, userID))
	return dev, nil
}

// Return clears a device's checkout state. Only the holder may return it,
// unless the caller is an admin or a desk station.
func (s *DefaultEquipmentService) Return(ctx context.Context, orgID, deviceID, userID, role string) (*models.EquipmentDevice, error) {
	dev, err := s.GetDevice(orgID, deviceID)
	if err != nil {
		return nil, err
	}
	if !dev.CheckedOut {
		return dev, nil
	}
	if dev.CheckedOutBy != userID && role != RoleAdmin && role != RoleDeskStation {
		return nil, NotHolderError{DeviceID: deviceID, HeldBy: dev.CheckedOutBy}
	}

	fields := map[string]interface{}{
		"checkedOut":     false,
		"checkedOutBy":   "",
		"checkedOutAt":   nil,
		"checkedOutNote": "",
	}
	if err := s.Repo.Update(orgID, dev.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to return device %s: %w", deviceID, err)
	}
	holder := dev.CheckedOutBy
	dev.CheckedOut = false
	dev.CheckedOutBy = ""
	dev.CheckedOutAt = nil
	dev.CheckedOutNote = ""

	s.afterStatusChange(ctx, dev, "device_returned",
		"Equipment returned",
		fmt.Sprintf("%s returned (was held by %s)", dev.SerialNumber, holder))
	return dev, nil
}

// afterStatusChange pushes the remote rename and the admin notification.
// Both are best effort; a failure never rolls back the status change.
func (s *DefaultEquipmentService) afterStatusChange(ctx context.Context, dev *models.EquipmentDevice, eventType, title, body string) {
	if s.Renamer != nil {
		if err := s.Renamer.RenameAfterStatusChange(ctx, dev.OrgID, dev.ID); err != nil {
			utils.GetLogger().Warn("remote rename failed",
				zap.String("orgId", dev.OrgID),
				zap.String("serialNumber", dev.SerialNumber),
				zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyDeviceEvent(ctx, dev.OrgID, title, body, map[string]string{
			"type":     eventType,
			"deviceId": dev.ID,
		}); err != nil {
			utils.GetLogger().Warn("device event notification failed",
				zap.String("orgId", dev.OrgID),
				zap.Error(err))
		}
	}
}
