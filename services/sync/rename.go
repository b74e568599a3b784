package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"go.uber.org/zap"
)

// displayName builds the remote display name reflecting checkout status.
func displayName(dev models.EquipmentDevice) string {
	if dev.CheckedOut {
		who := dev.CheckedOutBy
		if who == "" {
			who = "unknown"
		}
		return fmt.Sprintf("%s - checked out by %s", dev.SerialNumber, who)
	}
	return dev.SerialNumber + " - available"
}

// RenameDevice pushes the checkout-status display name for one synced device.
// Only cameras have a rename endpoint today; other categories are skipped.
func (e *Engine) RenameDevice(ctx context.Context, session *command.Session, dev models.EquipmentDevice) (bool, error) {
	if dev.Category != models.CategoryCamera {
		utils.GetLogger().Debug("rename not implemented for category",
			zap.String("category", string(dev.Category)),
			zap.String("serialNumber", dev.SerialNumber))
		return false, nil
	}
	if err := e.cmd.RenameCamera(ctx, session, dev.CommandDeviceID, displayName(dev)); err != nil {
		return false, err
	}
	return true, nil
}

// SyncDeviceNames sweeps every synced device and pushes its checkout-status
// display name.
func (e *Engine) SyncDeviceNames(ctx context.Context, orgID string, session *command.Session) *models.RunReport {
	report := &models.RunReport{
		OrgID:     orgID,
		Pipeline:  PipelineNames,
		Outcome:   models.RunSucceeded,
		StartedAt: time.Now().UTC(),
	}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	devices, err := e.devices.ListSynced(orgID)
	if err != nil {
		report.AddNote("store", err.Error())
		return report
	}

	var mu stdsync.Mutex
	e.pool.Run(ctx, len(devices), func(i int) {
		renamed, err := e.RenameDevice(ctx, session, devices[i])
		if err != nil {
			mu.Lock()
			report.AddNote(string(devices[i].Category), err.Error())
			mu.Unlock()
			return
		}
		if renamed {
			mu.Lock()
			report.Processed++
			mu.Unlock()
		}
	})

	return report
}

// RenameAfterStatusChange pushes the new display name for one device right
// after a checkout or return. Silently a no-op when the org has no working
// integration or the device was never synced.
func (e *Engine) RenameAfterStatusChange(ctx context.Context, orgID, deviceID string) error {
	settings, err := e.orgs.GetSettings(orgID)
	if err != nil {
		return err
	}
	if settings == nil || !settings.HasCredentials() {
		return nil
	}
	dev, err := e.devices.GetByID(orgID, deviceID)
	if err != nil {
		return err
	}
	if dev == nil || dev.CommandDeviceID == "" {
		return nil
	}
	session, err := e.sessions.Session(ctx, settings)
	if err != nil {
		return err
	}
	_, err = e.RenameDevice(ctx, session, *dev)
	return err
}
