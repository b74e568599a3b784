package sync

import (
	"context"
	stdsync "sync"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"go.uber.org/zap"
)

// moveFunc relocates one synced device to its designated site or zone.
// moved is false when the device was skipped (no designation configured, or
// already in place).
type moveFunc func(ctx context.Context, e *Engine, s *command.Session, settings *models.IntegrationSettings, dev models.EquipmentDevice) (moved bool, err error)

// alarmSensorTypes maps the classic alarm sensor categories to the device
// type keys the alarms move endpoint expects.
var alarmSensorTypes = map[models.Category]string{
	models.CategoryDoorContact:   "doorContactSensor",
	models.CategoryGlassBreak:    "glassBreakSensor",
	models.CategoryMotionSensor:  "motionSensor",
	models.CategoryPanicButton:   "panicButton",
	models.CategoryWaterSensor:   "waterSensor",
	models.CategoryWirelessRelay: "wirelessRelay",
}

func siteMove(call func(ctx context.Context, e *Engine, s *command.Session, dev models.EquipmentDevice, siteID string) error) moveFunc {
	return func(ctx context.Context, e *Engine, s *command.Session, settings *models.IntegrationSettings, dev models.EquipmentDevice) (bool, error) {
		target := settings.DesignationFor(dev.Category)
		if target == "" || dev.CommandSiteID == target {
			return false, nil
		}
		if err := call(ctx, e, s, dev, target); err != nil {
			return false, err
		}
		return true, nil
	}
}

func zoneMove(deviceType string) moveFunc {
	return func(ctx context.Context, e *Engine, s *command.Session, settings *models.IntegrationSettings, dev models.EquipmentDevice) (bool, error) {
		if settings.AlarmZoneID == "" {
			return false, nil
		}
		if err := e.cmd.MoveAlarmSensor(ctx, s, dev.CommandDeviceID, deviceType, settings.AlarmZoneID); err != nil {
			return false, err
		}
		return true, nil
	}
}

func moveDispatch() map[models.Category]moveFunc {
	accessControllerMove := siteMove(func(ctx context.Context, e *Engine, s *command.Session, dev models.EquipmentDevice, siteID string) error {
		return e.cmd.MoveAccessController(ctx, s, dev.CommandDeviceID, siteID)
	})

	dispatch := map[models.Category]moveFunc{
		models.CategoryCamera: siteMove(func(ctx context.Context, e *Engine, s *command.Session, dev models.EquipmentDevice, siteID string) error {
			return e.cmd.MoveCamera(ctx, s, dev.CommandDeviceID, siteID)
		}),
		models.CategoryAccessController: accessControllerMove,
		// IO boards relocate through the access controller endpoint.
		models.CategoryIOBoard: accessControllerMove,
		models.CategoryEnvSensor: siteMove(func(ctx context.Context, e *Engine, s *command.Session, dev models.EquipmentDevice, siteID string) error {
			return e.cmd.MoveEnvSensor(ctx, s, dev.CommandDeviceID, dev.CommandSiteID, siteID)
		}),
		models.CategoryIntercom: siteMove(func(ctx context.Context, e *Engine, s *command.Session, dev models.EquipmentDevice, siteID string) error {
			return e.cmd.MoveIntercom(ctx, s, dev.CommandDeviceID, siteID)
		}),
		models.CategoryGateway: siteMove(func(ctx context.Context, e *Engine, s *command.Session, dev models.EquipmentDevice, siteID string) error {
			return e.cmd.MoveGateway(ctx, s, dev.CommandDeviceID, dev.CommandSiteID, siteID)
		}),
		models.CategoryConnector: siteMove(func(ctx context.Context, e *Engine, s *command.Session, dev models.EquipmentDevice, siteID string) error {
			return e.cmd.MoveConnector(ctx, s, dev.CommandDeviceID, siteID)
		}),
	}
	for cat, deviceType := range alarmSensorTypes {
		dispatch[cat] = zoneMove(deviceType)
	}
	return dispatch
}

// MoveDevices relocates every synced device whose category has a configured
// designation. Categories without a move implementation are logged and
// skipped; individual move failures are noted without stopping the sweep.
func (e *Engine) MoveDevices(ctx context.Context, orgID string, settings *models.IntegrationSettings, session *command.Session) *models.RunReport {
	report := &models.RunReport{
		OrgID:     orgID,
		Pipeline:  PipelineMoves,
		Outcome:   models.RunSucceeded,
		StartedAt: time.Now().UTC(),
	}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	devices, err := e.devices.ListSynced(orgID)
	if err != nil {
		report.AddNote("store", err.Error())
		return report
	}

	dispatch := moveDispatch()
	var mu stdsync.Mutex
	e.pool.Run(ctx, len(devices), func(i int) {
		dev := devices[i]
		fn, ok := dispatch[dev.Category]
		if !ok {
			utils.GetLogger().Warn("move not implemented for category",
				zap.String("orgId", orgID),
				zap.String("category", string(dev.Category)),
				zap.String("serialNumber", dev.SerialNumber))
			return
		}
		moved, err := fn(ctx, e, session, settings, dev)
		if err != nil {
			mu.Lock()
			report.AddNote(string(dev.Category), err.Error())
			mu.Unlock()
			return
		}
		if moved {
			mu.Lock()
			report.Processed++
			mu.Unlock()
		}
	})

	return report
}
