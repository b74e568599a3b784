package sync

import (
	"fmt"
	"time"

	deviceRepo "equiptrack/database/repository/device"
	"equiptrack/models"
	"equiptrack/services/command"
)

// PrepareOutcome is the explicit result of preparing one fetched item. Op is
// nil when the item was skipped, in which case SkipReason says why.
type PrepareOutcome struct {
	Op         *models.DeviceWriteOp
	SkipReason string
}

func skip(reason string) PrepareOutcome {
	return PrepareOutcome{SkipReason: reason}
}

// Preparer turns raw fetched items into write operations against the local
// store. It never writes; the decision between update and create is made here
// and committed later by the Writer.
type Preparer struct {
	devices deviceRepo.DeviceRepository
}

// Prepare resolves one raw item to an update of the existing record with the
// same serial number, a create when no record matches, or a skip.
func (p *Preparer) Prepare(orgID string, item command.RawItem, spec command.FetchSpec) (PrepareOutcome, error) {
	remoteID := item.Str(spec.IDField)
	serial := item.Str(spec.SerialField)
	if serial == "" && spec.SerialFallback != "" {
		serial = item.Str(spec.SerialFallback)
	}
	if remoteID == "" || serial == "" {
		return skip("missing device id or serial number"), nil
	}

	for _, cat := range spec.SkipWhenClassified {
		if command.Classify(serial) == cat {
			return skip(fmt.Sprintf("serial classifies as %s, handled by that category", cat)), nil
		}
	}

	fields := map[string]interface{}{
		"commandDeviceId": remoteID,
		"category":        spec.Category,
	}
	for dest, src := range spec.ExtraFields {
		if v := item.Str(src); v != "" {
			fields[dest] = v
		}
	}

	existing, err := p.devices.GetBySerial(orgID, serial)
	if err != nil {
		return PrepareOutcome{}, fmt.Errorf("lookup serial %s: %w", serial, err)
	}
	if existing != nil {
		return PrepareOutcome{Op: &models.DeviceWriteOp{
			Action:       models.WriteActionUpdate,
			TargetID:     existing.ID,
			SerialNumber: serial,
			Fields:       fields,
		}}, nil
	}

	fields["serialNumber"] = serial
	fields["checkedOut"] = false
	fields["checkedOutBy"] = ""
	fields["checkedOutAt"] = nil
	fields["checkedOutNote"] = ""
	fields["deleted"] = false
	fields["createdAt"] = time.Now().UTC()
	return PrepareOutcome{Op: &models.DeviceWriteOp{
		Action:       models.WriteActionCreate,
		SerialNumber: serial,
		Fields:       fields,
	}}, nil
}
