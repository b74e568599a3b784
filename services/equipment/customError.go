package equipment

import "fmt"

// NotFoundError signals that no live device matches the requested id.
type NotFoundError struct {
	DeviceID string
}

func (e NotFoundError) Error() string {
	return "device not found: " + e.DeviceID
}

// DuplicateSerialError signals that the serial number is already registered
// in the organization.
type DuplicateSerialError struct {
	SerialNumber string
}

func (e DuplicateSerialError) Error() string {
	return "serial number already registered: " + e.SerialNumber
}

// AlreadyCheckedOutError signals a checkout attempt on a device someone else
// holds.
type AlreadyCheckedOutError struct {
	DeviceID string
	HeldBy   string
}

func (e AlreadyCheckedOutError) Error() string {
	return fmt.Sprintf("device %s is already checked out by %s", e.DeviceID, e.HeldBy)
}

// NotHolderError signals a return attempt by someone who is neither the
// holder nor privileged to return on their behalf.
type NotHolderError struct {
	DeviceID string
	HeldBy   string
}

func (e NotHolderError) Error() string {
	return fmt.Sprintf("device %s can only be returned by %s or an admin", e.DeviceID, e.HeldBy)
}
