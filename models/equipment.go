package models

import "time"

// EquipmentDevice is one physical asset tracked for an organization. The serial
// number is the business key that joins local records to the Command platform;
// it must never be reassigned to a different physical identity.
type EquipmentDevice struct {
	ID              string     `bson:"id" json:"id"`
	OrgID           string     `bson:"orgId" json:"orgId"`
	SerialNumber    string     `bson:"serialNumber" json:"serialNumber"`
	Category        Category   `bson:"category" json:"category"`
	CommandDeviceID string     `bson:"commandDeviceId,omitempty" json:"commandDeviceId,omitempty"`
	CommandSiteID   string     `bson:"commandSiteId,omitempty" json:"commandSiteId,omitempty"`
	AlarmSystemID   string     `bson:"alarmSystemId,omitempty" json:"alarmSystemId,omitempty"`
	CheckedOut      bool       `bson:"checkedOut" json:"checkedOut"`
	CheckedOutBy    string     `bson:"checkedOutBy" json:"checkedOutBy"`
	CheckedOutAt    *time.Time `bson:"checkedOutAt,omitempty" json:"checkedOutAt,omitempty"`
	CheckedOutNote  string     `bson:"checkedOutNote" json:"checkedOutNote"`
	Deleted         bool       `bson:"deleted" json:"deleted"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
}
