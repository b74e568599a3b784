package models

// Category is the closed set of physical device kinds tracked by EquipTrack.
// Every device is classified into exactly one category from its serial-number
// prefix; CategoryUnknown covers serials we cannot place.
type Category string

const (
	CategoryCamera           Category = "Camera"
	CategoryAccessController Category = "Access Controller"
	CategoryIOBoard          Category = "Input Output Board"
	CategoryEnvSensor        Category = "Environmental Sensor"
	CategoryIntercom         Category = "Intercom"
	CategoryGateway          Category = "Gateway"
	CategoryConnector        Category = "Command Connector"
	CategoryViewingStation   Category = "Viewing Station"
	CategoryDeskStation      Category = "Desk Station"
	CategorySpeaker          Category = "Speaker"
	CategoryAlarmHub         Category = "Classic Alarm Hub Device"
	CategoryAlarmPanel       Category = "Classic Alarm Panel"
	CategoryAlarmKeypad      Category = "Classic Alarm Keypad"
	CategoryDoorContact      Category = "Classic Alarm Door Contact Sensor"
	CategoryGlassBreak       Category = "Classic Alarm Glass Break Sensor"
	CategoryMotionSensor     Category = "Classic Alarm Motion Sensor"
	CategoryPanicButton      Category = "Classic Alarm Panic Button"
	CategoryWaterSensor      Category = "Classic Alarm Water Sensor"
	CategoryWirelessRelay    Category = "Classic Alarm Wireless Relay"
	CategorySirenStrobe      Category = "Siren Strobe"
	CategoryBP52Panel        Category = "BP52 Panel"
	CategoryAlarmExpander    Category = "Alarm Expander"
	// CategoryNewAlarmsDevice tags devices from the new-generation alarm
	// product line, whose listing endpoint does not distinguish sub-kinds.
	CategoryNewAlarmsDevice Category = "New Alarms Device"
	CategoryUnknown         Category = "Unknown"
)

// AllCategories lists every known category except CategoryUnknown.
var AllCategories = []Category{
	CategoryCamera,
	CategoryAccessController,
	CategoryIOBoard,
	CategoryEnvSensor,
	CategoryIntercom,
	CategoryGateway,
	CategoryConnector,
	CategoryViewingStation,
	CategoryDeskStation,
	CategorySpeaker,
	CategoryAlarmHub,
	CategoryAlarmPanel,
	CategoryAlarmKeypad,
	CategoryDoorContact,
	CategoryGlassBreak,
	CategoryMotionSensor,
	CategoryPanicButton,
	CategoryWaterSensor,
	CategoryWirelessRelay,
	CategorySirenStrobe,
	CategoryBP52Panel,
	CategoryAlarmExpander,
	CategoryNewAlarmsDevice,
}

func (c Category) String() string { return string(c) }
