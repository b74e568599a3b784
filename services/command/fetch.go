package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"equiptrack/models"
)

// RawItem is one undecoded device entry from a Command listing endpoint.
// Field names differ per category, so extraction stays key-driven.
type RawItem map[string]interface{}

// Str returns the string value under key, or "" when absent or not a string.
func (i RawItem) Str(key string) string {
	if v, ok := i[key].(string); ok {
		return v
	}
	return ""
}

// FetchSpec describes one category listing endpoint: where it lives, what the
// request looks like, and which fields carry the remote id and serial number.
type FetchSpec struct {
	Category models.Category
	Service  string
	Method   string
	Path     func(s *Session) string
	Payload  func(s *Session) map[string]interface{}
	// ResultKey is the key wrapping the item list; "" means the endpoint
	// returns a bare list.
	ResultKey   string
	IDField     string
	SerialField string
	// SerialFallback is consulted when SerialField is empty on an item.
	SerialFallback string
	// ExtraFields maps local device fields to source item keys copied through
	// on upsert (e.g. a hub device's site id).
	ExtraFields map[string]string
	// SkipWhenClassified lists categories that, when the classifier assigns
	// one of them to an item's serial, cause the item to be skipped. The
	// Command endpoints overlap; the item is handled by its own category's
	// fetch instead.
	SkipWhenClassified []models.Category
}

// DeviceFetchSpecs returns the listing specs for the categories served by
// dedicated endpoints. Intercom/desk-station and the classic alarm family use
// combined endpoints; see FetchIntercomsAndDeskStations and
// FetchClassicAlarmGroups.
func DeviceFetchSpecs() []FetchSpec {
	return []FetchSpec{
		{
			Category: models.CategoryCamera,
			Service:  svcAppInit,
			Method:   http.MethodPost,
			Path:     func(*Session) string { return "/app/v2/init" },
			Payload: func(*Session) map[string]interface{} {
				return map[string]interface{}{"fieldsToSkip": []string{"permissions"}}
			},
			ResultKey:          "cameras",
			IDField:            "cameraId",
			SerialField:        "serialNumber",
			SkipWhenClassified: []models.Category{models.CategoryIntercom},
		},
		{
			Category:    models.CategoryAccessController,
			Service:     svcCerberus,
			Method:      http.MethodGet,
			Path:        func(*Session) string { return "/access/v2/user/access_controllers" },
			ResultKey:   "accessControllers",
			IDField:     "accessControllerId",
			SerialField: "serialNumber",
		},
		{
			Category: models.CategoryEnvSensor,
			Service:  svcSensor,
			Method:   http.MethodPost,
			Path:     func(*Session) string { return "/devices/list" },
			Payload: func(s *Session) map[string]interface{} {
				return map[string]interface{}{"organizationId": s.OrgID, "favoritesOnly": false}
			},
			ResultKey:      "sensorDevice",
			IDField:        "deviceId",
			SerialField:    "claimedSerialNumber",
			SerialFallback: "serialNumber",
		},
		{
			Category: models.CategoryGateway,
			Service:  svcNet,
			Method:   http.MethodPost,
			Path:     func(*Session) string { return "/devices/list" },
			Payload: func(s *Session) map[string]interface{} {
				return map[string]interface{}{"organizationId": s.OrgID}
			},
			IDField:     "device_id",
			SerialField: "claimed_serial_number",
		},
		{
			Category: models.CategoryConnector,
			Service:  svcProvision,
			Method:   http.MethodPost,
			Path:     func(*Session) string { return "/vfortress/list_boxes" },
			Payload: func(s *Session) map[string]interface{} {
				return map[string]interface{}{"organizationId": s.OrgID}
			},
			IDField:     "deviceId",
			SerialField: "claimedSerialNumber",
		},
		{
			Category: models.CategoryViewingStation,
			Service:  svcVX,
			Method:   http.MethodPost,
			Path:     func(*Session) string { return "/device/list" },
			Payload: func(s *Session) map[string]interface{} {
				return map[string]interface{}{"organizationId": s.OrgID}
			},
			ResultKey:   "viewingStations",
			IDField:     "viewingStationId",
			SerialField: "claimedSerialNumber",
		},
		{
			Category: models.CategorySpeaker,
			Service:  svcBroadcast,
			Method:   http.MethodPost,
			Path:     func(*Session) string { return "/management/speaker/list" },
			Payload: func(s *Session) map[string]interface{} {
				return map[string]interface{}{"organizationId": s.OrgID}
			},
			ResultKey:   "garfunkel",
			IDField:     "deviceId",
			SerialField: "serialNumber",
		},
		{
			Category: models.CategoryAlarmKeypad,
			Service:  svcAlarms,
			Method:   http.MethodPost,
			Path:     func(*Session) string { return "/device/keypad/get_all" },
			Payload: func(s *Session) map[string]interface{} {
				return map[string]interface{}{"organizationId": s.OrgID}
			},
			ResultKey:   "keypad",
			IDField:     "deviceId",
			SerialField: "claimedSerialNumber",
		},
		{
			Category:    models.CategoryNewAlarmsDevice,
			Service:     svcProConfig,
			Method:      http.MethodPost,
			Path:        func(*Session) string { return "/org/get_devices_and_alarm_systems" },
			Payload:     func(*Session) map[string]interface{} { return map[string]interface{}{} },
			ResultKey:   "devices",
			IDField:     "id",
			SerialField: "serialNumber",
			ExtraFields: map[string]string{"alarmSystemId": "alarmSystemId"},
		},
	}
}

// Fetch lists one category's devices. Endpoints return either a bare item
// list or a wrapper object keyed by spec.ResultKey.
func (c *Client) Fetch(ctx context.Context, s *Session, spec FetchSpec) ([]RawItem, error) {
	var payload []byte
	if spec.Payload != nil {
		b, err := json.Marshal(spec.Payload(s))
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", spec.Category, err)
		}
		payload = b
	}

	resp, err := c.http.Send(ctx, spec.Method, c.url(spec.Service, s.ShortName, spec.Path(s)), s.Headers, payload)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", spec.Category, err)
	}

	if spec.ResultKey == "" {
		var items []RawItem
		if err := json.Unmarshal(resp.Body, &items); err != nil {
			return nil, fmt.Errorf("decode %s list: %w", spec.Category, err)
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", spec.Category, err)
	}
	raw, ok := wrapper[spec.ResultKey]
	if !ok {
		return nil, nil
	}
	var items []RawItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s items: %w", spec.Category, err)
	}
	return items, nil
}

// FetchIntercomsAndDeskStations lists both device kinds from the shared
// intercom endpoint.
func (c *Client) FetchIntercomsAndDeskStations(ctx context.Context, s *Session) (intercoms, deskStations []RawItem, err error) {
	path := fmt.Sprintf("/vinter/v1/user/organization/%s/device", s.OrgID)
	resp, err := c.http.Send(ctx, http.MethodGet, c.url(svcAPI, s.ShortName, path), s.Headers, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch intercoms/desk stations: %w", err)
	}

	var data struct {
		DeskApps  []RawItem `json:"deskApps"`
		Intercoms []RawItem `json:"intercoms"`
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, nil, fmt.Errorf("decode intercom/desk station response: %w", err)
	}
	return data.Intercoms, data.DeskApps, nil
}

// AlarmGroup is one classic-alarm device kind from the combined get_all
// endpoint, paired with the spec describing its field layout.
type AlarmGroup struct {
	Spec  FetchSpec
	Items []RawItem
}

// FetchClassicAlarmGroups lists the classic alarm hub plus its sensor kinds
// from the combined alarms endpoint.
func (c *Client) FetchClassicAlarmGroups(ctx context.Context, s *Session) ([]AlarmGroup, error) {
	payload, err := json.Marshal(map[string]interface{}{"organizationId": s.OrgID})
	if err != nil {
		return nil, fmt.Errorf("marshal alarm payload: %w", err)
	}
	resp, err := c.http.Send(ctx, http.MethodPost, c.url(svcAlarms, s.ShortName, "/device/get_all"), s.Headers, payload)
	if err != nil {
		return nil, fmt.Errorf("fetch classic alarm devices: %w", err)
	}

	var wrapper map[string][]RawItem
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("decode classic alarm response: %w", err)
	}

	sensorSpec := func(cat models.Category) FetchSpec {
		return FetchSpec{Category: cat, IDField: "deviceId", SerialField: "serialNumber"}
	}
	groups := []AlarmGroup{
		{Spec: FetchSpec{
			Category:           models.CategoryAlarmHub,
			IDField:            "deviceId",
			SerialField:        "claimedSerialNumber",
			ExtraFields:        map[string]string{"commandSiteId": "siteId"},
			SkipWhenClassified: []models.Category{models.CategoryAlarmKeypad},
		}, Items: wrapper["hubDevice"]},
		{Spec: sensorSpec(models.CategoryDoorContact), Items: wrapper["doorContactSensor"]},
		{Spec: sensorSpec(models.CategoryGlassBreak), Items: wrapper["glassBreakSensor"]},
		{Spec: sensorSpec(models.CategoryMotionSensor), Items: wrapper["motionSensor"]},
		{Spec: sensorSpec(models.CategoryPanicButton), Items: wrapper["panicButton"]},
		{Spec: sensorSpec(models.CategoryWaterSensor), Items: wrapper["waterSensor"]},
		{Spec: sensorSpec(models.CategoryWirelessRelay), Items: wrapper["wirelessRelay"]},
	}
	return groups, nil
}
