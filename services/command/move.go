package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// MoveCamera assigns a camera to a destination site. The endpoint accepts
// batches; we move one device per call so failures stay per-device.
func (c *Client) MoveCamera(ctx context.Context, s *Session, cameraID, siteID string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"cameraIds":         []string{cameraID},
		"destinationSiteId": siteID,
	})
	if err != nil {
		return fmt.Errorf("marshal camera move payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcProvision, s.ShortName, "/camera/site/batch/set"), s.Headers, payload); err != nil {
		return fmt.Errorf("move camera %s: %w", cameraID, err)
	}
	return nil
}

// MoveAccessController moves an access controller (or IO board) to a site.
func (c *Client) MoveAccessController(ctx context.Context, s *Session, controllerID, siteID string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"accessControllerId": controllerID,
		"siteId":             siteID,
	})
	if err != nil {
		return fmt.Errorf("marshal controller move payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcCerberus, s.ShortName, "/access_controller/move_to_site"), s.Headers, payload); err != nil {
		return fmt.Errorf("move access controller %s: %w", controllerID, err)
	}
	return nil
}

// MoveEnvSensor moves an environmental sensor to a site. The endpoint wants
// the current site too; when it already matches, the platform's 400 no-op
// response is normalized to success by the HTTP client.
func (c *Client) MoveEnvSensor(ctx context.Context, s *Session, sensorID, currentSiteID, siteID string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"currentSiteId": currentSiteID,
		"siteId":        siteID,
	})
	if err != nil {
		return fmt.Errorf("marshal sensor move payload: %w", err)
	}
	path := fmt.Sprintf("/devices/%s", sensorID)
	if _, err := c.http.Send(ctx, http.MethodPatch, c.url(svcSensor, s.ShortName, path), s.Headers, payload); err != nil {
		return fmt.Errorf("move environmental sensor %s: %w", sensorID, err)
	}
	return nil
}

// MoveIntercom moves an intercom to a site.
func (c *Client) MoveIntercom(ctx context.Context, s *Session, intercomID, siteID string) error {
	payload, err := json.Marshal(map[string]interface{}{"siteId": siteID})
	if err != nil {
		return fmt.Errorf("marshal intercom move payload: %w", err)
	}
	path := fmt.Sprintf("/vinter/v1/user/organization/%s/intercom/%s", s.OrgID, intercomID)
	if _, err := c.http.Send(ctx, http.MethodPatch, c.url(svcAPI, s.ShortName, path), s.Headers, payload); err != nil {
		return fmt.Errorf("move intercom %s: %w", intercomID, err)
	}
	return nil
}

// MoveGateway moves a gateway to a site.
func (c *Client) MoveGateway(ctx context.Context, s *Session, gatewayID, currentSiteID, siteID string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"currentSiteId": currentSiteID,
		"siteId":        siteID,
	})
	if err != nil {
		return fmt.Errorf("marshal gateway move payload: %w", err)
	}
	path := fmt.Sprintf("/devices/%s", gatewayID)
	if _, err := c.http.Send(ctx, http.MethodPatch, c.url(svcNet, s.ShortName, path), s.Headers, payload); err != nil {
		return fmt.Errorf("move gateway %s: %w", gatewayID, err)
	}
	return nil
}

// MoveConnector moves a command connector to a site.
func (c *Client) MoveConnector(ctx context.Context, s *Session, connectorID, siteID string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"deviceId": connectorID,
		"siteId":   siteID,
	})
	if err != nil {
		return fmt.Errorf("marshal connector move payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPatch, c.url(svcProvision, s.ShortName, "/vfortress/update_box"), s.Headers, payload); err != nil {
		return fmt.Errorf("move connector %s: %w", connectorID, err)
	}
	return nil
}

// MoveAlarmSensor assigns a classic-alarm sensor to a zone.
func (c *Client) MoveAlarmSensor(ctx context.Context, s *Session, deviceID, deviceType, zoneID string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"deviceId":   deviceID,
		"deviceType": deviceType,
		"zoneId":     zoneID,
	})
	if err != nil {
		return fmt.Errorf("marshal alarm sensor move payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcAlarms, s.ShortName, "/device/move"), s.Headers, payload); err != nil {
		return fmt.Errorf("move alarm sensor %s: %w", deviceID, err)
	}
	return nil
}

// RenameCamera sets a camera's display name.
func (c *Client) RenameCamera(ctx context.Context, s *Session, cameraID, name string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"cameraId": cameraID,
		"name":     name,
	})
	if err != nil {
		return fmt.Errorf("marshal camera rename payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcProvision, s.ShortName, "/camera/name/set"), s.Headers, payload); err != nil {
		return fmt.Errorf("rename camera %s: %w", cameraID, err)
	}
	return nil
}
