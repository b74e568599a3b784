package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// siteTreeDeviceKeys are the per-category device-id lists carried by each
// entry of the site tree.
var siteTreeDeviceKeys = []string{
	"accessControllers",
	"alarmsDevice",
	"biometricAccessController",
	"cameras",
	"connectBox",
	"deskApp",
	"fortress",
	"gateway",
	"intercom",
	"pavaSpeaker",
	"speaker",
	"vayuSensor",
	"wirelessLocks",
}

// SiteEntry is one site from the Command site tree, flattened to the remote
// device ids it currently contains across all categories.
type SiteEntry struct {
	SiteID    string
	DeviceIDs []string
}

// FetchSiteTree returns every site with the devices assigned to it.
func (c *Client) FetchSiteTree(ctx context.Context, s *Session) ([]SiteEntry, error) {
	resp, err := c.http.Send(ctx, http.MethodPost, c.url(svcAppInit, s.ShortName, "/app/v2/init"), s.Headers, []byte("{}"))
	if err != nil {
		return nil, fmt.Errorf("fetch site tree: %w", err)
	}

	var data struct {
		CameraGroups []map[string]interface{} `json:"cameraGroups"`
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode site tree: %w", err)
	}

	entries := make([]SiteEntry, 0, len(data.CameraGroups))
	for _, group := range data.CameraGroups {
		siteID, _ := group["cameraGroupId"].(string)
		if siteID == "" {
			continue
		}
		entry := SiteEntry{SiteID: siteID}
		for _, key := range siteTreeDeviceKeys {
			ids, ok := group[key].([]interface{})
			if !ok {
				continue
			}
			for _, id := range ids {
				if deviceID, ok := id.(string); ok && deviceID != "" {
					entry.DeviceIDs = append(entry.DeviceIDs, deviceID)
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListSiteIDs returns every site id known to the organization.
func (c *Client) ListSiteIDs(ctx context.Context, s *Session) ([]string, error) {
	payload, err := json.Marshal(map[string]interface{}{"orgId": s.OrgID})
	if err != nil {
		return nil, fmt.Errorf("marshal site list payload: %w", err)
	}
	resp, err := c.http.Send(ctx, http.MethodPost, c.url(svcProvision, s.ShortName, "/org/site/list"), s.Headers, payload)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}

	var data struct {
		Sites []struct {
			SiteID string `json:"siteId"`
		} `json:"sites"`
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode site list: %w", err)
	}

	ids := make([]string, 0, len(data.Sites))
	for _, site := range data.Sites {
		if site.SiteID != "" {
			ids = append(ids, site.SiteID)
		}
	}
	return ids, nil
}

// DeleteSite removes one site. Sites still referenced by a zone cannot be
// deleted; callers must reclaim zones first.
func (c *Client) DeleteSite(ctx context.Context, s *Session, siteID string) error {
	payload, err := json.Marshal(map[string]interface{}{"cameraGroupId": siteID})
	if err != nil {
		return fmt.Errorf("marshal site delete payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcProvision, s.ShortName, "/org/camera_group/delete"), s.Headers, payload); err != nil {
		return fmt.Errorf("delete site %s: %w", siteID, err)
	}
	return nil
}

// ListZoneIDs returns every classic-alarm zone id in the organization.
func (c *Client) ListZoneIDs(ctx context.Context, s *Session) ([]string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"organizationId":   s.OrgID,
		"includeLastEvent": false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal zone list payload: %w", err)
	}
	resp, err := c.http.Send(ctx, http.MethodPost, c.url(svcAlarms, s.ShortName, "/zone/list"), s.Headers, payload)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	var data struct {
		Zone []struct {
			ZoneID string `json:"zoneId"`
		} `json:"zone"`
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode zone list: %w", err)
	}

	ids := make([]string, 0, len(data.Zone))
	for _, zone := range data.Zone {
		if zone.ZoneID != "" {
			ids = append(ids, zone.ZoneID)
		}
	}
	return ids, nil
}

// DeleteZone removes one classic-alarm zone.
func (c *Client) DeleteZone(ctx context.Context, s *Session, zoneID string) error {
	payload, err := json.Marshal(map[string]interface{}{"zoneId": zoneID})
	if err != nil {
		return fmt.Errorf("marshal zone delete payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcAlarms, s.ShortName, "/zone/delete"), s.Headers, payload); err != nil {
		return fmt.Errorf("delete zone %s: %w", zoneID, err)
	}
	return nil
}
