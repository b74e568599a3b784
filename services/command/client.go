// Package command is the outbound client for the Command physical-security
// platform. It owns session bootstrap, the per-category listing endpoints, and
// the site/zone/user/group management calls the sync engine drives. Every
// request goes through the shared retrying HTTP client.
package command

import (
	"fmt"
	"time"

	"equiptrack/config"
	"equiptrack/utils"
)

// Command service subdomains. Each resource family lives on its own host.
const (
	svcProvision = "vprovision"
	svcCerberus  = "vcerberus"
	svcSensor    = "vsensor"
	svcNet       = "vnet"
	svcVX        = "vvx"
	svcBroadcast = "vbroadcast"
	svcAlarms    = "alarms"
	svcProConfig = "vproconfig"
	svcAppInit   = "vappinit"
	svcAPI       = "api"
	svcAuth      = "vauth"
	svcCorgi     = "vcorgi"
)

// Client issues authenticated calls against the Command platform.
type Client struct {
	http     *utils.RetryClient
	override string
}

// NewClient builds a client from the application configuration.
func NewClient() *Client {
	cfg := config.AppConfig
	return &Client{
		http: utils.NewRetryClient(
			cfg.HTTPMaxRetries,
			time.Duration(cfg.HTTPRetryDelaySec)*time.Second,
			time.Duration(cfg.HTTPTimeoutSec)*time.Second,
		),
		override: cfg.CommandAPIOverride,
	}
}

// NewClientWith builds a client around an explicit retry client and base-URL
// override. Used by tests.
func NewClientWith(http *utils.RetryClient, override string) *Client {
	return &Client{http: http, override: override}
}

// url builds the full URL for a tenant-scoped endpoint on a Command service.
func (c *Client) url(service, shortName, path string) string {
	base := c.override
	if base == "" {
		base = fmt.Sprintf("https://%s.command.verkada.com", service)
	}
	return fmt.Sprintf("%s/__v/%s%s", base, shortName, path)
}
