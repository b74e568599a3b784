package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Session is an authenticated Command session for one organization's service
// bot. Downstream components always receive a Session, never raw credentials.
type Session struct {
	ShortName string            `json:"shortName"`
	OrgID     string            `json:"orgId"`
	BotUserID string            `json:"botUserId"`
	Token     string            `json:"token"`
	Headers   map[string]string `json:"headers"`
}

type loginResponse struct {
	UserToken      string `json:"userToken"`
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
}

// Login authenticates the organization's service bot and packages the session
// token, bot user id and remote org id with ready-to-use auth headers. It
// fails when the response is missing any of the three required fields.
func (c *Client) Login(ctx context.Context, shortName, botEmail, botSecret string) (*Session, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":        botEmail,
		"orgShortName": shortName,
		"termsAcked":   true,
		"password":     botSecret,
		// Only the primary shard is supported; the janitor pipelines have not
		// been validated against other shards.
		"shard":     "prod1",
		"subdomain": true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal login payload: %w", err)
	}

	resp, err := c.http.Send(ctx, http.MethodPost, c.url(svcProvision, shortName, "/user/login"), nil, payload)
	if err != nil {
		return nil, fmt.Errorf("login failed for %s: %w", shortName, err)
	}

	var data loginResponse
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if data.UserToken == "" || data.UserID == "" || data.OrganizationID == "" {
		return nil, fmt.Errorf("login response missing required fields for %s", shortName)
	}

	return &Session{
		ShortName: shortName,
		OrgID:     data.OrganizationID,
		BotUserID: data.UserID,
		Token:     data.UserToken,
		Headers: map[string]string{
			"X-Verkada-Auth":            data.UserToken,
			"X-Verkada-User-id":         data.UserID,
			"X-Verkada-Organization-Id": data.OrganizationID,
		},
	}, nil
}
