package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RemoteUser is one user account on the Command platform.
type RemoteUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// ListUsers returns every user account in the organization, across all
// statuses, in one page.
func (c *Client) ListUsers(ctx context.Context, s *Session) ([]RemoteUser, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"paging": map[string]interface{}{
			"pageSize":  2000,
			"sortOrder": []string{"full_name:asc", "email:asc"},
		},
		"isVisitor":         false,
		"groupIds":          []string{},
		"organizationId":    s.OrgID,
		"roles":             []string{},
		"status":            []string{"active", "deactivated", "invited"},
		"includeRoleGrants": false,
		"includeGroups":     false,
		"useEs":             false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal user search payload: %w", err)
	}

	path := fmt.Sprintf("/organization/%s/users/search", s.OrgID)
	resp, err := c.http.Send(ctx, http.MethodPost, c.url(svcProvision, s.ShortName, path), s.Headers, payload)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var data struct {
		Users []RemoteUser `json:"users"`
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	return data.Users, nil
}

// DeleteUser removes one user account from the organization.
func (c *Client) DeleteUser(ctx context.Context, s *Session, userID string) error {
	payload, err := json.Marshal(map[string]interface{}{"userIds": []string{userID}})
	if err != nil {
		return fmt.Errorf("marshal user delete payload: %w", err)
	}
	path := fmt.Sprintf("/org/%s/users/delete", s.OrgID)
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcCorgi, s.ShortName, path), s.Headers, payload); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}

// RemoteGroup is one security entity group on the Command platform.
type RemoteGroup struct {
	GroupID string
	Name    string
}

// ListGroups returns the organization's security groups.
func (c *Client) ListGroups(ctx context.Context, s *Session) ([]RemoteGroup, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"organizationId":     s.OrgID,
		"includeMembers":     false,
		"includeMemberCount": false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal group list payload: %w", err)
	}

	resp, err := c.http.Send(ctx, http.MethodPost, c.url(svcAuth, s.ShortName, "/security_entity_group/list"), s.Headers, payload)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	var data struct {
		SecurityEntityGroup []struct {
			EntityGroupID string `json:"entityGroupId"`
			Name          string `json:"name"`
		} `json:"securityEntityGroup"`
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode group list: %w", err)
	}

	groups := make([]RemoteGroup, 0, len(data.SecurityEntityGroup))
	for _, g := range data.SecurityEntityGroup {
		if g.EntityGroupID == "" {
			continue
		}
		groups = append(groups, RemoteGroup{GroupID: g.EntityGroupID, Name: g.Name})
	}
	return groups, nil
}

// DeleteGroup removes one security group.
func (c *Client) DeleteGroup(ctx context.Context, s *Session, groupID string) error {
	payload, err := json.Marshal(map[string]interface{}{"securityEntityGroupIds": []string{groupID}})
	if err != nil {
		return fmt.Errorf("marshal group delete payload: %w", err)
	}
	if _, err := c.http.Send(ctx, http.MethodPost, c.url(svcAuth, s.ShortName, "/security_entity_group/delete"), s.Headers, payload); err != nil {
		return fmt.Errorf("delete group %s: %w", groupID, err)
	}
	return nil
}
