package organization

import (
	"fmt"
	"strings"
	"time"

	"equiptrack/models"

	"github.com/google/uuid"
)

func (s *DefaultOrganizationService) CreateOrganization(name string) (*models.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	org := &models.Organization{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

func (s *DefaultOrganizationService) GetOrganization(id string) (*models.Organization, error) {
	org, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organization %s: %w", id, err)
	}
	if org == nil {
		return nil, fmt.Errorf("organization not found: %s", id)
	}
	return org, nil
}

func (s *DefaultOrganizationService) SetIntegrationEnabled(orgID string, enabled bool) error {
	if _, err := s.GetOrganization(orgID); err != nil {
		return err
	}
	if err := s.Repo.Update(orgID, map[string]interface{}{"integrationEnabled": enabled}); err != nil {
		return fmt.Errorf("failed to update organization %s: %w", orgID, err)
	}
	return nil
}

func (s *DefaultOrganizationService) GetSettings(orgID string) (*models.IntegrationSettings, error) {
	settings, err := s.Repo.GetSettings(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings for %s: %w", orgID, err)
	}
	return settings, nil
}

func (s *DefaultOrganizationService) UpdateCredentials(orgID, shortName, botEmail, botSecret string) error {
	if shortName == "" || botEmail == "" || botSecret == "" {
		return fmt.Errorf("shortName, botEmail and botSecret are all required")
	}
	return s.upsert(orgID, map[string]interface{}{
		"shortName": shortName,
		"botEmail":  botEmail,
		"botSecret": botSecret,
	})
}

func (s *DefaultOrganizationService) UpdateDesignations(orgID string, designations map[models.Category]string) error {
	for cat := range designations {
		if cat == models.CategoryUnknown {
			return fmt.Errorf("cannot designate a site for unknown devices")
		}
	}
	return s.upsert(orgID, map[string]interface{}{"siteDesignations": designations})
}

func (s *DefaultOrganizationService) SetAlarmZone(orgID, zoneID string) error {
	return s.upsert(orgID, map[string]interface{}{"alarmZoneId": zoneID})
}

func (s *DefaultOrganizationService) SetSiteCleaner(orgID string, enabled bool) error {
	return s.upsert(orgID, map[string]interface{}{"siteCleanerEnabled": enabled})
}

// SetGroupWhitelisted flips one group's whitelist decision. The group must
// already be mirrored into the settings by the group sync.
func (s *DefaultOrganizationService) SetGroupWhitelisted(orgID, groupID string, whitelisted bool) error {
	settings, err := s.GetSettings(orgID)
	if err != nil {
		return err
	}
	if settings == nil {
		return fmt.Errorf("integration not configured for organization %s", orgID)
	}
	found := false
	for i := range settings.GroupWhitelist {
		if settings.GroupWhitelist[i].GroupID == groupID {
			settings.GroupWhitelist[i].Whitelisted = whitelisted
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("group %s is not known for organization %s", groupID, orgID)
	}
	return s.upsert(orgID, map[string]interface{}{"groupWhitelist": settings.GroupWhitelist})
}

func (s *DefaultOrganizationService) upsert(orgID string, fields map[string]interface{}) error {
	if _, err := s.GetOrganization(orgID); err != nil {
		return err
	}
	if err := s.Repo.UpsertSettings(orgID, fields); err != nil {
		return fmt.Errorf("failed to update settings for %s: %w", orgID, err)
	}
	return nil
}
