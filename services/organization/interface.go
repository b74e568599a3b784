package organization

import (
	orgRepo "equiptrack/database/repository/organization"
	"equiptrack/models"
)

// OrganizationService manages organizations and their restricted integration
// settings. Settings writes are partial merges so admins can configure
// credentials, designations and the whitelist independently.
type OrganizationService interface {
	CreateOrganization(name string) (*models.Organization, error)
	GetOrganization(id string) (*models.Organization, error)
	SetIntegrationEnabled(orgID string, enabled bool) error

	GetSettings(orgID string) (*models.IntegrationSettings, error)
	UpdateCredentials(orgID, shortName, botEmail, botSecret string) error
	UpdateDesignations(orgID string, designations map[models.Category]string) error
	SetAlarmZone(orgID, zoneID string) error
	SetSiteCleaner(orgID string, enabled bool) error
	SetGroupWhitelisted(orgID, groupID string, whitelisted bool) error
}

// DefaultOrganizationService is the production implementation.
type DefaultOrganizationService struct {
	Repo orgRepo.OrganizationRepository
}

func NewDefaultOrganizationService(repo orgRepo.OrganizationRepository) *DefaultOrganizationService {
	return &DefaultOrganizationService{Repo: repo}
}
