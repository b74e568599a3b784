package orgRepo

import (
	"equiptrack/models"
)

// OrganizationRepository defines persistence for organizations and their
// restricted integration settings. Settings live in a separate collection so
// credentials never travel with the general-access organization document.
type OrganizationRepository interface {
	GetByID(id string) (*models.Organization, error)
	ListIntegrationEnabled() ([]models.Organization, error)
	Create(org *models.Organization) error
	Update(id string, fields map[string]interface{}) error

	// GetSettings retrieves an organization's integration settings, or nil
	// when the integration was never configured.
	GetSettings(orgID string) (*models.IntegrationSettings, error)
	// UpsertSettings merges the given fields into the settings document,
	// creating it on first configuration.
	UpsertSettings(orgID string, fields map[string]interface{}) error
}
