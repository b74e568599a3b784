package handlers

import (
	"net/http"
	"time"

	"equiptrack/models"
	"equiptrack/services/equipment"
	"equiptrack/services/organization"
	"equiptrack/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrganizationHandler exposes organization and integration admin endpoints.
type OrganizationHandler struct {
	Service organization.OrganizationService
}

// CreateOrganizationHandler handles POST /api/admin/orgs.
func (h *OrganizationHandler) CreateOrganizationHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	org, err := h.Service.CreateOrganization(req.Name)
	if err != nil {
		utils.GetLogger().Error("Organization creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, org)
}

// GetOrganizationHandler handles GET /api/admin/orgs/:id.
func (h *OrganizationHandler) GetOrganizationHandler(c *gin.Context) {
	org, err := h.Service.GetOrganization(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, org)
}

// SetIntegrationEnabledHandler handles PUT /api/admin/orgs/:id/integration.
func (h *OrganizationHandler) SetIntegrationEnabledHandler(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.SetIntegrationEnabled(c.Param("id"), *req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Integration flag updated"})
}

// GetSettingsHandler handles GET /api/admin/orgs/:id/settings. Credentials
// never serialize; the settings model redacts the bot secret.
func (h *OrganizationHandler) GetSettingsHandler(c *gin.Context) {
	settings, err := h.Service.GetSettings(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if settings == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not configured"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateCredentialsHandler handles PUT /api/admin/orgs/:id/credentials.
func (h *OrganizationHandler) UpdateCredentialsHandler(c *gin.Context) {
	var req struct {
		ShortName string `json:"shortName" binding:"required"`
		BotEmail  string `json:"botEmail" binding:"required"`
		BotSecret string `json:"botSecret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateCredentials(c.Param("id"), req.ShortName, req.BotEmail, req.BotSecret); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Credentials updated"})
}

// UpdateDesignationsHandler handles PUT /api/admin/orgs/:id/designations.
func (h *OrganizationHandler) UpdateDesignationsHandler(c *gin.Context) {
	var req struct {
		Designations map[models.Category]string `json:"designations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateDesignations(c.Param("id"), req.Designations); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Designations updated"})
}

// SetAlarmZoneHandler handles PUT /api/admin/orgs/:id/alarm-zone.
func (h *OrganizationHandler) SetAlarmZoneHandler(c *gin.Context) {
	var req struct {
		ZoneID string `json:"zoneId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.SetAlarmZone(c.Param("id"), req.ZoneID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alarm zone updated"})
}

// SetSiteCleanerHandler handles PUT /api/admin/orgs/:id/site-cleaner.
func (h *OrganizationHandler) SetSiteCleanerHandler(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.SetSiteCleaner(c.Param("id"), *req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Site cleaner flag updated"})
}

// SetGroupWhitelistedHandler handles PUT /api/admin/orgs/:id/groups/:groupId.
func (h *OrganizationHandler) SetGroupWhitelistedHandler(c *gin.Context) {
	var req struct {
		Whitelisted *bool `json:"whitelisted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.SetGroupWhitelisted(c.Param("id"), c.Param("groupId"), *req.Whitelisted); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group whitelist updated"})
}

// IssueDeskStationTokenHandler handles POST /api/admin/orgs/:id/deskstation-token.
// Desk stations are long-lived kiosk identities, so the token gets a year.
func (h *OrganizationHandler) IssueDeskStationTokenHandler(c *gin.Context) {
	var req struct {
		StationName string `json:"stationName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.Service.GetOrganization(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	token, err := utils.GenerateToken(req.StationName, c.Param("id"), equipment.RoleDeskStation, 365*24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("Desk station token issuance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
