package routes

import (
	"net/http"
	"time"

	"equiptrack/handlers"
	"equiptrack/middleware"
	"equiptrack/services/equipment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterEquipmentRoutes registers the device lifecycle endpoints. All of
// them require an authenticated caller; registration and deletion are
// restricted to admins and desk stations.
func RegisterEquipmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/equipment")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Equipment.ListDevicesHandler)
		api.GET("/:id", hb.Equipment.GetDeviceHandler)
		api.POST("/:id/checkout", hb.Equipment.CheckoutHandler)
		api.POST("/:id/return", hb.Equipment.ReturnHandler)

		restricted := api.Group("")
		restricted.Use(middleware.RequireRole(equipment.RoleAdmin, equipment.RoleDeskStation))
		restricted.POST("", hb.Equipment.RegisterDeviceHandler)
		restricted.DELETE("/:id", hb.Equipment.DeleteDeviceHandler)
	}
}

// RegisterAdminRoutes registers organization and integration management.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin/orgs")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(equipment.RoleAdmin))
		api.POST("", hb.Organization.CreateOrganizationHandler)
		api.GET("/:id", hb.Organization.GetOrganizationHandler)
		api.PUT("/:id/integration", hb.Organization.SetIntegrationEnabledHandler)
		api.GET("/:id/settings", hb.Organization.GetSettingsHandler)
		api.PUT("/:id/credentials", hb.Organization.UpdateCredentialsHandler)
		api.PUT("/:id/designations", hb.Organization.UpdateDesignationsHandler)
		api.PUT("/:id/alarm-zone", hb.Organization.SetAlarmZoneHandler)
		api.PUT("/:id/site-cleaner", hb.Organization.SetSiteCleanerHandler)
		api.PUT("/:id/groups/:groupId", hb.Organization.SetGroupWhitelistedHandler)
		api.POST("/:id/deskstation-token", hb.Organization.IssueDeskStationTokenHandler)
		api.POST("/:id/sync", hb.Sync.SyncNowHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterEquipmentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
