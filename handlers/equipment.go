package handlers

import (
	"errors"
	"net/http"

	"equiptrack/services/equipment"
	"equiptrack/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EquipmentHandler exposes the device lifecycle endpoints.
type EquipmentHandler struct {
	Service equipment.EquipmentService
}

func equipmentStatus(err error) int {
	switch {
	case errors.As(err, &equipment.NotFoundError{}):
		return http.StatusNotFound
	case errors.As(err, &equipment.DuplicateSerialError{}):
		return http.StatusConflict
	case errors.As(err, &equipment.AlreadyCheckedOutError{}):
		return http.StatusConflict
	case errors.As(err, &equipment.NotHolderError{}):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RegisterDeviceHandler handles POST /api/equipment.
func (h *EquipmentHandler) RegisterDeviceHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		SerialNumber string `json:"serialNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.Service.RegisterDevice(c.GetString("orgID"), req.SerialNumber)
	if err != nil {
		logger.Error("Device registration failed", zap.String("serialNumber", req.SerialNumber), zap.Error(err))
		c.JSON(equipmentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dev)
}

// GetDeviceHandler handles GET /api/equipment/:id.
func (h *EquipmentHandler) GetDeviceHandler(c *gin.Context) {
	dev, err := h.Service.GetDevice(c.GetString("orgID"), c.Param("id"))
	if err != nil {
		c.JSON(equipmentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dev)
}

// ListDevicesHandler handles GET /api/equipment.
func (h *EquipmentHandler) ListDevicesHandler(c *gin.Context) {
	includeDeleted := c.Query("includeDeleted") == "true"
	devices, err := h.Service.ListDevices(c.GetString("orgID"), includeDeleted)
	if err != nil {
		utils.GetLogger().Error("Device listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// CheckoutHandler handles POST /api/equipment/:id/checkout.
func (h *EquipmentHandler) CheckoutHandler(c *gin.Context) {
	var req struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.Service.Checkout(c.Request.Context(), c.GetString("orgID"), c.Param("id"), c.GetString("userID"), req.Note)
	if err != nil {
		c.JSON(equipmentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dev)
}

// ReturnHandler handles POST /api/equipment/:id/return.
func (h *EquipmentHandler) ReturnHandler(c *gin.Context) {
	dev, err := h.Service.Return(c.Request.Context(), c.GetString("orgID"), c.Param("id"), c.GetString("userID"), c.GetString("role"))
	if err != nil {
		c.JSON(equipmentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dev)
}

// DeleteDeviceHandler handles DELETE /api/equipment/:id.
func (h *EquipmentHandler) DeleteDeviceHandler(c *gin.Context) {
	if err := h.Service.DeleteDevice(c.GetString("orgID"), c.Param("id")); err != nil {
		c.JSON(equipmentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device deleted"})
}
