package controllers

import (
	"net/http"

	"github.com/302xdwill/NutriFlow/models"
	"github.com/302xdwill/NutriFlow/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DeviceController struct {
	DB   *gorm.DB
	Push *services.PushService
}

func NewDeviceController(db *gorm.DB, push *services.PushService) *DeviceController {
	return &DeviceController{DB: db, Push: push}
}

type registerDeviceInput struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func (dc *DeviceController) Register(c *gin.Context) {
	uid := c.GetUint("userID")

	if dc.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
		return
	}

	var input registerDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(uid, input.Platform, input.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dev)
}

type toggleInput struct {
	Enabled bool `json:"enabled"`
}

// Toggle flips reminders on or off across all of the user's devices.
func (dc *DeviceController) Toggle(c *gin.Context) {
	uid := c.GetUint("userID")

	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := dc.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", uid).
		Update("enabled", input.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notifications updated", "enabled": input.Enabled})
}
