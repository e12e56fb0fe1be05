package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gymbuddy-api/models"
	"gymbuddy-api/services"
	"gymbuddy-api/utils"
)

type MeetupController struct {
	db            *gorm.DB
	meetupService *services.MeetupService
}

func NewMeetupController(db *gorm.DB) *MeetupController {
	return &MeetupController{
		db:            db,
		meetupService: services.NewMeetupService(db),
	}
}

// UpdateGymLocation handles PUT /api/v1/meetup/gym
// Merge-updates the caller's registered gym; other profile fields are
// untouched.
func (mc *MeetupController) UpdateGymLocation(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdateGymLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidLatitude(*req.Lat) || !utils.IsValidLongitude(*req.Lng) {
		utils.SendValidationError(c, "Invalid coordinates")
		return
	}

	var user models.User
	if err := mc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{
		"gym_name":     req.Name,
		"gym_address":  req.Address,
		"gym_place_id": req.PlaceID,
		"gym_lat":      *req.Lat,
		"gym_lng":      *req.Lng,
	}
	if err := mc.db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save gym location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gym location updated successfully"})
}

// GetNearbyUsers handles GET /api/v1/meetup/nearby
// Returns unconnected users sorted ascending by distance from the caller's
// gym.
func (mc *MeetupController) GetNearbyUsers(c *gin.Context) {
	userID := c.GetString("user_id")

	nearby, err := mc.meetupService.NearbyUsers(userID)
	if err != nil {
		if errors.Is(err, services.ErrNoGymLocation) {
			utils.SendValidationError(c, err.Error())
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch nearby users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": nearby,
		"count": len(nearby),
	})
}
