package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gymbuddy-api/models"
	"gymbuddy-api/repositories"
	"gymbuddy-api/services"
	"gymbuddy-api/utils"
)

type ExerciseController struct {
	exerciseService *services.ExerciseService
}

func NewExerciseController(db *gorm.DB, cache *redis.Client, logger *zap.Logger) *ExerciseController {
	exerciseRepo := repositories.NewExerciseRepository(db)
	exerciseService := services.NewExerciseService(exerciseRepo, cache, logger)

	return &ExerciseController{
		exerciseService: exerciseService,
	}
}

// GetCatalog handles GET /api/v1/exercises
// Returns the catalog grouped by first letter for presentation.
func (ec *ExerciseController) GetCatalog(c *gin.Context) {
	exercises, err := ec.exerciseService.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exercise catalog"})
		return
	}

	groups := services.GroupCatalog(exercises)
	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
		"count":  len(exercises),
	})
}

// GetLog handles GET /api/v1/logs/:date
// A date with no saved log returns an empty log, not an error.
func (ec *ExerciseController) GetLog(c *gin.Context) {
	userID := c.GetString("user_id")
	date := c.Param("date")

	log, err := ec.exerciseService.Log(userID, date)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLogDate) {
			utils.SendValidationError(c, err.Error())
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": log})
}

// SaveLog handles PUT /api/v1/logs/:date
// Merge-write: absent fields keep their stored value.
func (ec *ExerciseController) SaveLog(c *gin.Context) {
	userID := c.GetString("user_id")
	date := c.Param("date")

	var update models.DailyLogUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ec.exerciseService.SaveLog(userID, date, update); err != nil {
		if errors.Is(err, services.ErrInvalidLogDate) {
			utils.SendValidationError(c, err.Error())
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Log saved successfully"})
}

// ListLogs handles GET /api/v1/logs
// Used to build the per-user calendar of active days.
func (ec *ExerciseController) ListLogs(c *gin.Context) {
	userID := c.GetString("user_id")

	logs, err := ec.exerciseService.Logs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}

// GetExerciseStats handles GET /api/v1/stats/:exercise
// Returns average weight per date for one exercise, for progress charts.
func (ec *ExerciseController) GetExerciseStats(c *gin.Context) {
	userID := c.GetString("user_id")
	exerciseName := c.Param("exercise")

	averages, err := ec.exerciseService.AverageWeightByDate(userID, exerciseName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exercise": exerciseName,
		"averages": averages,
	})
}
