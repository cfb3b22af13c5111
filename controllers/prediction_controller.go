package controllers

import (
	"net/http"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"
	"github.com/mohitlamba65/Habit-Tracker/services"

	"github.com/gin-gonic/gin"
)

type PredictionController struct {
	Predictions *services.PredictionService
}

func NewPredictionController(predictions *services.PredictionService) *PredictionController {
	return &PredictionController{Predictions: predictions}
}

func (pc *PredictionController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	var predictions []models.Prediction
	if err := config.DB.Where("user_id = ?", uid).Order("updated_at DESC").Find(&predictions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, predictions)
}

// Regenerate recomputes the caller's prediction on demand instead of waiting
// for the weekly run.
func (pc *PredictionController) Regenerate(c *gin.Context) {
	uid := c.GetUint("userID")

	prediction, err := pc.Predictions.RegenerateFor(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, prediction)
}
