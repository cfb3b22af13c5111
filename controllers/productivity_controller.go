package controllers

import (
	"net/http"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"

	"github.com/gin-gonic/gin"
)

type LogProductivityInput struct {
	Mood     string `json:"mood"`
	Activity string `json:"activity"`
	Duration int    `json:"duration"`
}

func LogProductivity(c *gin.Context) {
	uid := c.GetUint("userID")

	var input LogProductivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Mood {
	case models.MoodHappy, models.MoodNeutral, models.MoodSad, models.MoodStressed:
	case "":
		input.Mood = models.MoodNeutral
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mood"})
		return
	}

	entry := models.ProductivityLog{
		UserID:   uid,
		Mood:     input.Mood,
		Activity: input.Activity,
		Duration: input.Duration,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func GetProductivityLogs(c *gin.Context) {
	uid := c.GetUint("userID")

	var logs []models.ProductivityLog
	if err := config.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
