package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"
	"github.com/mohitlamba65/Habit-Tracker/services"
	"github.com/mohitlamba65/Habit-Tracker/utils"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	Habits *services.HabitService
}

func NewHabitController(habits *services.HabitService) *HabitController {
	return &HabitController{Habits: habits}
}

type CreateHabitInput struct {
	Habit          string `json:"habit" binding:"required"`
	CompletionTime string `json:"completion_time" binding:"required"`
	Priority       string `json:"priority"`
}

func (hc *HabitController) Create(c *gin.Context) {
	uid := c.GetUint("userID")

	var input CreateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	habit, err := hc.Habits.Create(&user, input.Habit, input.CompletionTime, input.Priority)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (hc *HabitController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	habits, err := hc.Habits.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, habits)
}

func (hc *HabitController) Complete(c *gin.Context) {
	uid := c.GetUint("userID")
	habitID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	habit, err := hc.Habits.Complete(uid, habitID)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (hc *HabitController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	habitID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	if err := hc.Habits.Delete(uid, habitID); err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "habit deleted"})
}

func (hc *HabitController) Logs(c *gin.Context) {
	uid := c.GetUint("userID")
	habitID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	logs, err := hc.Habits.Logs(uid, habitID)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
