package controllers

import (
	"net/http"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":         user.Email,
		"full_name":     user.FullName,
		"phone":         user.Phone,
		"timezone":      user.Timezone,
		"email_enabled": user.EmailEnabled,
		"sms_enabled":   user.SMSEnabled,
	})
}

type UpdateProfileInput struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	Timezone     *string `json:"timezone"`
	EmailEnabled *bool   `json:"email_enabled"`
	SMSEnabled   *bool   `json:"sms_enabled"`
}

func UpdateProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timezone"})
			return
		}
		user.Timezone = *input.Timezone
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.EmailEnabled != nil {
		user.EmailEnabled = *input.EmailEnabled
	}
	if input.SMSEnabled != nil {
		user.SMSEnabled = *input.SMSEnabled
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
