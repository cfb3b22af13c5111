package routes

import (
	"github.com/mohitlamba65/Habit-Tracker/controllers"
	"github.com/mohitlamba65/Habit-Tracker/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Habits      *controllers.HabitController
	Predictions *controllers.PredictionController
	Realtime    *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/forgot-password", ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctrl.Auth.ResetPassword)
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	habits := r.Group("/habits")
	habits.Use(middlewares.AuthMiddleware())
	{
		habits.POST("", ctrl.Habits.Create)
		habits.GET("", ctrl.Habits.List)
		habits.PATCH("/:id/complete", ctrl.Habits.Complete)
		habits.DELETE("/:id", ctrl.Habits.Delete)
		habits.GET("/:id/logs", ctrl.Habits.Logs)
	}

	productivity := r.Group("/productivity")
	productivity.Use(middlewares.AuthMiddleware())
	{
		productivity.POST("", controllers.LogProductivity)
		productivity.GET("", controllers.GetProductivityLogs)
	}

	predictions := r.Group("/predictions")
	predictions.Use(middlewares.AuthMiddleware())
	{
		predictions.GET("", ctrl.Predictions.List)
		predictions.POST("/regenerate", ctrl.Predictions.Regenerate)
	}

	notifications := r.Group("/notifications")
	notifications.Use(middlewares.AuthMiddleware())
	{
		notifications.GET("", controllers.ListNotifications)
		notifications.PATCH("/:id/read", controllers.MarkNotificationRead)
	}

	realtime := r.Group("/realtime")
	realtime.Use(middlewares.AuthMiddleware())
	{
		realtime.GET("/notifications", ctrl.Realtime.NotificationsWS)
	}

	return r
}
