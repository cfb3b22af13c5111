package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/controllers"
	"github.com/mohitlamba65/Habit-Tracker/routes"
	"github.com/mohitlamba65/Habit-Tracker/services"
)

func main() {
	config.InitDB()
	app := config.LoadApp()

	mailer, err := services.NewMailer(app.AWSRegion, app.SESSourceEmail)
	if err != nil {
		log.Fatalf("mailer init failed: %v", err)
	}
	sms, err := services.NewSMSService(app.AWSRegion)
	if err != nil {
		log.Fatalf("sms init failed: %v", err)
	}

	hub := services.NewRealtimeHub()
	notifier := services.NewNotifier(config.DB, mailer, sms, hub)

	sched := services.NewScheduler(config.DB, app.PollInterval)
	reminders := services.NewReminderService(config.DB, sched, notifier)
	sweeper := services.NewSweeperService(config.DB, app, sched, notifier)
	predictions := services.NewPredictionService(config.DB, app, sched, services.NewMLClient(app.PredictorURL))

	reminders.RegisterJobs()
	sweeper.RegisterJobs()
	predictions.RegisterJobs()

	if err := sched.Every(app.SweepInterval, services.JobHabitMissedCheck, nil); err != nil {
		log.Fatalf("scheduling missed check: %v", err)
	}
	if err := sched.EveryCron(app.PredictionCron, services.JobRegeneratePrediction, nil); err != nil {
		log.Fatalf("scheduling prediction regeneration: %v", err)
	}

	sched.Start()
	defer sched.Stop()

	habits := services.NewHabitService(config.DB, app, reminders)

	r := routes.SetupRouter(routes.Controllers{
		Auth:        controllers.NewAuthController(mailer),
		Habits:      controllers.NewHabitController(habits),
		Predictions: controllers.NewPredictionController(predictions),
		Realtime:    controllers.NewRealtimeController(hub),
	})

	go func() {
		if err := r.Run(":8080"); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")
}
