package services

import (
	"fmt"
	"log"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"
	"github.com/mohitlamba65/Habit-Tracker/utils"

	"gorm.io/gorm"
)

// SweeperService flips overdue pending habits to missed and tells their
// owners. Re-running is a no-op once everything overdue has been flipped:
// missed habits drop out of the query.
type SweeperService struct {
	db       *gorm.DB
	app      *config.App
	sched    *Scheduler
	notifier *Notifier
	now      func() time.Time
}

func NewSweeperService(db *gorm.DB, app *config.App, sched *Scheduler, notifier *Notifier) *SweeperService {
	return &SweeperService{db: db, app: app, sched: sched, notifier: notifier, now: time.Now}
}

// RegisterJobs installs the recurring missed-check handler.
func (s *SweeperService) RegisterJobs() {
	s.sched.Define(JobHabitMissedCheck, func(job *models.ScheduledJob) error {
		return s.Sweep()
	})
}

// Sweep runs one scan-and-transition pass. A failure on one habit is logged
// and never aborts the rest of the sweep.
func (s *SweeperService) Sweep() error {
	now := s.now()
	var overdue []models.Habit
	err := s.db.Where("status = ? AND actual_due < ?", models.StatusPending, now).Find(&overdue).Error
	if err != nil {
		return fmt.Errorf("sweep query: %w", err)
	}

	for i := range overdue {
		if err := s.markMissed(&overdue[i]); err != nil {
			log.Printf("sweep: habit %d: %v", overdue[i].ID, err)
		}
	}
	if len(overdue) > 0 {
		log.Printf("sweep: %d habits marked as missed", len(overdue))
	}
	return nil
}

func (s *SweeperService) markMissed(habit *models.Habit) error {
	habit.Status = models.StatusMissed
	if err := s.db.Save(habit).Error; err != nil {
		return fmt.Errorf("saving: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, habit.UserID).Error; err != nil {
		return fmt.Errorf("loading owner: %w", err)
	}

	// Keep the day's log row in step with the habit.
	if habit.ActualDue != nil {
		day := utils.StartOfDay(*habit.ActualDue, s.app.UserLocation(&user))
		if err := s.db.Model(&models.HabitLog{}).
			Where("habit_id = ? AND day = ?", habit.ID, day).
			Update("status", models.StatusMissed).Error; err != nil {
			log.Printf("sweep: habit %d log update: %v", habit.ID, err)
		}
	}

	message := fmt.Sprintf("You missed your habit %q. Don't worry, try again tomorrow!", habit.Title)
	s.notifier.Notify(&user, "missed", "Habit Missed", message)
	return nil
}
