package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"
	"github.com/mohitlamba65/Habit-Tracker/utils"

	"gorm.io/gorm"
)

var ErrHabitNotFound = errors.New("habit not found")

type HabitService struct {
	db       *gorm.DB
	app      *config.App
	reminder *ReminderService
	now      func() time.Time
}

func NewHabitService(db *gorm.DB, app *config.App, reminder *ReminderService) *HabitService {
	return &HabitService{db: db, app: app, reminder: reminder, now: time.Now}
}

// Create normalizes the completion time into a due instant for today in the
// owner's timezone, opens today's log row, and schedules the reminder an hour
// ahead of the due instant. A completion time already in the past still
// yields a due-for-today instant; there is no roll-forward to tomorrow.
func (h *HabitService) Create(user *models.User, title, completionTime, priority string) (*models.Habit, error) {
	loc := h.app.UserLocation(user)
	now := h.now()

	due, err := utils.NormalizeDue(completionTime, loc, now)
	if err != nil {
		return nil, err
	}

	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	case "":
		priority = models.PriorityMedium
	default:
		return nil, fmt.Errorf("invalid priority %q", priority)
	}

	habit := &models.Habit{
		UserID:         user.ID,
		Title:          title,
		CompletionTime: completionTime,
		ActualDue:      &due,
		Status:         models.StatusPending,
		Priority:       priority,
	}
	if err := h.db.Create(habit).Error; err != nil {
		return nil, err
	}

	habitLog := &models.HabitLog{
		HabitID: habit.ID,
		Day:     utils.StartOfDay(due, loc),
		Status:  models.StatusPending,
	}
	if err := h.db.Create(habitLog).Error; err != nil {
		return nil, err
	}

	if h.reminder != nil {
		if err := h.reminder.ScheduleReminder(habit, user); err != nil {
			return nil, fmt.Errorf("scheduling reminder: %w", err)
		}
	}
	return habit, nil
}

// Complete marks the habit and today's log completed. A pending follow-up job
// finds the completed status and goes quiet; nothing is retracted here.
func (h *HabitService) Complete(userID, habitID uint) (*models.Habit, error) {
	habit, err := h.get(userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.Status = models.StatusCompleted
	if err := h.db.Save(habit).Error; err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err == nil {
		day := utils.StartOfDay(h.now(), h.app.UserLocation(&user))
		if err := h.db.Model(&models.HabitLog{}).
			Where("habit_id = ? AND day = ?", habit.ID, day).
			Update("status", models.StatusCompleted).Error; err != nil {
			log.Printf("habit %d: updating log: %v", habit.ID, err)
		}
	}
	return habit, nil
}

// Delete removes the habit and its logs. Already-scheduled reminder jobs are
// not retracted; their handlers notice the missing habit and no-op.
func (h *HabitService) Delete(userID, habitID uint) error {
	habit, err := h.get(userID, habitID)
	if err != nil {
		return err
	}
	if err := h.db.Where("habit_id = ?", habit.ID).Delete(&models.HabitLog{}).Error; err != nil {
		return err
	}
	return h.db.Delete(habit).Error
}

func (h *HabitService) List(userID uint) ([]models.Habit, error) {
	var habits []models.Habit
	err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&habits).Error
	return habits, err
}

func (h *HabitService) Logs(userID, habitID uint) ([]models.HabitLog, error) {
	if _, err := h.get(userID, habitID); err != nil {
		return nil, err
	}
	var logs []models.HabitLog
	err := h.db.Where("habit_id = ?", habitID).Order("day DESC").Find(&logs).Error
	return logs, err
}

func (h *HabitService) get(userID, habitID uint) (*models.Habit, error) {
	var habit models.Habit
	err := h.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &habit, nil
}
