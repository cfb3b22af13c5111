package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"

	"gorm.io/gorm"
)

// Job names understood by the scheduler. Each carries its own payload type.
const (
	JobHabitReminder        = "habitReminder"
	JobHabitFollowUp        = "habitFollowUpReminder"
	JobHabitMissedCheck     = "habitMissedCheck"
	JobRegeneratePrediction = "regeneratePrediction"
)

// Delay between the first reminder and the follow-up nudge.
const followUpDelay = 25 * time.Minute

// ReminderPayload travels with both the reminder and follow-up jobs: enough
// to notify without re-querying, though handlers still re-read habit state
// before acting since scheduled jobs cannot be cancelled.
type ReminderPayload struct {
	HabitID uint   `json:"habitId"`
	UserID  uint   `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"userEmail"`
	Phone   string `json:"userPhone"`
}

// ReminderService drives the per-habit reminder sequence:
// created → reminded → followed-up → completed | missed.
type ReminderService struct {
	db       *gorm.DB
	sched    *Scheduler
	notifier *Notifier
}

func NewReminderService(db *gorm.DB, sched *Scheduler, notifier *Notifier) *ReminderService {
	return &ReminderService{db: db, sched: sched, notifier: notifier}
}

// RegisterJobs installs the reminder and follow-up handlers. Call before the
// scheduler starts.
func (r *ReminderService) RegisterJobs() {
	r.sched.Define(JobHabitReminder, r.handleReminder)
	r.sched.Define(JobHabitFollowUp, r.handleFollowUp)
}

// ScheduleReminder enqueues the one-shot reminder an hour before the habit's
// due instant.
func (r *ReminderService) ScheduleReminder(habit *models.Habit, user *models.User) error {
	if habit.ActualDue == nil {
		return fmt.Errorf("habit %d has no due instant", habit.ID)
	}
	payload := ReminderPayload{
		HabitID: habit.ID,
		UserID:  user.ID,
		Name:    habit.Title,
		Email:   user.Email,
		Phone:   user.Phone,
	}
	return r.sched.Schedule(habit.ActualDue.Add(-time.Hour), JobHabitReminder, payload)
}

func (r *ReminderService) handleReminder(job *models.ScheduledJob) error {
	var p ReminderPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("reminder payload: %w", err)
	}

	// The habit may have been completed or deleted since scheduling.
	habit, user, err := r.load(p)
	if err != nil {
		return err
	}
	if habit == nil || habit.Status != models.StatusPending {
		return nil
	}

	message := fmt.Sprintf("Reminder: your habit %q is due soon. Stay on track!", p.Name)
	r.notifier.Notify(user, "reminder", "Habit Reminder", message)

	return r.sched.ScheduleIn(followUpDelay, JobHabitFollowUp, p)
}

func (r *ReminderService) handleFollowUp(job *models.ScheduledJob) error {
	var p ReminderPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("follow-up payload: %w", err)
	}

	habit, user, err := r.load(p)
	if err != nil {
		return err
	}
	// Completed (or deleted) in the meantime: the sequence terminates silently.
	if habit == nil || habit.Status != models.StatusPending {
		return nil
	}

	message := fmt.Sprintf("Follow-up: you haven't marked %q as complete yet. Let's go!", p.Name)
	r.notifier.Notify(user, "follow_up", "Habit Still Pending", message)
	return nil
}

func (r *ReminderService) load(p ReminderPayload) (*models.Habit, *models.User, error) {
	var habit models.Habit
	if err := r.db.First(&habit, p.HabitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var user models.User
	if err := r.db.First(&user, p.UserID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		// Fall back to the contact info captured at scheduling time.
		user = models.User{Email: p.Email, Phone: p.Phone, EmailEnabled: true, SMSEnabled: true}
		user.ID = p.UserID
	}
	return &habit, &user, nil
}
