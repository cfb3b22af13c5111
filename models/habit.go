package models

import (
	"time"

	"gorm.io/gorm"
)

// Habit statuses. The sweeper is the only writer of StatusMissed; the owner's
// completion action is the only writer of StatusCompleted.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusMissed    = "missed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Habit struct {
	gorm.Model
	UserID         uint       `gorm:"index;not null"`
	Title          string     `gorm:"not null"`
	CompletionTime string     `gorm:"not null"` // user-entered 12-hour string, e.g. "08:30AM"
	ActualDue      *time.Time `gorm:"index"`
	Status         string     `gorm:"size:20;index;default:pending"`
	Priority       string     `gorm:"size:10;default:medium"`
}

// HabitLog is the per-day completion record. Day is start-of-day in the
// owner's timezone; at most one row exists per (habit, day).
type HabitLog struct {
	gorm.Model
	HabitID uint      `gorm:"not null;uniqueIndex:idx_habit_logs_habit_day,priority:1"`
	Day     time.Time `gorm:"not null;uniqueIndex:idx_habit_logs_habit_day,priority:2"`
	Status  string    `gorm:"size:20;default:pending"`
}
