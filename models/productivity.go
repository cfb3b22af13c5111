package models

import (
	"gorm.io/gorm"
)

// Moods accepted on a productivity log entry.
const (
	MoodHappy    = "happy"
	MoodNeutral  = "neutral"
	MoodSad      = "sad"
	MoodStressed = "stressed"
)

// ProductivityLog is a raw activity signal: what the user was doing, how they
// felt, and for how long. CreatedAt doubles as the activity timestamp the
// prediction analysis buckets by.
type ProductivityLog struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	Mood     string `gorm:"size:20;default:neutral"`
	Activity string
	Duration int // minutes
}

// MoodCode maps the mood enum onto the compact numeric code the external
// predictor expects.
func (p *ProductivityLog) MoodCode() int {
	switch p.Mood {
	case MoodHappy:
		return 3
	case MoodNeutral:
		return 2
	case MoodSad:
		return 1
	case MoodStressed:
		return 0
	default:
		return 2
	}
}
