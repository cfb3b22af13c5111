package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScheduledJob is a persisted queue entry for the scheduler. One-shot jobs
// carry a unique Key and are deleted after execution; recurring jobs are
// keyed by Name alone and re-armed after each run via RepeatInterval or
// CronExpr (exactly one of the two is set for a recurring job).
type ScheduledJob struct {
	ID             uint           `gorm:"primaryKey"`
	Name           string         `gorm:"size:100;index;not null"`
	Key            string         `gorm:"size:64;uniqueIndex"`
	Payload        datatypes.JSON `gorm:"type:json"`
	NextRunAt      time.Time      `gorm:"index;not null"`
	RepeatInterval time.Duration
	CronExpr       string `gorm:"size:100"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (j *ScheduledJob) Recurring() bool {
	return j.RepeatInterval > 0 || j.CronExpr != ""
}
