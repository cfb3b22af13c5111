package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Prediction holds the peak-productivity hours computed for a user, stored as
// "H:00" strings (e.g. ["9:00","14:00"]).
type Prediction struct {
	gorm.Model
	UserID    uint           `gorm:"index;not null"`
	PeakHours datatypes.JSON `gorm:"type:json"`
}
