package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	FullName      string
	Phone         string
	Timezone      string `gorm:"size:64"` // IANA zone; empty means the app default
	EmailEnabled  bool   `gorm:"default:true"`
	SMSEnabled    bool   `gorm:"default:true"`
	ResetToken    string
	ResetTokenExp time.Time
}
