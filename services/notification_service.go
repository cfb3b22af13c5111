package services

import (
	"log"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"

	"gorm.io/gorm"
)

// Notifier delivers a message to a user over every channel they have enabled:
// email, SMS, an in-app notification row, and the realtime stream. Channels
// are independent; one channel failing never blocks another and no failure
// ever reaches the caller.
type Notifier struct {
	db    *gorm.DB
	email EmailSender
	sms   MessageSender
	hub   *RealtimeHub
}

func NewNotifier(db *gorm.DB, email EmailSender, sms MessageSender, hub *RealtimeHub) *Notifier {
	return &Notifier{db: db, email: email, sms: sms, hub: hub}
}

func (n *Notifier) Notify(user *models.User, typ, subject, message string) {
	if user == nil {
		return
	}

	if n.email != nil && user.EmailEnabled && user.Email != "" {
		if err := n.email.SendEmail(user.Email, subject, message); err != nil {
			log.Printf("notify: email to user %d failed: %v", user.ID, err)
		}
	}
	if n.sms != nil && user.SMSEnabled && user.Phone != "" {
		if err := n.sms.SendMessage(user.Phone, message); err != nil {
			log.Printf("notify: sms to user %d failed: %v", user.ID, err)
		}
	}

	note := &models.Notification{
		UserID:    user.ID,
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := n.db.Create(note).Error; err != nil {
		log.Printf("notify: persisting notification for user %d failed: %v", user.ID, err)
	}

	if n.hub != nil {
		n.hub.Broadcast(user.ID, map[string]any{
			"kind":         "notification.created",
			"notification": note,
		})
	}
}
