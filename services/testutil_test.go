package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	appconfig "github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, appconfig.Migrate(db))
	return db
}

func newTestApp() *appconfig.App {
	return &appconfig.App{
		DefaultTimezone: time.UTC,
		PollInterval:    30 * time.Second,
		SweepInterval:   15 * time.Minute,
		PredictionCron:  "0 2 * * 0",
	}
}

type sentEmail struct {
	To, Subject, Body string
}

type emailRecorder struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (r *emailRecorder) SendEmail(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (r *emailRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type sentSMS struct {
	Phone, Body string
}

type smsRecorder struct {
	mu   sync.Mutex
	sent []sentSMS
	err  error
}

func (r *smsRecorder) SendMessage(phone, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentSMS{Phone: phone, Body: body})
	return nil
}

func (r *smsRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func seedUser(t *testing.T, db *gorm.DB, email, phone string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		Password:     "x",
		Phone:        phone,
		EmailEnabled: true,
		SMSEnabled:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedHabit(t *testing.T, db *gorm.DB, userID uint, title, status string, due time.Time) *models.Habit {
	t.Helper()
	habit := &models.Habit{
		UserID:         userID,
		Title:          title,
		CompletionTime: "08:30AM",
		ActualDue:      &due,
		Status:         status,
		Priority:       models.PriorityMedium,
	}
	require.NoError(t, db.Create(habit).Error)
	return habit
}
