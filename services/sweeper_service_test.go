package services

import (
	"testing"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSweeper(t *testing.T) (*SweeperService, *emailRecorder, *smsRecorder, *fakeClock) {
	t.Helper()
	db := newTestDB(t)
	email := &emailRecorder{}
	sms := &smsRecorder{}
	notifier := NewNotifier(db, email, sms, nil)
	sched := NewScheduler(db, 30*time.Second)
	sweeper := NewSweeperService(db, newTestApp(), sched, notifier)
	clock := &fakeClock{t: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	sweeper.now = clock.Now
	return sweeper, email, sms, clock
}

func TestSweepMarksExactlyOverduePending(t *testing.T) {
	sweeper, email, sms, clock := newTestSweeper(t)
	db := sweeper.db
	user := seedUser(t, db, "a@example.com", "+10000000001")

	overdue := seedHabit(t, db, user.ID, "meditate", models.StatusPending, clock.Now().Add(-time.Hour))
	future := seedHabit(t, db, user.ID, "journal", models.StatusPending, clock.Now().Add(time.Hour))
	done := seedHabit(t, db, user.ID, "run", models.StatusCompleted, clock.Now().Add(-2*time.Hour))

	require.NoError(t, sweeper.Sweep())

	var got models.Habit
	require.NoError(t, db.First(&got, overdue.ID).Error)
	assert.Equal(t, models.StatusMissed, got.Status)

	got = models.Habit{}
	require.NoError(t, db.First(&got, future.ID).Error)
	assert.Equal(t, models.StatusPending, got.Status)

	got = models.Habit{}
	require.NoError(t, db.First(&got, done.ID).Error)
	assert.Equal(t, models.StatusCompleted, got.Status)

	// Exactly one habit flipped, so one notification per channel.
	assert.Equal(t, 1, email.count())
	assert.Equal(t, 1, sms.count())
}

func TestSweepIsIdempotent(t *testing.T) {
	sweeper, email, sms, clock := newTestSweeper(t)
	db := sweeper.db
	user := seedUser(t, db, "b@example.com", "+10000000002")
	seedHabit(t, db, user.ID, "stretch", models.StatusPending, clock.Now().Add(-time.Minute))

	require.NoError(t, sweeper.Sweep())
	require.NoError(t, sweeper.Sweep())

	// The second pass finds nothing: no new notifications.
	assert.Equal(t, 1, email.count())
	assert.Equal(t, 1, sms.count())
}

func TestSweepUpdatesHabitLog(t *testing.T) {
	sweeper, _, _, clock := newTestSweeper(t)
	db := sweeper.db
	user := seedUser(t, db, "c@example.com", "")
	due := clock.Now().Add(-time.Hour)
	habit := seedHabit(t, db, user.ID, "write", models.StatusPending, due)

	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.HabitLog{HabitID: habit.ID, Day: day, Status: models.StatusPending}).Error)

	require.NoError(t, sweeper.Sweep())

	var habitLog models.HabitLog
	require.NoError(t, db.Where("habit_id = ?", habit.ID).First(&habitLog).Error)
	assert.Equal(t, models.StatusMissed, habitLog.Status)
}

func TestSweepChannelIndependence(t *testing.T) {
	sweeper, email, sms, clock := newTestSweeper(t)
	email.err = assert.AnError
	db := sweeper.db
	user := seedUser(t, db, "d@example.com", "+10000000004")
	seedHabit(t, db, user.ID, "read", models.StatusPending, clock.Now().Add(-time.Hour))

	require.NoError(t, sweeper.Sweep())

	// Email channel is down; SMS still goes out and the habit still flips.
	assert.Equal(t, 0, email.count())
	assert.Equal(t, 1, sms.count())

	var habit models.Habit
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&habit).Error)
	assert.Equal(t, models.StatusMissed, habit.Status)
}
