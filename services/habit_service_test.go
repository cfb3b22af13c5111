package services

import (
	"testing"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"
	"github.com/mohitlamba65/Habit-Tracker/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHabitService(t *testing.T) (*HabitService, *fakeClock) {
	t.Helper()
	db := newTestDB(t)
	clock := &fakeClock{t: time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)}
	sched := NewScheduler(db, 30*time.Second)
	sched.now = clock.Now
	notifier := NewNotifier(db, &emailRecorder{}, &smsRecorder{}, nil)
	reminders := NewReminderService(db, sched, notifier)
	reminders.RegisterJobs()
	svc := NewHabitService(db, newTestApp(), reminders)
	svc.now = clock.Now
	return svc, clock
}

func TestCreateHabitComputesDueAndSchedulesReminder(t *testing.T) {
	svc, _ := newTestHabitService(t)
	user := seedUser(t, svc.db, "h@example.com", "+10000000001")

	habit, err := svc.Create(user, "morning run", "08:30AM", "")
	require.NoError(t, err)
	require.NotNil(t, habit.ActualDue)

	want := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, want.Unix(), habit.ActualDue.Unix())
	assert.Equal(t, models.StatusPending, habit.Status)
	assert.Equal(t, models.PriorityMedium, habit.Priority)

	// Today's log row exists.
	var habitLog models.HabitLog
	require.NoError(t, svc.db.Where("habit_id = ?", habit.ID).First(&habitLog).Error)
	assert.Equal(t, models.StatusPending, habitLog.Status)

	// Reminder armed an hour before the due instant.
	var job models.ScheduledJob
	require.NoError(t, svc.db.Where("name = ?", JobHabitReminder).First(&job).Error)
	assert.Equal(t, want.Add(-time.Hour).Unix(), job.NextRunAt.Unix())
}

func TestCreateHabitRejectsMalformedTime(t *testing.T) {
	svc, _ := newTestHabitService(t)
	user := seedUser(t, svc.db, "h@example.com", "")

	_, err := svc.Create(user, "morning run", "8:30", "")
	assert.ErrorIs(t, err, utils.ErrInvalidTime)

	_, err = svc.Create(user, "morning run", "abPM", "")
	assert.ErrorIs(t, err, utils.ErrInvalidTime)
}

func TestCreateHabitPastTimeStaysToday(t *testing.T) {
	svc, clock := newTestHabitService(t)
	clock.t = time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	user := seedUser(t, svc.db, "h@example.com", "")

	// 8:30AM has already passed; the due instant stays on today, in the past.
	habit, err := svc.Create(user, "morning run", "08:30AM", "")
	require.NoError(t, err)
	assert.True(t, habit.ActualDue.Before(clock.Now()))
	assert.Equal(t, 2, habit.ActualDue.Day())
}

func TestCompleteFlipsHabitAndTodayLog(t *testing.T) {
	svc, _ := newTestHabitService(t)
	user := seedUser(t, svc.db, "h@example.com", "")

	habit, err := svc.Create(user, "meditate", "11:00AM", models.PriorityHigh)
	require.NoError(t, err)

	completed, err := svc.Complete(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)

	var habitLog models.HabitLog
	require.NoError(t, svc.db.Where("habit_id = ?", habit.ID).First(&habitLog).Error)
	assert.Equal(t, models.StatusCompleted, habitLog.Status)
}

func TestCompleteRejectsForeignHabit(t *testing.T) {
	svc, _ := newTestHabitService(t)
	owner := seedUser(t, svc.db, "owner@example.com", "")
	other := seedUser(t, svc.db, "other@example.com", "")

	habit, err := svc.Create(owner, "meditate", "11:00AM", "")
	require.NoError(t, err)

	_, err = svc.Complete(other.ID, habit.ID)
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestCreateHabitRejectsUnknownPriority(t *testing.T) {
	svc, _ := newTestHabitService(t)
	user := seedUser(t, svc.db, "h@example.com", "")

	_, err := svc.Create(user, "meditate", "11:00AM", "urgent")
	assert.Error(t, err)
}

func TestDeleteRemovesHabitAndLogs(t *testing.T) {
	svc, _ := newTestHabitService(t)
	user := seedUser(t, svc.db, "h@example.com", "")

	habit, err := svc.Create(user, "meditate", "11:00AM", "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(user.ID, habit.ID))

	var count int64
	require.NoError(t, svc.db.Model(&models.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&count).Error)
	assert.Zero(t, count)

	// The reminder job is NOT retracted; its handler will find the habit
	// gone and no-op.
	require.NoError(t, svc.db.Model(&models.ScheduledJob{}).Where("name = ?", JobHabitReminder).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
