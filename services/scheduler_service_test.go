package services

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClock drives the scheduler without real sleeps.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestScheduler(t *testing.T, db *gorm.DB) (*Scheduler, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	s := NewScheduler(db, 30*time.Second)
	s.now = clock.Now
	return s, clock
}

func TestOneShotNeverFiresEarly(t *testing.T) {
	db := newTestDB(t)
	s, clock := newTestScheduler(t, db)

	var fired atomic.Int32
	s.Define("test.oneShot", func(job *models.ScheduledJob) error {
		fired.Add(1)
		return nil
	})

	require.NoError(t, s.ScheduleIn(time.Hour, "test.oneShot", nil))

	// Poll repeatedly before the due instant: the handler must stay silent.
	for i := 0; i < 5; i++ {
		s.runDue()
		clock.Advance(10 * time.Minute)
	}
	assert.Equal(t, int32(0), fired.Load())

	clock.Advance(10 * time.Minute) // now exactly at enqueue + 1h
	s.runDue()
	assert.Equal(t, int32(1), fired.Load())

	// One-shot rows are removed after execution.
	var count int64
	require.NoError(t, db.Model(&models.ScheduledJob{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOneShotPayloadRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s, clock := newTestScheduler(t, db)

	type payload struct {
		HabitID uint   `json:"habitId"`
		Name    string `json:"name"`
	}

	var got payload
	s.Define("test.payload", func(job *models.ScheduledJob) error {
		return json.Unmarshal(job.Payload, &got)
	})

	require.NoError(t, s.Schedule(clock.Now(), "test.payload", payload{HabitID: 42, Name: "read"}))
	s.runDue()

	assert.Equal(t, uint(42), got.HabitID)
	assert.Equal(t, "read", got.Name)
}

func TestRecurringIntervalReschedules(t *testing.T) {
	db := newTestDB(t)
	s, clock := newTestScheduler(t, db)

	var fired atomic.Int32
	s.Define("test.recurring", func(job *models.ScheduledJob) error {
		fired.Add(1)
		return nil
	})
	require.NoError(t, s.Every(15*time.Minute, "test.recurring", nil))

	for i := 0; i < 3; i++ {
		clock.Advance(15 * time.Minute)
		s.runDue()
	}
	assert.Equal(t, int32(3), fired.Load())

	// The row persists with the next occurrence armed.
	var job models.ScheduledJob
	require.NoError(t, db.Where("key = ?", "test.recurring").First(&job).Error)
	assert.Equal(t, clock.Now().Add(15*time.Minute).Unix(), job.NextRunAt.Unix())
}

func TestRecurringSurvivesRestart(t *testing.T) {
	db := newTestDB(t)
	s, clock := newTestScheduler(t, db)

	s.Define("test.durable", func(job *models.ScheduledJob) error { return nil })
	require.NoError(t, s.Every(15*time.Minute, "test.durable", nil))

	var before models.ScheduledJob
	require.NoError(t, db.Where("key = ?", "test.durable").First(&before).Error)

	// A fresh scheduler over the same database re-registers the job without
	// postponing the already-armed occurrence.
	s2 := NewScheduler(db, 30*time.Second)
	s2.now = clock.Now
	var fired atomic.Int32
	s2.Define("test.durable", func(job *models.ScheduledJob) error {
		fired.Add(1)
		return nil
	})
	require.NoError(t, s2.Every(15*time.Minute, "test.durable", nil))

	var after models.ScheduledJob
	require.NoError(t, db.Where("key = ?", "test.durable").First(&after).Error)
	assert.Equal(t, before.NextRunAt.Unix(), after.NextRunAt.Unix())

	clock.Advance(16 * time.Minute)
	s2.runDue()
	assert.Equal(t, int32(1), fired.Load())
}

func TestFailingJobDoesNotStopOthers(t *testing.T) {
	db := newTestDB(t)
	s, clock := newTestScheduler(t, db)

	var healthyRan atomic.Bool
	s.Define("test.broken", func(job *models.ScheduledJob) error {
		return errors.New("boom")
	})
	s.Define("test.panics", func(job *models.ScheduledJob) error {
		panic("much worse")
	})
	s.Define("test.healthy", func(job *models.ScheduledJob) error {
		healthyRan.Store(true)
		return nil
	})

	require.NoError(t, s.Schedule(clock.Now().Add(-2*time.Minute), "test.broken", nil))
	require.NoError(t, s.Schedule(clock.Now().Add(-time.Minute), "test.panics", nil))
	require.NoError(t, s.Schedule(clock.Now(), "test.healthy", nil))

	s.runDue()
	assert.True(t, healthyRan.Load())

	// Failed one-shots are consumed, not retried.
	var count int64
	require.NoError(t, db.Model(&models.ScheduledJob{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEveryCronArmsNextOccurrence(t *testing.T) {
	db := newTestDB(t)
	s, clock := newTestScheduler(t, db)

	s.Define("test.weekly", func(job *models.ScheduledJob) error { return nil })
	require.NoError(t, s.EveryCron("0 2 * * 0", "test.weekly", nil))

	var job models.ScheduledJob
	require.NoError(t, db.Where("key = ?", "test.weekly").First(&job).Error)
	next := job.NextRunAt.UTC()
	assert.Equal(t, time.Sunday, next.Weekday())
	assert.Equal(t, 2, next.Hour())
	assert.True(t, next.After(clock.Now()))

	// Fire it and check the re-arm lands on the following Sunday.
	clock.t = next.Add(time.Second)
	s.runDue()
	require.NoError(t, db.Where("key = ?", "test.weekly").First(&job).Error)
	assert.Equal(t, time.Sunday, job.NextRunAt.UTC().Weekday())
	assert.True(t, job.NextRunAt.After(next))
}

func TestEveryCronRejectsBadExpression(t *testing.T) {
	db := newTestDB(t)
	s, _ := newTestScheduler(t, db)
	assert.Error(t, s.EveryCron("not a cron", "test.bad", nil))
}

func TestUndefinedJobIsConsumed(t *testing.T) {
	db := newTestDB(t)
	s, clock := newTestScheduler(t, db)

	require.NoError(t, s.Schedule(clock.Now(), "test.orphan", nil))
	s.runDue() // must not panic

	var count int64
	require.NoError(t, db.Model(&models.ScheduledJob{}).Count(&count).Error)
	assert.Zero(t, count)
}
