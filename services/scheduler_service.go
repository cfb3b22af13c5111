package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobHandler executes one due job. The payload is whatever was passed at
// scheduling time, JSON-encoded in job.Payload; each job name unmarshals its
// own payload type.
type JobHandler func(job *models.ScheduledJob) error

// Scheduler is a database-backed delayed/recurring job queue. Jobs persist in
// the scheduled_jobs table and survive restarts; a polling loop picks up due
// rows and runs their handlers. Execution is at-least-once; a single
// scheduler instance per database is assumed.
type Scheduler struct {
	db       *gorm.DB
	interval time.Duration
	parser   cron.Parser

	mu       sync.RWMutex
	handlers map[string]JobHandler

	now  func() time.Time
	stop chan struct{}
	done chan struct{}
}

func NewScheduler(db *gorm.DB, pollInterval time.Duration) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &Scheduler{
		db:       db,
		interval: pollInterval,
		parser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		handlers: make(map[string]JobHandler),
		now:      time.Now,
	}
}

// Define registers the handler for a job name. Call before Start; defining
// the same name again replaces the handler.
func (s *Scheduler) Define(name string, h JobHandler) {
	s.mu.Lock()
	s.handlers[name] = h
	s.mu.Unlock()
}

// Schedule enqueues a one-shot job due at the given instant. The handler is
// guaranteed to fire at-or-after the instant, never before.
func (s *Scheduler) Schedule(at time.Time, name string, payload any) error {
	data, err := encodePayload(payload)
	if err != nil {
		return err
	}
	job := models.ScheduledJob{
		Name:      name,
		Key:       uuid.NewString(),
		Payload:   data,
		NextRunAt: at,
	}
	return s.db.Create(&job).Error
}

// ScheduleIn enqueues a one-shot job due after the given delay.
func (s *Scheduler) ScheduleIn(d time.Duration, name string, payload any) error {
	return s.Schedule(s.now().Add(d), name, payload)
}

// Every enqueues (or updates) the interval-recurring job with this name.
// After each run the next occurrence is the fixed interval past completion
// time. An existing row keeps its NextRunAt so re-registering on restart
// does not postpone the next run.
func (s *Scheduler) Every(interval time.Duration, name string, payload any) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: interval must be positive for %q", name)
	}
	data, err := encodePayload(payload)
	if err != nil {
		return err
	}
	return s.upsertRecurring(name, data, func(job *models.ScheduledJob, fresh bool) {
		job.RepeatInterval = interval
		job.CronExpr = ""
		if fresh {
			job.NextRunAt = s.now().Add(interval)
		}
	})
}

// EveryCron enqueues (or updates) the cron-recurring job with this name,
// using a standard 5-field cron expression.
func (s *Scheduler) EveryCron(expr string, name string, payload any) error {
	sched, err := s.parser.Parse(expr)
	if err != nil {
		return fmt.Errorf("scheduler: bad cron expression %q for %q: %w", expr, name, err)
	}
	data, err := encodePayload(payload)
	if err != nil {
		return err
	}
	return s.upsertRecurring(name, data, func(job *models.ScheduledJob, fresh bool) {
		job.RepeatInterval = 0
		job.CronExpr = expr
		if fresh {
			job.NextRunAt = sched.Next(s.now())
		}
	})
}

func (s *Scheduler) upsertRecurring(name string, data datatypes.JSON, set func(job *models.ScheduledJob, fresh bool)) error {
	var job models.ScheduledJob
	err := s.db.Where("key = ?", name).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		job = models.ScheduledJob{Name: name, Key: name, Payload: data}
		set(&job, true)
		return s.db.Create(&job).Error
	}
	if err != nil {
		return err
	}
	job.Payload = data
	set(&job, false)
	return s.db.Save(&job).Error
}

// Start launches the polling loop. Stop shuts it down and waits for the
// in-flight tick to finish.
func (s *Scheduler) Start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runDue()
			case <-s.stop:
				return
			}
		}
	}()
	log.Printf("scheduler started, polling every %s", s.interval)
}

func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	log.Printf("scheduler stopped")
}

// runDue executes every job whose next-run instant has arrived. Jobs run
// sequentially; one job's failure or panic never reaches the others.
func (s *Scheduler) runDue() {
	var due []models.ScheduledJob
	if err := s.db.Where("next_run_at <= ?", s.now()).Order("next_run_at").Find(&due).Error; err != nil {
		log.Printf("scheduler: loading due jobs: %v", err)
		return
	}
	for i := range due {
		s.runJob(&due[i])
	}
}

func (s *Scheduler) runJob(job *models.ScheduledJob) {
	s.mu.RLock()
	h := s.handlers[job.Name]
	s.mu.RUnlock()

	if h == nil {
		log.Printf("scheduler: no handler defined for job %q", job.Name)
	} else {
		s.invoke(h, job)
	}

	if !job.Recurring() {
		if err := s.db.Delete(job).Error; err != nil {
			log.Printf("scheduler: removing one-shot job %q: %v", job.Name, err)
		}
		return
	}

	if job.CronExpr != "" {
		sched, err := s.parser.Parse(job.CronExpr)
		if err != nil {
			log.Printf("scheduler: job %q carries bad cron %q: %v", job.Name, job.CronExpr, err)
			return
		}
		job.NextRunAt = sched.Next(s.now())
	} else {
		job.NextRunAt = s.now().Add(job.RepeatInterval)
	}
	if err := s.db.Save(job).Error; err != nil {
		log.Printf("scheduler: rescheduling job %q: %v", job.Name, err)
	}
}

func (s *Scheduler) invoke(h JobHandler, job *models.ScheduledJob) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler: job %q panicked: %v", job.Name, r)
		}
	}()
	if err := h(job); err != nil {
		log.Printf("scheduler: job %q failed: %v", job.Name, err)
	}
}

func encodePayload(payload any) (datatypes.JSON, error) {
	if payload == nil {
		return nil, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("scheduler: encoding payload: %w", err)
	}
	return datatypes.JSON(b), nil
}
