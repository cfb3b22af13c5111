package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/config"
	"github.com/mohitlamba65/Habit-Tracker/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Hours returned when a user has no usable productivity signal: one morning,
// one afternoon, one evening slot. A prediction is never empty.
var defaultPeakHours = []int{8, 14, 20}

// PredictionService recomputes per-user peak-productivity hours from the raw
// productivity logs, preferring the external predictor and falling back to a
// local hour-of-day histogram.
type PredictionService struct {
	db    *gorm.DB
	app   *config.App
	sched *Scheduler
	ml    *MLClient
}

func NewPredictionService(db *gorm.DB, app *config.App, sched *Scheduler, ml *MLClient) *PredictionService {
	return &PredictionService{db: db, app: app, sched: sched, ml: ml}
}

// RegisterJobs installs the recurring regeneration handler.
func (p *PredictionService) RegisterJobs() {
	p.sched.Define(JobRegeneratePrediction, func(job *models.ScheduledJob) error {
		return p.RegenerateAll()
	})
}

// RegenerateAll recomputes predictions for every user that has productivity
// logs. A failure for one user is logged and the rest proceed.
func (p *PredictionService) RegenerateAll() error {
	var userIDs []uint
	err := p.db.Model(&models.ProductivityLog{}).Distinct("user_id").Pluck("user_id", &userIDs).Error
	if err != nil {
		return fmt.Errorf("listing users with logs: %w", err)
	}

	for _, uid := range userIDs {
		if _, err := p.RegenerateFor(uid); err != nil {
			log.Printf("prediction: user %d: %v", uid, err)
		}
	}
	return nil
}

// RegenerateFor recomputes and persists the prediction for one user. Also
// serves the on-demand endpoint.
func (p *PredictionService) RegenerateFor(userID uint) (*models.Prediction, error) {
	var logs []models.ProductivityLog
	if err := p.db.Where("user_id = ?", userID).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("loading logs: %w", err)
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	loc := p.app.UserLocation(&user)

	var hours []int
	if p.ml != nil {
		predicted, err := p.ml.Predict(userID, logs, loc)
		if err != nil {
			log.Printf("prediction: predictor unavailable for user %d, using fallback: %v", userID, err)
		} else {
			hours = predicted
		}
	}
	if len(hours) == 0 {
		hours = AnalyzePeakHours(logs, loc)
	}

	return p.persist(userID, hours)
}

// AnalyzePeakHours is the deterministic fallback: bucket log timestamps by
// hour-of-day and return every hour tied for the maximum count. Multiple peak
// windows are meaningful, so ties are all kept. No signal yields the fixed
// default set.
func AnalyzePeakHours(logs []models.ProductivityLog, loc *time.Location) []int {
	var buckets [24]int
	for i := range logs {
		buckets[logs[i].CreatedAt.In(loc).Hour()]++
	}

	max := 0
	for _, count := range buckets {
		if count > max {
			max = count
		}
	}
	if max == 0 {
		return append([]int(nil), defaultPeakHours...)
	}

	var peaks []int
	for hour, count := range buckets {
		if count == max {
			peaks = append(peaks, hour)
		}
	}
	return peaks
}

func (p *PredictionService) persist(userID uint, hours []int) (*models.Prediction, error) {
	formatted := make([]string, 0, len(hours))
	for _, h := range hours {
		formatted = append(formatted, fmt.Sprintf("%d:00", h))
	}
	raw, err := json.Marshal(formatted)
	if err != nil {
		return nil, err
	}

	if p.app.PredictionAppend {
		pred := &models.Prediction{UserID: userID, PeakHours: datatypes.JSON(raw)}
		if err := p.db.Create(pred).Error; err != nil {
			return nil, fmt.Errorf("saving prediction: %w", err)
		}
		return pred, nil
	}

	// Upsert-latest: one row per user, regeneration replaces it.
	var pred models.Prediction
	err = p.db.Where("user_id = ?", userID).First(&pred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pred = models.Prediction{UserID: userID, PeakHours: datatypes.JSON(raw)}
		if err := p.db.Create(&pred).Error; err != nil {
			return nil, fmt.Errorf("saving prediction: %w", err)
		}
		return &pred, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading prediction: %w", err)
	}
	pred.PeakHours = datatypes.JSON(raw)
	if err := p.db.Save(&pred).Error; err != nil {
		return nil, fmt.Errorf("updating prediction: %w", err)
	}
	return &pred, nil
}
