package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// App carries the runtime knobs read from the environment. The reference
// timezone is the default for users who have not set their own.
type App struct {
	DefaultTimezone  *time.Location
	PollInterval     time.Duration
	SweepInterval    time.Duration
	PredictionCron   string
	PredictionAppend bool
	PredictorURL     string
	SESSourceEmail   string
	AWSRegion        string
}

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate runs schema migration on the given handle. Split out of InitDB so
// tests can migrate an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitLog{},
		&models.ScheduledJob{},
		&models.ProductivityLog{},
		&models.Prediction{},
		&models.Notification{},
	)
}

// LoadApp reads the application config from the environment. Call after
// godotenv has run (InitDB does that).
func LoadApp() *App {
	tzName := os.Getenv("DEFAULT_TIMEZONE")
	if tzName == "" {
		tzName = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("invalid DEFAULT_TIMEZONE %q: %v", tzName, err)
	}

	app := &App{
		DefaultTimezone:  loc,
		PollInterval:     envDuration("SCHEDULER_POLL_INTERVAL", 30*time.Second),
		SweepInterval:    envDuration("MISSED_SWEEP_INTERVAL", 15*time.Minute),
		PredictionCron:   envOr("PREDICTION_CRON", "0 2 * * 0"), // Sunday 02:00
		PredictionAppend: envBool("PREDICTION_APPEND", false),
		PredictorURL:     envOr("ML_SERVICE_URL", "http://127.0.0.1:5001/predict"),
		SESSourceEmail:   os.Getenv("SES_EMAIL"),
		AWSRegion:        envOr("AWS_REGION", "ap-south-1"),
	}
	return app
}

// UserLocation resolves a user's timezone, falling back to the app default.
func (a *App) UserLocation(u *models.User) *time.Location {
	if u != nil && u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
		log.Printf("user %d has invalid timezone %q, using default", u.ID, u.Timezone)
	}
	return a.DefaultTimezone
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
