package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mohitlamba65/Habit-Tracker/models"
)

// MLClient talks to the external productivity predictor. Any failure here is
// expected to be swallowed by the caller in favor of the local fallback.
type MLClient struct {
	url    string
	client *http.Client
}

func NewMLClient(url string) *MLClient {
	return &MLClient{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type logFeature struct {
	StartHour int `json:"start_hour"`
	Mood      int `json:"mood"`
	Duration  int `json:"duration"`
}

type predictRequest struct {
	UserID uint         `json:"user_id"`
	Logs   []logFeature `json:"logs"`
}

type predictResponse struct {
	PredictedHours []int `json:"predicted_hours"`
}

// Predict sends a compact feature projection of the user's logs and returns
// the predicted peak hours. An empty result is an error so the caller always
// falls back rather than persisting nothing.
func (c *MLClient) Predict(userID uint, logs []models.ProductivityLog, loc *time.Location) ([]int, error) {
	if len(logs) == 0 {
		return nil, fmt.Errorf("no logs to predict from")
	}

	features := make([]logFeature, 0, len(logs))
	for i := range logs {
		duration := logs[i].Duration
		if duration <= 0 {
			duration = 30
		}
		features = append(features, logFeature{
			StartHour: logs[i].CreatedAt.In(loc).Hour(),
			Mood:      logs[i].MoodCode(),
			Duration:  duration,
		})
	}

	body, err := json.Marshal(predictRequest{UserID: userID, Logs: features})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal predictor payload: %w", err)
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to call predictor: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read predictor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predictor error %d: %s", resp.StatusCode, string(raw))
	}

	var pr predictResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse predictor JSON: %w", err)
	}
	if len(pr.PredictedHours) == 0 {
		return nil, fmt.Errorf("predictor returned no hours")
	}
	return pr.PredictedHours, nil
}
