package services

import "time"

// Stage names used in schedules, trigger tasks, and log output.
const (
	StageIngestion      = "ingestion"
	StageClassification = "classification"
	StageResponse       = "response"
)

// RunSummary captures the outcome of one stage tick.
type RunSummary struct {
	Stage     string        `json:"stage"`
	Processed int           `json:"processed"`
	Errors    int           `json:"errors"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"started_at"`
}
