package services

import (
	"encoding/json"
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/pkg/logger"
	"gorm.io/gorm"
)

// EventLogService persists feedback events for observability: gateway
// mutations and notable pipeline milestones land here as audit rows in
// addition to the structured log stream.
type EventLogService struct {
	db *gorm.DB
}

func NewEventLogService(db *gorm.DB) *EventLogService {
	return &EventLogService{db: db}
}

// Record writes one event row. Failures are logged, never propagated:
// audit logging must not break the operation being audited.
func (s *EventLogService) Record(feedback *models.Feedback, module, action, message string) {
	extra, _ := json.Marshal(map[string]interface{}{
		"source":     feedback.Source,
		"author":     feedback.Author,
		"sentiment":  feedback.Sentiment,
		"confidence": feedback.SentimentConfidence,
	})

	event := &models.FeedbackEvent{
		FeedbackID: feedback.ID,
		Module:     module,
		Action:     action,
		Message:    message,
		Extra:      string(extra),
		CreatedAt:  time.Now(),
	}
	if err := s.db.Create(event).Error; err != nil {
		logger.Error().Err(err).Uint("feedback_id", feedback.ID).Msg("failed to record feedback event")
		return
	}

	logger.Info().
		Uint("feedback_id", feedback.ID).
		Str("module", module).
		Str("action", action).
		Str("author", feedback.Author).
		Str("sentiment", string(feedback.Sentiment)).
		Msg(message)
}

// Recent returns the latest events, newest first.
func (s *EventLogService) Recent(limit int) ([]models.FeedbackEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []models.FeedbackEvent
	err := s.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}
