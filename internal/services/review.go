package services

import (
	"errors"
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
	"github.com/huangang/feedbacksentry/pkg/response"
	"gorm.io/gorm"
)

// ReviewService is the human-override gateway used by the dashboard.
type ReviewService struct {
	store  *store.FeedbackStore
	events *EventLogService
}

func NewReviewService(st *store.FeedbackStore, events *EventLogService) *ReviewService {
	return &ReviewService{store: st, events: events}
}

// MarkReviewed flags a record as human reviewed and stores the human
// response text. Returns a not-found error when the id is unknown.
func (s *ReviewService) MarkReviewed(id uint, humanResponse string) (*models.Feedback, error) {
	record, err := s.store.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	record.HumanReviewed = true
	record.HumanResponse = &humanResponse
	if err := s.store.Save(record); err != nil {
		return nil, err
	}

	s.events.Record(record, "review", "human_review", "Human review completed")
	return record, nil
}

// OverrideResponse replaces the automated response directly. The review
// flag and human response are left untouched.
func (s *ReviewService) OverrideResponse(id uint, newResponse string) (*models.Feedback, error) {
	record, err := s.store.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	now := time.Now()
	record.AutoResponse = &newResponse
	record.ResponseSentAt = &now
	if err := s.store.Save(record); err != nil {
		return nil, err
	}

	s.events.Record(record, "review", "override_response", "Response overridden")
	return record, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFound("feedback not found")
	}
	return err
}
