package services

import (
	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
)

// FeedbackStats is the aggregate view served to the dashboard.
type FeedbackStats struct {
	Total              int64   `json:"total"`
	Positive           int64   `json:"positive"`
	Negative           int64   `json:"negative"`
	Neutral            int64   `json:"neutral"`
	Unreviewed         int64   `json:"unreviewed"`
	PositivePercentage float64 `json:"positivePercentage"`
	NegativePercentage float64 `json:"negativePercentage"`
	NeutralPercentage  float64 `json:"neutralPercentage"`
}

type StatsService struct {
	store *store.FeedbackStore
}

func NewStatsService(st *store.FeedbackStore) *StatsService {
	return &StatsService{store: st}
}

// GetStats computes sentiment totals and percentages. All percentages
// are 0.0 when no feedback exists.
func (s *StatsService) GetStats() (*FeedbackStats, error) {
	total, err := s.store.Count()
	if err != nil {
		return nil, err
	}
	positive, err := s.store.CountBySentiment(models.SentimentPositive)
	if err != nil {
		return nil, err
	}
	negative, err := s.store.CountBySentiment(models.SentimentNegative)
	if err != nil {
		return nil, err
	}
	neutral, err := s.store.CountBySentiment(models.SentimentNeutral)
	if err != nil {
		return nil, err
	}
	unreviewed, err := s.store.CountUnreviewed()
	if err != nil {
		return nil, err
	}

	stats := &FeedbackStats{
		Total:      total,
		Positive:   positive,
		Negative:   negative,
		Neutral:    neutral,
		Unreviewed: unreviewed,
	}
	if total > 0 {
		stats.PositivePercentage = float64(positive) * 100.0 / float64(total)
		stats.NegativePercentage = float64(negative) * 100.0 / float64(total)
		stats.NeutralPercentage = float64(neutral) * 100.0 / float64(total)
	}
	return stats, nil
}
