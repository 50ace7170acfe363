package services

import (
	"context"
	"time"

	"github.com/huangang/feedbacksentry/internal/store"
	"github.com/huangang/feedbacksentry/pkg/logger"
)

// ClassificationService scores every record that has no automated
// response yet. Records stay in this working set until the response
// stage (or a human override) assigns a response, so an already scored
// but unresponded record is re-scored each tick; the classifier is
// deterministic, which makes the refresh idempotent.
type ClassificationService struct {
	store *store.FeedbackStore
}

func NewClassificationService(st *store.FeedbackStore) *ClassificationService {
	return &ClassificationService{store: st}
}

// RunOnce executes a single classification pass. Per-record failures
// are counted and logged without aborting the batch.
func (s *ClassificationService) RunOnce(ctx context.Context) RunSummary {
	start := time.Now()
	summary := RunSummary{Stage: StageClassification, StartedAt: start}

	records, err := s.store.Unresponded()
	if err != nil {
		summary.Errors++
		summary.Duration = time.Since(start)
		logger.Error().Err(err).Msg("failed to load unresponded feedback")
		return summary
	}

	for i := range records {
		if err := ctx.Err(); err != nil {
			break
		}
		record := &records[i]

		result := AnalyzeSentiment(record.Content)
		record.Sentiment = result.Sentiment
		record.SentimentConfidence = result.Confidence

		if err := s.store.Save(record); err != nil {
			summary.Errors++
			logger.Error().Err(err).Uint("feedback_id", record.ID).Msg("failed to save classification")
			continue
		}

		summary.Processed++
		logger.Info().
			Uint("feedback_id", record.ID).
			Str("author", record.Author).
			Str("sentiment", string(result.Sentiment)).
			Float64("confidence", result.Confidence).
			Msg("classified feedback")
	}

	summary.Duration = time.Since(start)
	return summary
}
