package services

import (
	"context"
	"time"

	"github.com/huangang/feedbacksentry/internal/connectors"
	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
	"github.com/huangang/feedbacksentry/pkg/logger"
)

// IngestionService pulls raw items from every configured connector,
// deduplicates against the store, and persists new records in the
// unclassified default state (neutral, confidence 0).
type IngestionService struct {
	store      *store.FeedbackStore
	connectors []connectors.Connector
}

func NewIngestionService(st *store.FeedbackStore, conns []connectors.Connector) *IngestionService {
	return &IngestionService{store: st, connectors: conns}
}

// RunOnce executes a single ingestion pass. A connector failure is
// logged and skipped; the remaining connectors still run.
func (s *IngestionService) RunOnce(ctx context.Context) RunSummary {
	start := time.Now()
	summary := RunSummary{Stage: StageIngestion, StartedAt: start}

	for _, conn := range s.connectors {
		items, err := conn.Fetch(ctx)
		if err != nil {
			summary.Errors++
			logger.Error().Err(err).Str("connector", conn.Name()).Msg("connector fetch failed")
			continue
		}

		for _, item := range items {
			saved, err := s.ingestItem(conn.Name(), item)
			if err != nil {
				summary.Errors++
				logger.Error().Err(err).
					Str("source", conn.Name()).
					Str("source_id", item.SourceID).
					Msg("failed to ingest item")
				continue
			}
			if saved {
				summary.Processed++
				logger.Info().
					Str("source", conn.Name()).
					Str("source_id", item.SourceID).
					Str("author", item.Author).
					Msg("ingested feedback")
			}
		}
	}

	summary.Duration = time.Since(start)
	return summary
}

// ingestItem persists one raw item unless the (source, source_id) pair
// already exists. The store's unique index backs the check-then-insert,
// so a racing duplicate insert surfaces as a store error here rather
// than a second record.
func (s *IngestionService) ingestItem(source string, item connectors.RawItem) (bool, error) {
	exists, err := s.store.ExistsBySourceAndSourceID(source, item.SourceID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	record := &models.Feedback{
		Source:              source,
		SourceID:            item.SourceID,
		Author:              item.Author,
		Content:             item.Content,
		CreatedAtSource:     item.CreatedAt,
		ScrapedAt:           time.Now(),
		Sentiment:           models.SentimentNeutral,
		SentimentConfidence: 0,
	}
	if err := s.store.Create(record); err != nil {
		return false, err
	}
	return true, nil
}
