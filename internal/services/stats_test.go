package services

import (
	"testing"
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
)

func TestStatsService_EmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(store.NewFeedbackStore(db))

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Total != 0 || stats.Unreviewed != 0 {
		t.Errorf("stats = %+v, expected zeros", stats)
	}
	if stats.PositivePercentage != 0 || stats.NegativePercentage != 0 || stats.NeutralPercentage != 0 {
		t.Errorf("percentages = %+v, expected 0.0 on empty database", stats)
	}
}

func TestStatsService_CountsAndPercentages(t *testing.T) {
	db := newTestDB(t)
	st := store.NewFeedbackStore(db)
	svc := NewStatsService(st)

	rows := []struct {
		sentiment models.Sentiment
		reviewed  bool
	}{
		{models.SentimentPositive, false},
		{models.SentimentPositive, true},
		{models.SentimentNegative, false},
		{models.SentimentNeutral, false},
	}
	for i, row := range rows {
		f := &models.Feedback{
			Source:        "twitter",
			SourceID:      string(rune('a' + i)),
			Author:        "author",
			Content:       "content",
			ScrapedAt:     time.Now(),
			Sentiment:     row.sentiment,
			HumanReviewed: row.reviewed,
		}
		if err := st.Create(f); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("total = %d, expected 4", stats.Total)
	}
	if stats.Positive != 2 || stats.Negative != 1 || stats.Neutral != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.Positive+stats.Negative+stats.Neutral != stats.Total {
		t.Error("sentiment counts do not sum to total")
	}
	if stats.Unreviewed != 3 {
		t.Errorf("unreviewed = %d, expected 3", stats.Unreviewed)
	}
	if stats.PositivePercentage != 50.0 {
		t.Errorf("positive pct = %f, expected 50.0", stats.PositivePercentage)
	}
	if stats.NegativePercentage != 25.0 || stats.NeutralPercentage != 25.0 {
		t.Errorf("pcts = %+v", stats)
	}
}
