package services

import (
	"testing"
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
)

func TestReportService_DailySummary(t *testing.T) {
	db := newTestDB(t)
	st := store.NewFeedbackStore(db)
	svc := NewReportService(st)

	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	rows := []struct {
		source     string
		sentiment  models.Sentiment
		confidence float64
		scrapedAt  time.Time
	}{
		{"twitter", models.SentimentPositive, 1.0, day.Add(2 * time.Hour)},
		{"twitter", models.SentimentNegative, 0.8, day.Add(10 * time.Hour)},
		{"yelp", models.SentimentNeutral, 0.5, day.Add(23 * time.Hour)},
		// Outside the day, must not be counted
		{"google", models.SentimentPositive, 1.0, day.AddDate(0, 0, 1).Add(time.Hour)},
		{"google", models.SentimentNegative, 1.0, day.Add(-time.Hour)},
	}
	for i, row := range rows {
		f := &models.Feedback{
			Source:              row.source,
			SourceID:            string(rune('a' + i)),
			Author:              "author",
			Content:             "content",
			ScrapedAt:           row.scrapedAt,
			Sentiment:           row.sentiment,
			SentimentConfidence: row.confidence,
		}
		if err := st.Create(f); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	summary, err := svc.GenerateDailySummary(day.Add(12 * time.Hour))
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if summary.Date != "2026-08-27" {
		t.Errorf("date = %s", summary.Date)
	}
	if summary.Total != 3 {
		t.Fatalf("total = %d, expected 3", summary.Total)
	}
	if summary.Positive != 1 || summary.Negative != 1 || summary.Neutral != 1 {
		t.Errorf("counts = %+v", summary)
	}
	if summary.Sources["twitter"] != 2 || summary.Sources["yelp"] != 1 {
		t.Errorf("sources = %v", summary.Sources)
	}
	if got, want := summary.AvgConfidence, (1.0+0.8+0.5)/3; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("avg confidence = %f, expected %f", got, want)
	}
}

func TestReportService_DailySummaryEmptyDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(store.NewFeedbackStore(db))

	summary, err := svc.GenerateDailySummary(time.Now())
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if summary.Total != 0 || summary.AvgConfidence != 0 {
		t.Errorf("summary = %+v, expected empty", summary)
	}
	if len(summary.Sources) != 0 {
		t.Errorf("sources = %v, expected empty map", summary.Sources)
	}
}

func TestReportService_CollectSnapshot(t *testing.T) {
	db := newTestDB(t)
	st := store.NewFeedbackStore(db)
	svc := NewReportService(st)

	auto := "thanks"
	now := time.Now()
	responded := &models.Feedback{
		Source: "twitter", SourceID: "a", Author: "x", Content: "good",
		ScrapedAt: now, Sentiment: models.SentimentPositive,
		AutoResponse: &auto, ResponseSentAt: &now,
	}
	pending := &models.Feedback{
		Source: "yelp", SourceID: "b", Author: "y", Content: "bad",
		ScrapedAt: now, Sentiment: models.SentimentNegative,
	}
	for _, f := range []*models.Feedback{responded, pending} {
		if err := st.Create(f); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	snapshot, err := svc.CollectSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.Total != 2 {
		t.Errorf("total = %d, expected 2", snapshot.Total)
	}
	if snapshot.Unresponded != 1 {
		t.Errorf("unresponded = %d, expected 1", snapshot.Unresponded)
	}
	if snapshot.Unreviewed != 2 {
		t.Errorf("unreviewed = %d, expected 2", snapshot.Unreviewed)
	}
	if snapshot.Today != 2 {
		t.Errorf("today = %d, expected 2", snapshot.Today)
	}
	if snapshot.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}
