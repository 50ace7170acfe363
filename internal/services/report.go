package services

import (
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
	"github.com/huangang/feedbacksentry/pkg/logger"
	"github.com/robfig/cron/v3"
)

// MetricsSnapshot is the periodic operational view of the pipeline.
type MetricsSnapshot struct {
	Total       int64     `json:"total"`
	Positive    int64     `json:"positive"`
	Negative    int64     `json:"negative"`
	Neutral     int64     `json:"neutral"`
	Today       int64     `json:"today"`
	Unresponded int64     `json:"unresponded"`
	Unreviewed  int64     `json:"unreviewed"`
	Timestamp   time.Time `json:"timestamp"`
}

// DailySummary is the rollup of the prior day's feedback volume.
type DailySummary struct {
	Date          string         `json:"date"`
	Total         int            `json:"total"`
	Positive      int            `json:"positive"`
	Negative      int            `json:"negative"`
	Neutral       int            `json:"neutral"`
	Sources       map[string]int `json:"sources"`
	AvgConfidence float64        `json:"avg_confidence"`
}

// ReportService emits a metrics snapshot on a short cron cadence and a
// daily rollup summarizing the prior day.
type ReportService struct {
	store         *store.FeedbackStore
	cronScheduler *cron.Cron
}

func NewReportService(st *store.FeedbackStore) *ReportService {
	return &ReportService{store: st}
}

// StartScheduler registers the snapshot and daily report jobs and starts
// the cron runner.
func (s *ReportService) StartScheduler(snapshotSpec, dailySpec string) error {
	s.cronScheduler = cron.New()

	if _, err := s.cronScheduler.AddFunc(snapshotSpec, s.LogSnapshot); err != nil {
		return err
	}
	if _, err := s.cronScheduler.AddFunc(dailySpec, s.LogDailyReport); err != nil {
		return err
	}

	s.cronScheduler.Start()
	logger.Info().
		Str("snapshot", snapshotSpec).
		Str("daily", dailySpec).
		Msg("report scheduler started")
	return nil
}

func (s *ReportService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// CollectSnapshot gathers current pipeline counters.
func (s *ReportService) CollectSnapshot() (*MetricsSnapshot, error) {
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
	unresponded, err := s.store.CountUnresponded()
	if err != nil {
		return nil, err
	}
	unreviewed, err := s.store.CountUnreviewed()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.store.ScrapedSince(midnight)
	if err != nil {
		return nil, err
	}

	return &MetricsSnapshot{
		Total:       total,
		Positive:    positive,
		Negative:    negative,
		Neutral:     neutral,
		Today:       int64(len(today)),
		Unresponded: unresponded,
		Unreviewed:  unreviewed,
		Timestamp:   now,
	}, nil
}

func (s *ReportService) LogSnapshot() {
	snapshot, err := s.CollectSnapshot()
	if err != nil {
		logger.Error().Err(err).Msg("failed to collect metrics snapshot")
		return
	}

	logger.Info().
		Int64("total", snapshot.Total).
		Int64("positive", snapshot.Positive).
		Int64("negative", snapshot.Negative).
		Int64("neutral", snapshot.Neutral).
		Int64("today", snapshot.Today).
		Int64("unresponded", snapshot.Unresponded).
		Int64("unreviewed", snapshot.Unreviewed).
		Msg("pipeline metrics")
}

// GenerateDailySummary builds the rollup for the calendar day containing
// day (local time).
func (s *ReportService) GenerateDailySummary(day time.Time) (*DailySummary, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	records, err := s.store.ScrapedBetween(from, to)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Date:    from.Format("2006-01-02"),
		Total:   len(records),
		Sources: make(map[string]int),
	}

	var confidenceSum float64
	for _, r := range records {
		switch r.Sentiment {
		case models.SentimentPositive:
			summary.Positive++
		case models.SentimentNegative:
			summary.Negative++
		default:
			summary.Neutral++
		}
		summary.Sources[r.Source]++
		confidenceSum += r.SentimentConfidence
	}
	if len(records) > 0 {
		summary.AvgConfidence = confidenceSum / float64(len(records))
	}

	return summary, nil
}

// LogDailyReport emits the rollup for the prior day.
func (s *ReportService) LogDailyReport() {
	summary, err := s.GenerateDailySummary(time.Now().AddDate(0, 0, -1))
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate daily report")
		return
	}

	event := logger.Info().
		Str("date", summary.Date).
		Int("total", summary.Total).
		Int("positive", summary.Positive).
		Int("negative", summary.Negative).
		Int("neutral", summary.Neutral).
		Float64("avg_confidence", summary.AvgConfidence)
	for source, count := range summary.Sources {
		event = event.Int("source_"+source, count)
	}
	event.Msg("daily feedback report")
}
