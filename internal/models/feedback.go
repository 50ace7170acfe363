package models

import "time"

// Sentiment is the classification label assigned to a feedback record.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ParseSentiment converts a string into a Sentiment, accepting any case.
func ParseSentiment(s string) (Sentiment, bool) {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return Sentiment(s), true
	}
	switch s {
	case "POSITIVE":
		return SentimentPositive, true
	case "NEGATIVE":
		return SentimentNegative, true
	case "NEUTRAL":
		return SentimentNeutral, true
	}
	return "", false
}

// Feedback represents one unit of ingested customer feedback and its
// derived state. Provenance fields are immutable after ingestion; the
// (source, source_id) pair is unique so re-ingesting the same origin
// item is a no-op.
type Feedback struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Source          string    `gorm:"size:100;not null;uniqueIndex:idx_feedback_source_source_id" json:"source"` // twitter, yelp, google_reviews
	SourceID        string    `gorm:"size:200;not null;uniqueIndex:idx_feedback_source_source_id" json:"source_id"`
	Author          string    `gorm:"size:200;not null" json:"author"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	CreatedAtSource time.Time `json:"created_at_source"`
	ScrapedAt       time.Time `gorm:"index;not null" json:"scraped_at"`

	Sentiment           Sentiment `gorm:"size:20;index;default:neutral" json:"sentiment"`
	SentimentConfidence float64   `gorm:"default:0" json:"sentiment_confidence"`

	AutoResponse   *string    `gorm:"type:text" json:"auto_response"`
	ResponseSentAt *time.Time `json:"response_sent_at"`

	HumanReviewed bool    `gorm:"default:false;index" json:"human_reviewed"`
	HumanResponse *string `gorm:"type:text" json:"human_response"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feedback) TableName() string { return "feedback" }

// IsUnresponded reports whether no automated response has been assigned
// yet. Classification eligibility is derived from this same predicate.
func (f *Feedback) IsUnresponded() bool {
	return f.AutoResponse == nil
}
