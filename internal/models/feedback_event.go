package models

import "time"

// FeedbackEvent is a persisted audit row for notable actions on a
// feedback record (human review, response override, pipeline milestones).
type FeedbackEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FeedbackID uint      `gorm:"index" json:"feedback_id"`
	Module     string    `gorm:"size:50;index" json:"module"` // ingestion, classification, response, review
	Action     string    `gorm:"size:100;index" json:"action"`
	Message    string    `gorm:"type:text" json:"message"`
	Extra      string    `gorm:"type:text" json:"extra"` // JSON extra data
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (FeedbackEvent) TableName() string { return "feedback_events" }
