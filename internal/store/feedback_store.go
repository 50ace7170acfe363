// Package store wraps all feedback persistence behind a small query API.
// Eligibility for each pipeline stage is derived from persisted fields
// here (auto_response IS NULL and friends), never from in-memory queues.
package store

import (
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"gorm.io/gorm"
)

type FeedbackStore struct {
	db *gorm.DB
}

func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Create inserts a new record. The unique index on (source, source_id)
// rejects duplicates at the database level.
func (s *FeedbackStore) Create(f *models.Feedback) error {
	return s.db.Create(f).Error
}

// Save persists mutations to an existing record.
func (s *FeedbackStore) Save(f *models.Feedback) error {
	return s.db.Save(f).Error
}

// GetByID returns gorm.ErrRecordNotFound if no record exists.
func (s *FeedbackStore) GetByID(id uint) (*models.Feedback, error) {
	var f models.Feedback
	if err := s.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FeedbackStore) All() ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Order("scraped_at DESC").Find(&list).Error
	return list, err
}

func (s *FeedbackStore) BySentiment(sentiment models.Sentiment) ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Where("sentiment = ?", sentiment).Order("scraped_at DESC").Find(&list).Error
	return list, err
}

func (s *FeedbackStore) BySource(source string) ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Where("source = ?", source).Order("scraped_at DESC").Find(&list).Error
	return list, err
}

func (s *FeedbackStore) Unreviewed() ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Where("human_reviewed = ?", false).Order("scraped_at DESC").Find(&list).Error
	return list, err
}

// ScrapedSince returns records ingested at or after the given time.
func (s *FeedbackStore) ScrapedSince(since time.Time) ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Where("scraped_at >= ?", since).Order("scraped_at DESC").Find(&list).Error
	return list, err
}

// ScrapedBetween returns records with from <= scraped_at < to.
func (s *FeedbackStore) ScrapedBetween(from, to time.Time) ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Where("scraped_at >= ? AND scraped_at < ?", from, to).
		Order("scraped_at ASC").Find(&list).Error
	return list, err
}

// Unresponded is the classification working set: everything without an
// automated response, ordered oldest first so backlog drains in order.
func (s *FeedbackStore) Unresponded() ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Where("auto_response IS NULL").Order("scraped_at ASC").Find(&list).Error
	return list, err
}

// RespondableUnresponded narrows Unresponded to non-neutral records,
// the response stage working set.
func (s *FeedbackStore) RespondableUnresponded() ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.db.Where("auto_response IS NULL AND sentiment <> ?", models.SentimentNeutral).
		Order("scraped_at ASC").Find(&list).Error
	return list, err
}

func (s *FeedbackStore) ExistsBySourceAndSourceID(source, sourceID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Feedback{}).
		Where("source = ? AND source_id = ?", source, sourceID).
		Count(&count).Error
	return count > 0, err
}

func (s *FeedbackStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Feedback{}).Count(&count).Error
	return count, err
}

func (s *FeedbackStore) CountBySentiment(sentiment models.Sentiment) (int64, error) {
	var count int64
	err := s.db.Model(&models.Feedback{}).Where("sentiment = ?", sentiment).Count(&count).Error
	return count, err
}

func (s *FeedbackStore) CountUnreviewed() (int64, error) {
	var count int64
	err := s.db.Model(&models.Feedback{}).Where("human_reviewed = ?", false).Count(&count).Error
	return count, err
}

func (s *FeedbackStore) CountUnresponded() (int64, error) {
	var count int64
	err := s.db.Model(&models.Feedback{}).Where("auto_response IS NULL").Count(&count).Error
	return count, err
}
