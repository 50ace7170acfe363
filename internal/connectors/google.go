package connectors

import (
	"context"
	"time"
)

// GoogleReviewsConnector is a static mock of a Google Business reviews feed.
type GoogleReviewsConnector struct{}

func NewGoogleReviewsConnector() *GoogleReviewsConnector { return &GoogleReviewsConnector{} }

func (c *GoogleReviewsConnector) Name() string { return "google_reviews" }

func (c *GoogleReviewsConnector) Fetch(ctx context.Context) ([]RawItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []RawItem{
		{
			SourceID:  "google_456",
			Author:    "google_user1",
			Content:   "Good experience overall. Quick response time and professional staff.",
			CreatedAt: time.Now().Add(-12 * time.Hour),
		},
	}, nil
}
