package connectors

import (
	"context"
	"time"
)

// YelpConnector is a static mock of a Yelp business review feed.
type YelpConnector struct{}

func NewYelpConnector() *YelpConnector { return &YelpConnector{} }

func (c *YelpConnector) Name() string { return "yelp" }

func (c *YelpConnector) Fetch(ctx context.Context) ([]RawItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	return []RawItem{
		{
			SourceID:  "yelp_789",
			Author:    "customer123",
			Content:   "Excellent service! The staff was knowledgeable and friendly. Would definitely recommend.",
			CreatedAt: now.AddDate(0, 0, -1),
		},
		{
			SourceID:  "yelp_790",
			Author:    "disappointed_user",
			Content:   "Poor service. The representative was rude and unhelpful. Very disappointed.",
			CreatedAt: now.AddDate(0, 0, -2),
		},
	}, nil
}
