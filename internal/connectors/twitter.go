package connectors

import (
	"context"
	"time"
)

// TwitterConnector is a static mock of a Twitter mention search. A real
// implementation would call the Twitter API with the same contract.
type TwitterConnector struct{}

func NewTwitterConnector() *TwitterConnector { return &TwitterConnector{} }

func (c *TwitterConnector) Name() string { return "twitter" }

func (c *TwitterConnector) Fetch(ctx context.Context) ([]RawItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	return []RawItem{
		{
			SourceID:  "tweet_12345",
			Author:    "john_doe",
			Content:   "Great customer service! Really helped me solve my issue quickly.",
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			SourceID:  "tweet_12346",
			Author:    "jane_smith",
			Content:   "Terrible experience. Waited on hold for 45 minutes and no resolution.",
			CreatedAt: now.Add(-4 * time.Hour),
		},
		{
			SourceID:  "tweet_12347",
			Author:    "bob_wilson",
			Content:   "Product works as expected. Nothing amazing but does the job.",
			CreatedAt: now.Add(-6 * time.Hour),
		},
	}, nil
}
