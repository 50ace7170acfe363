// Package connectors defines the contract between the ingestion stage
// and external feedback origins. Connectors only fetch; deduplication
// against the store happens in the ingestion stage.
package connectors

import (
	"context"
	"time"
)

// RawItem is one feedback item as produced by an origin, before any
// classification or persistence.
type RawItem struct {
	SourceID  string    // origin-native id
	Author    string
	Content   string
	CreatedAt time.Time // origin timestamp
}

// Connector produces raw feedback items from one external origin.
// Fetch must be side-effect free with respect to the store. A failing
// connector must not prevent other connectors from running.
type Connector interface {
	Name() string
	Fetch(ctx context.Context) ([]RawItem, error)
}
