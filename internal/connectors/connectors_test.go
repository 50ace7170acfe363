package connectors

import (
	"context"
	"testing"
)

func TestConnectors_NamesAndStableSourceIDs(t *testing.T) {
	cases := []struct {
		connector Connector
		name      string
	}{
		{NewTwitterConnector(), "twitter"},
		{NewYelpConnector(), "yelp"},
		{NewGoogleReviewsConnector(), "google_reviews"},
	}

	for _, tc := range cases {
		if got := tc.connector.Name(); got != tc.name {
			t.Errorf("name = %s, expected %s", got, tc.name)
		}

		first, err := tc.connector.Fetch(context.Background())
		if err != nil {
			t.Fatalf("%s: fetch: %v", tc.name, err)
		}
		if len(first) == 0 {
			t.Fatalf("%s: no items", tc.name)
		}
		for _, item := range first {
			if item.SourceID == "" || item.Author == "" || item.Content == "" {
				t.Errorf("%s: incomplete item %+v", tc.name, item)
			}
		}

		// Same ids on every fetch so dedup can recognize repeats
		second, err := tc.connector.Fetch(context.Background())
		if err != nil {
			t.Fatalf("%s: second fetch: %v", tc.name, err)
		}
		if len(second) != len(first) {
			t.Fatalf("%s: item count changed between fetches", tc.name)
		}
		for i := range first {
			if first[i].SourceID != second[i].SourceID {
				t.Errorf("%s: source id changed: %s vs %s",
					tc.name, first[i].SourceID, second[i].SourceID)
			}
		}
	}
}

func TestConnectors_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, c := range []Connector{NewTwitterConnector(), NewYelpConnector(), NewGoogleReviewsConnector()} {
		if _, err := c.Fetch(ctx); err == nil {
			t.Errorf("%s: expected error on cancelled context", c.Name())
		}
	}
}
