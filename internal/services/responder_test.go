package services

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
)

func TestResponseGenerator_PositiveTemplates(t *testing.T) {
	gen := NewResponseGenerator(rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		text, err := gen.Generate(models.SentimentPositive, "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "alice") {
			t.Errorf("response does not mention author: %q", text)
		}
		if !isKnownTemplate(text, positiveTemplates, "alice") {
			t.Errorf("response is not one of the positive templates: %q", text)
		}
	}
}

func TestResponseGenerator_NegativeTemplatesContainSupportContact(t *testing.T) {
	gen := NewResponseGenerator(rand.New(rand.NewSource(2)))

	for i := 0; i < 20; i++ {
		text, err := gen.Generate(models.SentimentNegative, "bob")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !isKnownTemplate(text, negativeTemplates, "bob") {
			t.Errorf("response is not one of the negative templates: %q", text)
		}
		if !strings.Contains(text, "support@example.com") {
			t.Errorf("negative response lacks support contact: %q", text)
		}
	}
}

func TestResponseGenerator_NeutralAvailableDirectly(t *testing.T) {
	gen := NewResponseGenerator(rand.New(rand.NewSource(3)))

	text, err := gen.Generate(models.SentimentNeutral, "carol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isKnownTemplate(text, neutralTemplates, "carol") {
		t.Errorf("response is not one of the neutral templates: %q", text)
	}
}

func TestResponseGenerator_UnknownSentiment(t *testing.T) {
	gen := NewResponseGenerator(rand.New(rand.NewSource(4)))

	if _, err := gen.Generate(models.Sentiment("confused"), "dave"); err == nil {
		t.Error("expected error for unknown sentiment")
	}
}

func TestResponseGenerator_SeededSelectionIsReproducible(t *testing.T) {
	a := NewResponseGenerator(rand.New(rand.NewSource(42)))
	b := NewResponseGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		ta, _ := a.Generate(models.SentimentPositive, "eve")
		tb, _ := b.Generate(models.SentimentPositive, "eve")
		if ta != tb {
			t.Fatalf("iteration %d: %q != %q", i, ta, tb)
		}
	}
}

func TestResponseService_SkipsNeutral(t *testing.T) {
	db := newTestDB(t)
	st := store.NewFeedbackStore(db)

	neutral := &models.Feedback{
		Source:    "twitter",
		SourceID:  "t-neutral",
		Author:    "bob_wilson",
		Content:   "Product works as expected.",
		ScrapedAt: time.Now(),
		Sentiment: models.SentimentNeutral,
	}
	negative := &models.Feedback{
		Source:    "twitter",
		SourceID:  "t-negative",
		Author:    "jane_smith",
		Content:   "Terrible experience.",
		ScrapedAt: time.Now(),
		Sentiment: models.SentimentNegative,
	}
	for _, f := range []*models.Feedback{neutral, negative} {
		if err := st.Create(f); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	svc := NewResponseService(st, NewResponseGenerator(rand.New(rand.NewSource(5))))
	summary := svc.RunOnce(context.Background())

	if summary.Processed != 1 {
		t.Errorf("processed = %d, expected 1", summary.Processed)
	}
	if summary.Errors != 0 {
		t.Errorf("errors = %d, expected 0", summary.Errors)
	}

	got, err := st.GetByID(neutral.ID)
	if err != nil {
		t.Fatalf("get neutral: %v", err)
	}
	if got.AutoResponse != nil {
		t.Errorf("neutral record received a response: %q", *got.AutoResponse)
	}

	got, err = st.GetByID(negative.ID)
	if err != nil {
		t.Fatalf("get negative: %v", err)
	}
	if got.AutoResponse == nil {
		t.Fatal("negative record did not receive a response")
	}
	if got.ResponseSentAt == nil {
		t.Error("response_sent_at not set")
	}
	if !strings.Contains(*got.AutoResponse, "jane_smith") {
		t.Errorf("response does not mention author: %q", *got.AutoResponse)
	}
}

// isKnownTemplate reports whether text equals one of the templates with
// the author name interpolated.
func isKnownTemplate(text string, templates []string, author string) bool {
	for _, tpl := range templates {
		if text == strings.Replace(tpl, "%s", author, 1) {
			return true
		}
	}
	return false
}
