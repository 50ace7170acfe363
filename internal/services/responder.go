package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/store"
	"github.com/huangang/feedbacksentry/pkg/logger"
)

// Response templates per sentiment. %s interpolates the author name.
var positiveTemplates = []string{
	"Thank you so much for your kind words, %s! We're thrilled that you had a great experience with us. Your feedback means the world to our team!",
	"We're so happy to hear that you had a positive experience, %s! Thank you for taking the time to share your feedback. We look forward to serving you again!",
	"Wow, thank you for the wonderful feedback, %s! We're delighted that you enjoyed our service. Your satisfaction is our top priority!",
	"Your kind words truly made our day, %s! Thank you for choosing us and for sharing your positive experience. We appreciate your business!",
}

var negativeTemplates = []string{
	"We're sincerely sorry to hear about your experience, %s. This is not the standard of service we aim to provide. We'd like to make this right - please contact our support team at support@example.com so we can address your concerns directly.",
	"Thank you for bringing this to our attention, %s. We apologize that we didn't meet your expectations. Your feedback is valuable and we're committed to improving. Please reach out to our support team at support@example.com so we can resolve this issue.",
	"We're very sorry that you had a negative experience, %s. This falls short of the service we strive to provide. We take your feedback seriously - please contact support@example.com so we can make things right.",
	"We apologize for the poor experience you had, %s. Your feedback helps us improve, and we'd like to address your concerns personally. Please contact our customer service team at support@example.com so we can work towards a solution.",
}

var neutralTemplates = []string{
	"Thank you for your feedback, %s. We appreciate you taking the time to share your thoughts with us. Is there anything specific we could do to improve your experience next time?",
	"We appreciate your feedback, %s. Thank you for sharing your perspective with us. We're always looking for ways to enhance our service.",
	"Thanks for providing your feedback, %s. We value all input from our customers as it helps us better understand their needs and expectations.",
}

// ResponseGenerator selects a response template for a sentiment and
// interpolates the author name. The random source is injected so tests
// can seed it.
type ResponseGenerator struct {
	rng *rand.Rand
}

func NewResponseGenerator(rng *rand.Rand) *ResponseGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ResponseGenerator{rng: rng}
}

// Generate picks one template uniformly at random for the given
// sentiment. The response stage never calls it with neutral; the
// neutral set is kept for direct invocation (e.g. by a human workflow).
func (g *ResponseGenerator) Generate(sentiment models.Sentiment, author string) (string, error) {
	var templates []string
	switch sentiment {
	case models.SentimentPositive:
		templates = positiveTemplates
	case models.SentimentNegative:
		templates = negativeTemplates
	case models.SentimentNeutral:
		templates = neutralTemplates
	default:
		return "", fmt.Errorf("unknown sentiment: %s", sentiment)
	}
	return fmt.Sprintf(templates[g.rng.Intn(len(templates))], author), nil
}

// ResponseService assigns automated responses to classified, non-neutral
// records that have none yet.
type ResponseService struct {
	store     *store.FeedbackStore
	generator *ResponseGenerator
}

func NewResponseService(st *store.FeedbackStore, generator *ResponseGenerator) *ResponseService {
	return &ResponseService{store: st, generator: generator}
}

// RunOnce executes a single response pass with the same per-item error
// isolation as classification.
func (s *ResponseService) RunOnce(ctx context.Context) RunSummary {
	start := time.Now()
	summary := RunSummary{Stage: StageResponse, StartedAt: start}

	records, err := s.store.RespondableUnresponded()
	if err != nil {
		summary.Errors++
		summary.Duration = time.Since(start)
		logger.Error().Err(err).Msg("failed to load respondable feedback")
		return summary
	}

	for i := range records {
		if err := ctx.Err(); err != nil {
			break
		}
		record := &records[i]

		text, err := s.generator.Generate(record.Sentiment, record.Author)
		if err != nil {
			summary.Errors++
			logger.Error().Err(err).Uint("feedback_id", record.ID).Msg("failed to generate response")
			continue
		}

		now := time.Now()
		record.AutoResponse = &text
		record.ResponseSentAt = &now

		if err := s.store.Save(record); err != nil {
			summary.Errors++
			logger.Error().Err(err).Uint("feedback_id", record.ID).Msg("failed to save response")
			continue
		}

		summary.Processed++
		logger.Info().
			Uint("feedback_id", record.ID).
			Str("author", record.Author).
			Str("sentiment", string(record.Sentiment)).
			Msg("generated automated response")
	}

	summary.Duration = time.Since(start)
	return summary
}
