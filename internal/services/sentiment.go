package services

import (
	"strings"

	"github.com/huangang/feedbacksentry/internal/models"
)

// positiveWords and negativeWords are the fixed lexicons for rule-based
// scoring. A word must never appear in both lists; membership is checked
// positive-first.
var positiveWords = map[string]struct{}{
	"great": {}, "excellent": {}, "wonderful": {}, "fantastic": {}, "awesome": {},
	"perfect": {}, "love": {}, "loved": {}, "best": {}, "good": {}, "nice": {},
	"helpful": {}, "friendly": {}, "professional": {}, "quick": {}, "fast": {},
	"resolved": {}, "solved": {}, "recommend": {}, "satisfied": {}, "happy": {},
	"pleased": {}, "outstanding": {}, "superb": {}, "brilliant": {},
	"exceptional": {}, "marvelous": {}, "terrific": {},
}

var negativeWords = map[string]struct{}{
	"terrible": {}, "awful": {}, "horrible": {}, "bad": {}, "worst": {},
	"hate": {}, "hated": {}, "disappointed": {}, "poor": {}, "slow": {},
	"rude": {}, "unhelpful": {}, "unprofessional": {}, "useless": {},
	"waste": {}, "frustrated": {}, "angry": {}, "upset": {}, "annoyed": {},
	"disgusted": {}, "appalled": {}, "shocked": {}, "never": {}, "again": {},
	"refuse": {}, "cancel": {}, "complaint": {}, "issue": {}, "problem": {},
	"error": {}, "mistake": {}, "wrong": {},
}

// intensifiers amplify the weight of the immediately following sentiment
// word. The lookup uses the raw (unstripped) previous token.
var intensifiers = map[string]struct{}{
	"very": {}, "extremely": {}, "really": {}, "so": {}, "too": {},
	"absolutely": {}, "completely": {},
}

const intensifierWeight = 1.5

// SentimentResult is the outcome of analyzing one piece of text.
type SentimentResult struct {
	Sentiment  models.Sentiment
	Confidence float64
}

// AnalyzeSentiment scores text against the positive and negative
// lexicons. It is deterministic and pure: lowercase the text, split on
// whitespace runs, strip non-letter characters from each token, and sum
// weights per side. A lexicon hit weighs 1.5 when preceded by an
// intensifier, otherwise 1.0.
//
// Confidence is max(side)/total capped at 1.0 when any lexicon word
// matched, and exactly 0.5 when none did: an explicit "no evidence"
// signal rather than zero. Equal scores (including 0/0) yield neutral.
func AnalyzeSentiment(text string) SentimentResult {
	tokens := strings.Fields(strings.ToLower(text))

	var positive, negative float64

	for i, raw := range tokens {
		word := stripNonLetters(raw)
		if word == "" {
			continue
		}

		weight := 1.0
		if i > 0 {
			if _, ok := intensifiers[tokens[i-1]]; ok {
				weight = intensifierWeight
			}
		}

		if _, ok := positiveWords[word]; ok {
			positive += weight
		} else if _, ok := negativeWords[word]; ok {
			negative += weight
		}
	}

	total := positive + negative
	confidence := 0.5
	if total > 0 {
		confidence = max(positive, negative) / total
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	sentiment := models.SentimentNeutral
	switch {
	case positive > negative:
		sentiment = models.SentimentPositive
	case negative > positive:
		sentiment = models.SentimentNegative
	}

	return SentimentResult{Sentiment: sentiment, Confidence: confidence}
}

func stripNonLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
