// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

// Package sentiment classifies review text as positive, negative or neutral.
//
// Classify is the keyword heuristic: a pure function used inline when a
// review is created and by the analysis endpoint. Analyzer optionally asks
// the generative service first and falls back to the heuristic label with a
// fixed confidence when that answer is unusable.
package sentiment

import (
	"math"
	"strings"

	"github.com/tomtom215/moview/internal/models"
)

// Confidence bounds and adjustments for the heuristic path.
const (
	neutralConfidence  = 0.5
	baseConfidence     = 0.6
	perMatchConfidence = 0.1
	minConfidence      = 0.3
	maxConfidence      = 0.9

	shortTextWords  = 5
	longTextWords   = 50
	shortTextFactor = 0.8
	longTextFactor  = 1.1
)

// PositiveWords and NegativeWords are the heuristic lexicon.
var (
	PositiveWords = []string{
		"good", "great", "excellent", "amazing", "love", "best", "awesome",
		"fantastic", "wonderful", "brilliant", "outstanding", "superb",
		"incredible", "perfect", "beautiful", "stunning", "masterpiece",
		"enjoyable", "entertaining", "impressive", "remarkable", "exceptional",
	}

	NegativeWords = []string{
		"bad", "terrible", "awful", "hate", "worst", "horrible",
		"disappointing", "boring", "poor", "waste", "pathetic", "garbage",
		"stupid", "ridiculous", "annoying", "frustrating", "dreadful",
		"mediocre", "overrated", "bland", "tedious", "unwatchable",
	}
)

var (
	positiveMatcher = newMatcher(PositiveWords)
	negativeMatcher = newMatcher(NegativeWords)
)

// Scores holds how many distinct lexicon words of each class were found.
type Scores struct {
	Positive int
	Negative int
}

// Score counts distinct positive and negative words in text, ignoring case.
func Score(text string) Scores {
	return Scores{
		Positive: positiveMatcher.distinct(text),
		Negative: negativeMatcher.distinct(text),
	}
}

// Label picks the class with more matches, neutral on a tie.
func (s Scores) Label() string {
	switch {
	case s.Positive > s.Negative:
		return models.SentimentPositive
	case s.Negative > s.Positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Classify runs the keyword heuristic. The confidence is always within
// [0.3, 0.9].
func Classify(text string) models.SentimentResult {
	scores := Score(text)
	label := scores.Label()

	confidence := neutralConfidence
	switch label {
	case models.SentimentPositive:
		confidence = math.Min(maxConfidence, baseConfidence+perMatchConfidence*float64(scores.Positive))
	case models.SentimentNegative:
		confidence = math.Min(maxConfidence, baseConfidence+perMatchConfidence*float64(scores.Negative))
	}

	words := len(strings.Fields(text))
	switch {
	case words < shortTextWords:
		confidence *= shortTextFactor
	case words > longTextWords:
		confidence *= longTextFactor
	}

	return models.SentimentResult{
		Sentiment:  label,
		Confidence: clamp(confidence, minConfidence, maxConfidence),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
