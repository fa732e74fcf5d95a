// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package models

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentResult is the outcome of classifying a piece of text.
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// IsValidSentiment reports whether label is one of the three known labels.
func IsValidSentiment(label string) bool {
	switch label {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// SentimentRequest is the body of POST /api/v1/sentiment/analyze.
type SentimentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// SentimentResponse echoes the analyzed text with its classification.
type SentimentResponse struct {
	Text string `json:"text"`
	SentimentResult
}
