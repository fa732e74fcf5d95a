// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moview/internal/genai"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// Classification paths, used as the metrics "path" label.
const (
	PathHeuristic  = "heuristic"
	PathGenerative = "generative"
	PathDegraded   = "degraded"
)

// fallbackConfidence replaces the heuristic confidence when the generative
// answer could not be used.
const fallbackConfidence = 0.5

const systemPrompt = "You are a sentiment analysis assistant for movie reviews. " +
	"Respond only with a JSON object and no surrounding prose."

// verdict is the structured answer requested from the generative service.
type verdict struct {
	Sentiment  string   `json:"sentiment" jsonschema:"enum=positive,enum=negative,enum=neutral"`
	Confidence *float64 `json:"confidence" jsonschema:"minimum=0,maximum=1"`
}

var (
	errInvalidLabel      = errors.New("invalid sentiment label")
	errMissingConfidence = errors.New("missing confidence")
)

// Analyzer serves the standalone analysis operation.
type Analyzer struct {
	gen    genai.Generator
	schema *genai.Schema
}

// NewAnalyzer returns an Analyzer. A nil generator means heuristic only.
func NewAnalyzer(gen genai.Generator) *Analyzer {
	a := &Analyzer{gen: gen}
	if gen != nil {
		a.schema = &genai.Schema{
			Name:        "sentiment_verdict",
			Description: "Sentiment label and confidence for a movie review",
			Definition:  genai.SchemaFor[verdict](),
		}
	}
	return a
}

// Generative reports whether the generative path is enabled.
func (a *Analyzer) Generative() bool {
	return a.gen != nil
}

// Analyze classifies text. It never fails: an unusable generative answer
// degrades to the heuristic label with confidence 0.5.
func (a *Analyzer) Analyze(ctx context.Context, text string) models.SentimentResult {
	if a.gen == nil {
		result := Classify(text)
		metrics.RecordSentiment(result.Sentiment, PathHeuristic)
		return result
	}

	result, err := a.generate(ctx, text)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Generative sentiment unusable, using keyword heuristic")
		result = models.SentimentResult{
			Sentiment:  Score(text).Label(),
			Confidence: fallbackConfidence,
		}
		metrics.RecordSentiment(result.Sentiment, PathDegraded)
		return result
	}

	metrics.RecordSentiment(result.Sentiment, PathGenerative)
	return result
}

// LabelReview returns the label stored with a new review. Review creation
// always uses the heuristic.
func (a *Analyzer) LabelReview(_ context.Context, content string) (string, error) {
	result := Classify(content)
	metrics.RecordSentiment(result.Sentiment, PathHeuristic)
	return result.Sentiment, nil
}

func (a *Analyzer) generate(ctx context.Context, text string) (models.SentimentResult, error) {
	raw, err := a.gen.Complete(ctx, genai.Request{
		Purpose: "sentiment",
		System:  systemPrompt,
		User:    buildPrompt(text),
		Schema:  a.schema,
	})
	if err != nil {
		return models.SentimentResult{}, err
	}
	return parseVerdict(raw)
}

func buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Classify the sentiment of the following movie review as positive, negative or neutral, ")
	b.WriteString("and estimate your confidence as a number between 0 and 1.\n")
	b.WriteString(`Return exactly {"sentiment": "<label>", "confidence": <number>}.`)
	b.WriteString("\n\nReview:\n")
	b.WriteString(text)
	return b.String()
}

// parseVerdict decodes and validates a generative answer. The confidence is
// clamped to [0, 1].
func parseVerdict(raw string) (models.SentimentResult, error) {
	var v verdict
	if err := json.Unmarshal([]byte(genai.StripCodeFences(raw)), &v); err != nil {
		return models.SentimentResult{}, fmt.Errorf("decode verdict: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(v.Sentiment))
	if !models.IsValidSentiment(label) {
		return models.SentimentResult{}, fmt.Errorf("%w: %q", errInvalidLabel, v.Sentiment)
	}
	if v.Confidence == nil {
		return models.SentimentResult{}, errMissingConfidence
	}

	return models.SentimentResult{
		Sentiment:  label,
		Confidence: clamp(*v.Confidence, 0, 1),
	}, nil
}
