// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package sentiment

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tomtom215/moview/internal/genai"
	"github.com/tomtom215/moview/internal/models"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestClassify(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("the plot moves along ", 13) + "and the score is wonderful"

	tests := []struct {
		name           string
		text           string
		wantSentiment  string
		wantConfidence float64
	}{
		{"two negatives", "This movie is terrible and boring", models.SentimentNegative, 0.8},
		{"short positive", "Loved it", models.SentimentPositive, 0.56},
		{"short neutral", "ok", models.SentimentNeutral, 0.4},
		{"plain neutral", "It was fine, nothing special.", models.SentimentNeutral, 0.5},
		{"tie is neutral", "good acting but bad plot overall", models.SentimentNeutral, 0.5},
		{"repeats count once", "great great great great great movie", models.SentimentPositive, 0.7},
		{"capped at 0.9", "amazing, brilliant, stunning and perfect film", models.SentimentPositive, 0.9},
		{"long text boost", long, models.SentimentPositive, 0.77},
		{"case insensitive", "An AWFUL, DREADFUL waste of two hours", models.SentimentNegative, 0.9},
		{"substring match", "The badminton scenes dragged on forever", models.SentimentNegative, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.text)
			if got.Sentiment != tt.wantSentiment {
				t.Errorf("Classify(%q).Sentiment = %q, want %q", tt.text, got.Sentiment, tt.wantSentiment)
			}
			if !approxEqual(got.Confidence, tt.wantConfidence) {
				t.Errorf("Classify(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassify_TotalAndIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"x",
		"!!!",
		"good bad great terrible",
		"An absolute masterpiece, loved every minute",
		strings.Repeat("boring ", 140),
		strings.Repeat("a", 1000),
		"ÉNORME déception, c'était horrible",
	}

	for _, text := range inputs {
		first := Classify(text)
		if !models.IsValidSentiment(first.Sentiment) {
			t.Errorf("Classify(%q) label %q is not valid", text, first.Sentiment)
		}
		if first.Confidence < 0.3 || first.Confidence > 0.9 {
			t.Errorf("Classify(%q) confidence %v outside [0.3, 0.9]", text, first.Confidence)
		}
		if second := Classify(text); second != first {
			t.Errorf("Classify(%q) not idempotent: %+v then %+v", text, first, second)
		}
	}
}

func TestMatcher_DistinctAgreesWithNaiveCount(t *testing.T) {
	t.Parallel()

	naive := func(words []string, text string) int {
		lower := strings.ToLower(text)
		n := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				n++
			}
		}
		return n
	}

	texts := []string{
		"",
		"This movie is terrible and boring",
		"the best, the worst, the most overrated and the most mediocre",
		"lovelovelove badbad",
		"goodgreatexcellentamazing",
		"Unwatchable. Tedious. Bland.",
	}
	for _, text := range texts {
		s := Score(text)
		if want := naive(PositiveWords, text); s.Positive != want {
			t.Errorf("Score(%q).Positive = %d, want %d", text, s.Positive, want)
		}
		if want := naive(NegativeWords, text); s.Negative != want {
			t.Errorf("Score(%q).Negative = %d, want %d", text, s.Negative, want)
		}
	}
}

func TestNewMatcher_IgnoresEmptyAndDuplicates(t *testing.T) {
	t.Parallel()

	m := newMatcher([]string{"", "  ", "Good", "good", "goo"})
	if len(m.words) != 2 {
		t.Fatalf("matcher kept %d words, want 2: %v", len(m.words), m.words)
	}
	if got := m.distinct("GOOD times"); got != 2 {
		t.Errorf("distinct() = %d, want 2 (good and goo)", got)
	}
	if got := newMatcher(nil).distinct("anything"); got != 0 {
		t.Errorf("empty matcher distinct() = %d, want 0", got)
	}
}

// stubGenerator returns a canned answer.
type stubGenerator struct {
	text  string
	err   error
	calls int
	last  genai.Request
}

func (s *stubGenerator) Complete(_ context.Context, req genai.Request) (string, error) {
	s.calls++
	s.last = req
	return s.text, s.err
}

func (s *stubGenerator) Provider() string { return "stub" }

func TestAnalyzer_Generative(t *testing.T) {
	t.Parallel()

	const text = "This movie is terrible and boring"

	tests := []struct {
		name   string
		answer string
		err    error
		want   models.SentimentResult
	}{
		{"valid", `{"sentiment":"positive","confidence":0.83}`, nil, models.SentimentResult{Sentiment: "positive", Confidence: 0.83}},
		{"label normalized", `{"sentiment":" Negative ","confidence":0.9}`, nil, models.SentimentResult{Sentiment: "negative", Confidence: 0.9}},
		{"fenced", "```json\n{\"sentiment\":\"neutral\",\"confidence\":0.4}\n```", nil, models.SentimentResult{Sentiment: "neutral", Confidence: 0.4}},
		{"clamped high", `{"sentiment":"positive","confidence":1.7}`, nil, models.SentimentResult{Sentiment: "positive", Confidence: 1}},
		{"clamped low", `{"sentiment":"negative","confidence":-0.2}`, nil, models.SentimentResult{Sentiment: "negative", Confidence: 0}},
		{"invalid label", `{"sentiment":"mixed","confidence":0.7}`, nil, models.SentimentResult{Sentiment: "negative", Confidence: 0.5}},
		{"non numeric confidence", `{"sentiment":"positive","confidence":"high"}`, nil, models.SentimentResult{Sentiment: "negative", Confidence: 0.5}},
		{"missing confidence", `{"sentiment":"positive"}`, nil, models.SentimentResult{Sentiment: "negative", Confidence: 0.5}},
		{"prose", `I think it is negative.`, nil, models.SentimentResult{Sentiment: "negative", Confidence: 0.5}},
		{"service error", "", errors.New("connection refused"), models.SentimentResult{Sentiment: "negative", Confidence: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gen := &stubGenerator{text: tt.answer, err: tt.err}
			a := NewAnalyzer(gen)

			got := a.Analyze(context.Background(), text)
			if got.Sentiment != tt.want.Sentiment || !approxEqual(got.Confidence, tt.want.Confidence) {
				t.Errorf("Analyze() = %+v, want %+v", got, tt.want)
			}
			if gen.calls != 1 {
				t.Errorf("generator called %d times, want 1", gen.calls)
			}
			if gen.last.Schema == nil || gen.last.Purpose != "sentiment" {
				t.Errorf("request = %+v, want sentiment purpose with schema", gen.last)
			}
			if !strings.Contains(gen.last.User, text) {
				t.Errorf("prompt does not contain the review text: %q", gen.last.User)
			}
		})
	}
}

func TestAnalyzer_HeuristicOnly(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(nil)
	if a.Generative() {
		t.Fatal("Generative() = true for nil generator")
	}

	const text = "This movie is terrible and boring"
	if got, want := a.Analyze(context.Background(), text), Classify(text); got != want {
		t.Errorf("Analyze() = %+v, want heuristic %+v", got, want)
	}

	label, err := a.LabelReview(context.Background(), "An absolute masterpiece, loved every minute")
	if err != nil {
		t.Fatalf("LabelReview() error = %v", err)
	}
	if label != models.SentimentPositive {
		t.Errorf("LabelReview() = %q, want positive", label)
	}
}
