// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moview/internal/genai"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// DefaultReason is used when a generated candidate carries no reason.
const DefaultReason = "Recommended based on your preferences"

// DefaultMaxRecommendations is how many movies one request returns at most.
const DefaultMaxRecommendations = 4

// Reasons a generated candidate is dropped, used as a metrics label.
const (
	dropMalformed    = "malformed"
	dropExcess       = "excess"
	dropMissingTitle = "missing_title"
	dropUnresolved   = "unresolved"
)

const generatorSystemPrompt = "You are a movie recommendation expert. " +
	"You answer with a JSON array only, never with prose or Markdown."

// candidate is one element of the generated JSON array. Both fields are
// optional in the decoded text.
type candidate struct {
	Title  *string `json:"title"`
	Reason *string `json:"reason"`
}

// Generator asks the generative service for candidates and resolves them.
type Generator struct {
	gen     genai.Generator
	catalog Catalog
	limit   int
}

// NewGenerator returns a Generator returning at most limit movies. Limits
// outside 1..DefaultMaxRecommendations fall back to the default.
func NewGenerator(gen genai.Generator, catalog Catalog, limit int) *Generator {
	if limit <= 0 || limit > DefaultMaxRecommendations {
		limit = DefaultMaxRecommendations
	}
	return &Generator{gen: gen, catalog: catalog, limit: limit}
}

// Generate returns between zero and limit resolved movies in the order the
// service suggested them. Candidates resolving to the same movie are all kept. It never fails: an unreachable service or an
// unparsable answer yields an empty result.
func (g *Generator) Generate(ctx context.Context, narrative string) []models.RecommendedMovie {
	if g.gen == nil {
		return nil
	}

	raw, err := g.gen.Complete(ctx, genai.Request{
		Purpose: "recommend",
		System:  generatorSystemPrompt,
		User:    buildRecommendationPrompt(narrative, g.limit),
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Generative recommendations unavailable")
		return nil
	}

	candidates, err := parseCandidates(raw)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("response", logging.Sanitize(truncate(raw, 200))).
			Msg("Discarding malformed generative recommendations")
		metrics.RecordCandidateDropped(dropMalformed)
		return nil
	}

	return g.resolve(ctx, candidates)
}

func (g *Generator) resolve(ctx context.Context, candidates []candidate) []models.RecommendedMovie {
	if len(candidates) > g.limit {
		for range len(candidates) - g.limit {
			metrics.RecordCandidateDropped(dropExcess)
		}
		candidates = candidates[:g.limit]
	}

	out := make([]models.RecommendedMovie, 0, len(candidates))
	for _, c := range candidates {
		if c.Title == nil || strings.TrimSpace(*c.Title) == "" {
			metrics.RecordCandidateDropped(dropMissingTitle)
			continue
		}

		movie, ok := g.catalog.ByTitle(ctx, *c.Title)
		if !ok {
			metrics.RecordCandidateDropped(dropUnresolved)
			continue
		}

		reason := DefaultReason
		if c.Reason != nil && strings.TrimSpace(*c.Reason) != "" {
			reason = *c.Reason
		}
		out = append(out, models.NewRecommendedMovie(movie, reason))
	}
	return out
}

// parseCandidates strips an optional code fence and decodes a JSON array.
func parseCandidates(raw string) ([]candidate, error) {
	var candidates []candidate
	if err := json.Unmarshal([]byte(genai.StripCodeFences(raw)), &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return candidates, nil
}

func buildRecommendationPrompt(narrative string, n int) string {
	var b strings.Builder
	b.WriteString("Here is a movie lover's preference profile, built from their reviews:\n\n")
	b.WriteString(narrative)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Recommend exactly %d movies this user has not reviewed yet. ", n)
	fmt.Fprintf(&b, "Respond with a JSON array of exactly %d objects, each with the keys ", n)
	b.WriteString(`"title" (the movie title as listed on TMDb) and "reason" `)
	b.WriteString("(why this user will enjoy it, at most 60 words). ")
	b.WriteString("Return only the JSON array with no text before or after it.")
	return b.String()
}
