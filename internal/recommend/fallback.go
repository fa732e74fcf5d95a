// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package recommend

import (
	"context"
	"strings"

	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// FallbackReason is attached to every fallback recommendation.
const FallbackReason = "Popular movie that many users enjoy"

// Pool is a curated list of well known titles.
type Pool struct {
	Name   string
	Titles [4]string
}

// Curated pools. The order of fallbackRules matters: the first rule whose
// keywords appear in the narrative wins.
var (
	ActionPool = Pool{Name: "action", Titles: [4]string{
		"The Dark Knight", "Mad Max: Fury Road", "Raiders of the Lost Ark", "Gladiator",
	}}
	DramaPool = Pool{Name: "drama", Titles: [4]string{
		"The Shawshank Redemption", "Forrest Gump", "The Green Mile", "Good Will Hunting",
	}}
	ComedyPool = Pool{Name: "comedy", Titles: [4]string{
		"The Grand Budapest Hotel", "Superbad", "Groundhog Day", "The Big Lebowski",
	}}
	HorrorPool = Pool{Name: "horror", Titles: [4]string{
		"Get Out", "The Silence of the Lambs", "Hereditary", "The Shining",
	}}
	SciFiPool = Pool{Name: "sci-fi", Titles: [4]string{
		"Inception", "Interstellar", "Blade Runner 2049", "The Matrix",
	}}

	// DefaultPools are chosen from at random when no rule matches.
	DefaultPools = [4]Pool{
		{Name: "classics", Titles: [4]string{"The Godfather", "Pulp Fiction", "Schindler's List", "Casablanca"}},
		{Name: "crowd-pleasers", Titles: [4]string{"Back to the Future", "Jurassic Park", "Toy Story", "The Lion King"}},
		{Name: "modern-acclaim", Titles: [4]string{"Parasite", "Whiplash", "La La Land", "Spider-Man: Into the Spider-Verse"}},
		{Name: "world-cinema", Titles: [4]string{"Spirited Away", "Amélie", "City of God", "Cinema Paradiso"}},
	}
)

type fallbackRule struct {
	keywords []string
	pool     Pool
}

var fallbackRules = []fallbackRule{
	{keywords: []string{"action", "adventure"}, pool: ActionPool},
	{keywords: []string{"drama", "emotional"}, pool: DramaPool},
	{keywords: []string{"comedy", "funny"}, pool: ComedyPool},
	{keywords: []string{"horror", "thriller"}, pool: HorrorPool},
	{keywords: []string{"sci-fi", "science"}, pool: SciFiPool},
}

// FallbackSelector picks curated recommendations without the generative
// service.
type FallbackSelector struct {
	catalog Catalog
	rand    Rand
}

// NewFallbackSelector returns a selector. A nil rnd uses the shared
// generator from math/rand/v2.
func NewFallbackSelector(catalog Catalog, rnd Rand) *FallbackSelector {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &FallbackSelector{catalog: catalog, rand: rnd}
}

// Pick returns the pool for narrative. Matching ignores case.
func (f *FallbackSelector) Pick(narrative string) Pool {
	lower := strings.ToLower(narrative)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.pool
			}
		}
	}
	return DefaultPools[f.rand.IntN(len(DefaultPools))]
}

// Select resolves the chosen pool through the catalog. Titles that do not
// resolve are dropped without replacement, so the result may be shorter
// than four and is empty when the catalog is down.
func (f *FallbackSelector) Select(ctx context.Context, narrative string) []models.RecommendedMovie {
	pool := f.Pick(narrative)

	out := make([]models.RecommendedMovie, 0, len(pool.Titles))
	for _, title := range pool.Titles {
		movie, ok := f.catalog.ByTitle(ctx, title)
		if !ok {
			metrics.RecordCandidateDropped(dropUnresolved)
			continue
		}
		out = append(out, models.NewRecommendedMovie(movie, FallbackReason))
	}

	logging.Ctx(ctx).Info().
		Str("pool", pool.Name).
		Int("resolved", len(out)).
		Msg("Served fallback recommendations")
	return out
}
