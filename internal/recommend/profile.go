// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package recommend

import (
	"context"
	"slices"
	"time"

	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/models"
)

// Rating thresholds for the like and dislike partitions.
const (
	HighRatingThreshold = 4.0
	LowRatingThreshold  = 2.5
)

// Profile limits.
const (
	DefaultMaxExemplars = 5
	maxFavoriteGenres   = 5
	maxFavoriteKeywords = 8
)

// Exemplar is a highly rated review together with the catalog metadata of
// its movie. Movie is nil when the catalog could not resolve it.
type Exemplar struct {
	Review models.Review
	Movie  *models.MovieMetadata
}

// Profile is the taste profile of one user. It is built per request and
// never stored.
type Profile struct {
	ReviewCount      int
	HighRated        []models.Review
	LowRated         []models.Review
	Exemplars        []Exemplar
	FavoriteGenres   []string
	FavoriteKeywords []string
	Narrative        string
}

// Resolved reports how many exemplars the catalog resolved.
func (p *Profile) Resolved() int {
	n := 0
	for _, ex := range p.Exemplars {
		if ex.Movie != nil {
			n++
		}
	}
	return n
}

// Profiler builds preference profiles.
type Profiler struct {
	catalog      Catalog
	delay        DelayFunc
	interval     time.Duration
	maxExemplars int
}

// NewProfiler returns a Profiler resolving at most maxExemplars movies and
// waiting interval (through delay) between consecutive lookups.
func NewProfiler(catalog Catalog, delay DelayFunc, interval time.Duration, maxExemplars int) *Profiler {
	if delay == nil {
		delay = Sleep
	}
	if maxExemplars <= 0 {
		maxExemplars = DefaultMaxExemplars
	}
	return &Profiler{
		catalog:      catalog,
		delay:        delay,
		interval:     interval,
		maxExemplars: maxExemplars,
	}
}

// Build profiles reviews, which must not be empty. Catalog failures only
// remove an exemplar's genres and keywords; Build always returns a profile
// with a non-empty narrative.
func (p *Profiler) Build(ctx context.Context, reviews []models.Review) *Profile {
	profile := &Profile{ReviewCount: len(reviews)}
	profile.HighRated, profile.LowRated = partition(reviews)

	profile.Exemplars = p.resolveExemplars(ctx, profile.HighRated)
	profile.FavoriteGenres, profile.FavoriteKeywords = aggregate(profile.Exemplars)
	profile.Narrative = composeNarrative(profile, reviews)

	logging.Ctx(ctx).Debug().
		Int("reviews", profile.ReviewCount).
		Int("high_rated", len(profile.HighRated)).
		Int("low_rated", len(profile.LowRated)).
		Int("resolved", profile.Resolved()).
		Msg("Built preference profile")

	return profile
}

// partition splits reviews into high rated (best first, ties keep input
// order) and low rated (input order).
func partition(reviews []models.Review) (high, low []models.Review) {
	for _, r := range reviews {
		switch {
		case r.Rating >= HighRatingThreshold:
			high = append(high, r)
		case r.Rating <= LowRatingThreshold:
			low = append(low, r)
		}
	}
	slices.SortStableFunc(high, func(a, b models.Review) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		return 0
	})
	return high, low
}

// resolveExemplars looks the top movies up one after another. The delay runs
// between lookups, never before the first one. A cancelled context stops the
// loop and keeps what was resolved so far.
func (p *Profiler) resolveExemplars(ctx context.Context, high []models.Review) []Exemplar {
	n := min(p.maxExemplars, len(high))
	exemplars := make([]Exemplar, 0, n)

	for i := range n {
		if i > 0 {
			if err := p.delay(ctx, p.interval); err != nil {
				logging.Ctx(ctx).Debug().Err(err).Int("resolved", i).Msg("Exemplar resolution interrupted")
				break
			}
		}
		movie, _ := p.catalog.ByID(ctx, high[i].MovieID)
		exemplars = append(exemplars, Exemplar{Review: high[i], Movie: movie})
	}
	return exemplars
}

// counter ranks strings by frequency, earliest first on ties.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(s string) {
	if _, ok := c.counts[s]; !ok {
		c.order = append(c.order, s)
	}
	c.counts[s]++
}

func (c *counter) top(n int) []string {
	ranked := slices.Clone(c.order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return c.counts[b] - c.counts[a]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// aggregate counts each genre and keyword once per resolved movie.
func aggregate(exemplars []Exemplar) (genres, keywords []string) {
	g, k := newCounter(), newCounter()
	for _, ex := range exemplars {
		if ex.Movie == nil {
			continue
		}
		for _, name := range unique(ex.Movie.Genres) {
			g.add(name)
		}
		for _, name := range unique(ex.Movie.Keywords) {
			k.add(name)
		}
	}
	return g.top(maxFavoriteGenres), k.top(maxFavoriteKeywords)
}

func unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
