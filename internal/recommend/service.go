// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/genai"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

var (
	// ErrUserNotFound is returned when the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoReviewsYet is returned when the user has not reviewed anything.
	ErrNoReviewsYet = errors.New("user has no reviews yet; add some reviews to get personalized recommendations")
)

// Recommendation sources, used as the metrics "source" label.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
	SourceEmpty     = "empty"
)

// Deps are the collaborators of a Service. Generator may be nil, in which
// case every request goes straight to the fallback pools. Delay and Rand
// default to the real throttle and math/rand/v2.
type Deps struct {
	Reviews   ReviewSource
	Catalog   Catalog
	Generator genai.Generator
	Delay     DelayFunc
	Rand      Rand
}

// Service runs the recommendation pipeline.
type Service struct {
	reviews   ReviewSource
	profiler  *Profiler
	generator *Generator
	fallback  *FallbackSelector
	limit     int
	timeout   time.Duration
}

// NewService wires the pipeline.
func NewService(cfg config.RecommendConfig, deps Deps) *Service {
	limit := cfg.MaxRecommendations
	if limit <= 0 || limit > DefaultMaxRecommendations {
		limit = DefaultMaxRecommendations
	}
	return &Service{
		reviews:   deps.Reviews,
		profiler:  NewProfiler(deps.Catalog, deps.Delay, cfg.ExemplarDelay, cfg.MaxExemplars),
		generator: NewGenerator(deps.Generator, deps.Catalog, limit),
		fallback:  NewFallbackSelector(deps.Catalog, deps.Rand),
		limit:     limit,
		timeout:   cfg.RequestTimeout,
	}
}

// Recommend returns up to four movies for userID. The user must exist and
// have at least one review; both are checked before any external call.
func (s *Service) Recommend(ctx context.Context, userID string) (*models.RecommendationResponse, error) {
	start := time.Now()

	reviews, err := s.loadReviews(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	profile := s.profiler.Build(ctx, reviews)

	source := SourceGenerated
	recs := s.generator.Generate(ctx, profile.Narrative)
	if len(recs) == 0 {
		source = SourceFallback
		recs = s.fallback.Select(ctx, profile.Narrative)
	}
	if len(recs) > s.limit {
		recs = recs[:s.limit]
	}
	if len(recs) == 0 {
		source = SourceEmpty
		recs = []models.RecommendedMovie{}
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(source, len(recs), elapsed)
	logging.Ctx(ctx).Info().
		Str("user_id", logging.Sanitize(userID)).
		Str("source", source).
		Int("count", len(recs)).
		Dur("elapsed", elapsed).
		Msg("Served recommendations")

	return &models.RecommendationResponse{
		UserID:          userID,
		Recommendations: recs,
	}, nil
}

// Profile builds the taste profile of userID without asking for
// recommendations.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	reviews, err := s.loadReviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiler.Build(ctx, reviews), nil
}

func (s *Service) loadReviews(ctx context.Context, userID string) ([]models.Review, error) {
	exists, err := s.reviews.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	reviews, err := s.reviews.ListReviewsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if len(reviews) == 0 {
		return nil, ErrNoReviewsYet
	}
	return reviews, nil
}
