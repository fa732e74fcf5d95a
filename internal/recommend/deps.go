// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package recommend

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/tomtom215/moview/internal/models"
)

// Catalog resolves movies. A false result means the movie is unknown or the
// catalog is unavailable; callers skip it either way.
type Catalog interface {
	ByID(ctx context.Context, id int) (*models.MovieMetadata, bool)
	ByTitle(ctx context.Context, title string) (*models.MovieMetadata, bool)
}

// ReviewSource is the read side of the review store.
type ReviewSource interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	ListReviewsByUser(ctx context.Context, userID string) ([]models.Review, error)
}

// DelayFunc suspends the pipeline for d or until ctx is done.
type DelayFunc func(ctx context.Context, d time.Duration) error

// Rand picks the default fallback pool.
type Rand interface {
	IntN(n int) int
}

// Sleep is the production DelayFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoDelay skips the throttle.
func NoDelay(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// globalRand uses the concurrency safe top level functions of math/rand/v2.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}
