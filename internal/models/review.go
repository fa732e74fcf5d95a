// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package models

import "time"

// Review rating and content bounds.
const (
	MinRating        = 1.0
	MaxRating        = 5.0
	MinReviewContent = 10
	MaxReviewContent = 1000
)

// Review is a user's rating and written review of one catalog movie. At most
// one review exists per (UserID, MovieID).
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Content   string    `json:"content"`
	Rating    float64   `json:"rating"`
	Sentiment *string   `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
	Username  *string   `json:"username,omitempty"`
}

// NewReview is the input to review creation.
type NewReview struct {
	UserID  string  `json:"user_id" validate:"required,uuid"`
	MovieID int     `json:"movie_id" validate:"required,gt=0"`
	Content string  `json:"content" validate:"required,notblank,min=10,max=1000"`
	Rating  float64 `json:"rating" validate:"gte=1,lte=5"`
}

// MovieRatingStats aggregates the ratings of one movie.
type MovieRatingStats struct {
	MovieID       int     `json:"movie_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}
