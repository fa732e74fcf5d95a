// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/models"
)

// SentimentFunc labels review content while the review is being created.
type SentimentFunc func(ctx context.Context, content string) (string, error)

// CreateReview stores a review in one transaction:
//
//  1. the user must exist (ErrUserNotFound)
//  2. the user must not have reviewed the movie yet (ErrDuplicateReview)
//  3. the content is labelled; a failing or invalid label is stored as
//     neutral instead of aborting
//  4. the row is inserted and the transaction committed
//
// Any other failure rolls the transaction back, so no partial row remains.
// The returned review carries the author's username.
func (db *DB) CreateReview(ctx context.Context, in *models.NewReview, label SentimentFunc) (review *models.Review, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		switch {
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrDuplicateReview):
			observe("insert", "reviews", start, nil)
		default:
			observe("insert", "reviews", start, err)
		}
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	var username string
	err = tx.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, in.UserID).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE user_id = ? AND movie_id = ?`,
		in.UserID, in.MovieID,
	).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateReview
	}

	sentiment := labelContent(ctx, label, in.Content)

	review = &models.Review{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		MovieID:   in.MovieID,
		Content:   in.Content,
		Rating:    in.Rating,
		Sentiment: &sentiment,
		CreatedAt: time.Now().UTC(),
		Username:  &username,
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reviews (id, user_id, movie_id, content, rating, sentiment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.UserID, review.MovieID, review.Content, review.Rating, sentiment, review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}
	return review, nil
}

// labelContent runs label and falls back to neutral on error, panic or an
// unknown label.
func labelContent(ctx context.Context, label SentimentFunc, content string) (sentiment string) {
	sentiment = models.SentimentNeutral
	if label == nil {
		return sentiment
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Ctx(ctx).Error().Interface("panic", r).Msg("Sentiment labelling panicked, storing neutral")
			sentiment = models.SentimentNeutral
		}
	}()

	got, err := label(ctx, content)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Sentiment labelling failed, storing neutral")
		return models.SentimentNeutral
	}
	if !models.IsValidSentiment(got) {
		logging.Ctx(ctx).Warn().Str("label", logging.Sanitize(got)).Msg("Unknown sentiment label, storing neutral")
		return models.SentimentNeutral
	}
	return got
}

// ListReviewsByMovie returns the reviews of a movie, newest first, with
// author usernames.
func (db *DB) ListReviewsByMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	return db.listReviews(ctx, "r.movie_id = ?", movieID)
}

// ListReviewsByUser returns the reviews written by a user, newest first.
func (db *DB) ListReviewsByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return db.listReviews(ctx, "r.user_id = ?", userID)
}

func (db *DB) listReviews(ctx context.Context, where string, arg any) (reviews []models.Review, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("select", "reviews", start, err) }()

	query := `SELECT r.id, r.user_id, r.movie_id, r.content, r.rating, r.sentiment, r.created_at, u.username
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE ` + where + `
		ORDER BY r.created_at DESC, r.id`

	rows, err := db.conn.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer closeWithLog(rows, "review rows")

	reviews = []models.Review{}
	for rows.Next() {
		var (
			r         models.Review
			sentiment sql.NullString
			username  sql.NullString
		)
		if err = rows.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Content, &r.Rating, &sentiment, &r.CreatedAt, &username); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if sentiment.Valid {
			r.Sentiment = &sentiment.String
		}
		if username.Valid {
			r.Username = &username.String
		}
		reviews = append(reviews, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

// MovieRatingStats returns the average rating (one decimal, 0.0 without
// reviews) and the review count of a movie.
func (db *DB) MovieRatingStats(ctx context.Context, movieID int) (stats *models.MovieRatingStats, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("select", "reviews", start, err) }()

	var avg float64
	var total int64
	err = db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE movie_id = ?`,
		movieID,
	).Scan(&avg, &total)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating stats: %w", err)
	}

	return &models.MovieRatingStats{
		MovieID:       movieID,
		AverageRating: math.Round(avg*10) / 10,
		TotalReviews:  total,
	}, nil
}

// CountReviews returns the number of stored reviews.
func (db *DB) CountReviews(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return n, nil
}
