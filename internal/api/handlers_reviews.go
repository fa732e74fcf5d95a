// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/moview/internal/database"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// CreateReview stores a review and its sentiment label in one transaction.
//
// @Summary Create a review
// @Description The author must exist and may review each movie once. Sentiment failures store "neutral".
// @Tags Reviews
// @Accept json
// @Produce json
// @Param body body models.NewReview true "user_id, movie_id, content 10-1000, rating 1-5"
// @Success 201 {object} models.APIResponse{data=models.Review}
// @Failure 400 {object} models.APIResponse "User has already reviewed this movie"
// @Failure 404 {object} models.APIResponse "User not found"
// @Router /reviews [post]
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req models.NewReview
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.store.CreateReview(r.Context(), &req, h.sentiment.LabelReview)
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		metrics.RecordReviewCreate("user_not_found")
		respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
		return
	case errors.Is(err, database.ErrDuplicateReview):
		metrics.RecordReviewCreate("duplicate")
		respondError(w, http.StatusBadRequest, "DUPLICATE_REVIEW", "User has already reviewed this movie", nil)
		return
	case err != nil:
		metrics.RecordReviewCreate("error")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review", err)
		return
	}

	metrics.RecordReviewCreate("created")
	logging.Ctx(r.Context()).Info().
		Str("review_id", review.ID).
		Int("movie_id", review.MovieID).
		Msg("Review created")
	respondSuccess(w, http.StatusCreated, review, time.Time{})
}

// ReviewsByMovie lists a movie's reviews, newest first, with usernames.
func (h *Handler) ReviewsByMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	reviews, err := h.store.ListReviewsByMovie(r.Context(), movieID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reviews", err)
		return
	}
	respondSuccess(w, http.StatusOK, reviews, start)
}

// ReviewsByUser lists a user's reviews. Unknown users get 404.
func (h *Handler) ReviewsByUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := userIDParam(r)

	exists, err := h.store.UserExists(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch user reviews", err)
		return
	}
	if !exists {
		respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
		return
	}

	reviews, err := h.store.ListReviewsByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch user reviews", err)
		return
	}
	respondSuccess(w, http.StatusOK, reviews, start)
}

// MovieStats returns the average rating (one decimal) and review count.
func (h *Handler) MovieStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	stats, err := h.store.MovieRatingStats(r.Context(), movieID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie stats", err)
		return
	}
	respondSuccess(w, http.StatusOK, stats, start)
}
