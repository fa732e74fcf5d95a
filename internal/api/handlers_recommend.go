// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/moview/internal/recommend"
)

// Recommendations returns up to four personalized movies for a user.
//
// @Summary Personalized recommendations
// @Description Builds a taste profile from the user's reviews, asks the generative service for titles and resolves them against the catalog. Falls back to curated pools when that yields nothing.
// @Tags Recommendations
// @Produce json
// @Param user_id path string true "user ID"
// @Success 200 {object} models.APIResponse{data=models.RecommendationResponse}
// @Failure 400 {object} models.APIResponse "user has no reviews yet"
// @Failure 404 {object} models.APIResponse "user not found"
// @Router /recommendations/{user_id} [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := userIDParam(r)

	resp, err := h.recommender.Recommend(r.Context(), userID)
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
		return
	case errors.Is(err, recommend.ErrNoReviewsYet):
		respondError(w, http.StatusBadRequest, "NO_REVIEWS", "No reviews found. Add some reviews to get personalized recommendations.", nil)
		return
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful can be written.
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate recommendations", err)
		return
	}

	respondSuccess(w, http.StatusOK, resp, start)
}
