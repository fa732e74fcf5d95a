// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/moview/internal/models"
)

// AnalyzeSentiment classifies free text.
//
// @Summary Analyze sentiment
// @Description Keyword heuristic by default; the generative path is used when enabled and falls back to the heuristic on failure.
// @Tags Sentiment
// @Accept json
// @Produce json
// @Param body body models.SentimentRequest true "text, 1-1000 characters"
// @Success 200 {object} models.APIResponse{data=models.SentimentResponse}
// @Failure 422 {object} models.APIResponse "validation failed"
// @Router /sentiment/analyze [post]
func (h *Handler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.SentimentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result := h.sentiment.Analyze(r.Context(), req.Text)
	respondSuccess(w, http.StatusOK, models.SentimentResponse{
		Text:            req.Text,
		SentimentResult: result,
	}, start)
}
