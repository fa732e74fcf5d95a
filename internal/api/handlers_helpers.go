// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/models"
	"github.com/tomtom215/moview/internal/validation"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope. start, when non-zero,
// fills query_time_ms.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	meta := models.Metadata{Timestamp: time.Now()}
	if !start.IsZero() {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError sends the error envelope. err, when set, is logged and never
// shown to the client.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", code).
			Str("error", logging.Sanitize(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondAPIError sends a prepared APIError, keeping its details.
func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeAndValidate reads a JSON body into v and validates it. On failure the
// response has been written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body too large", nil)
		case errors.Is(err, io.EOF):
			respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is required", nil)
		default:
			respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON request body", nil)
		}
		return false
	}

	if apiErr := validateRequest(v); apiErr != nil {
		respondAPIError(w, http.StatusUnprocessableEntity, apiErr)
		return false
	}
	return true
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// movieIDParam parses the {movie_id} path parameter. Non-positive or
// non-numeric IDs get a 400 and false.
func movieIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "movie_id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "INVALID_MOVIE_ID", "movie_id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// userIDParam returns the trimmed {user_id} path parameter.
func userIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "user_id"))
}
