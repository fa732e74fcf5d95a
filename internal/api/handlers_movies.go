// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/moview/internal/catalog"
)

// maxSearchQueryLen bounds the q parameter of movie search.
const maxSearchQueryLen = 200

// PopularMovies proxies the catalog's popular listing.
//
// @Summary Popular movies
// @Tags Movies
// @Produce json
// @Param page query int false "page number (default 1)"
// @Success 200 {object} models.APIResponse
// @Router /movies/popular [get]
func (h *Handler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	page, err := h.catalog.PopularMovies(r.Context(), getIntParam(r, "page", 1))
	if err != nil {
		respondCatalogError(w, "Failed to fetch movies", err)
		return
	}
	respondSuccess(w, http.StatusOK, page, start)
}

// SearchMovies proxies a title search. An empty query is rejected.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "INVALID_QUERY", "Search query cannot be empty", nil)
		return
	}
	if len([]rune(query)) > maxSearchQueryLen {
		respondError(w, http.StatusBadRequest, "INVALID_QUERY", "Search query is too long", nil)
		return
	}

	page, err := h.catalog.SearchMovies(r.Context(), query, getIntParam(r, "page", 1))
	if err != nil {
		respondCatalogError(w, "Failed to search movies", err)
		return
	}
	respondSuccess(w, http.StatusOK, page, start)
}

// MovieDetails returns one movie with credits, videos and reviews appended.
// Adult titles are refused with 403.
func (h *Handler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	movie, err := h.catalog.MovieDetails(r.Context(), id)
	if err != nil {
		respondCatalogError(w, "Failed to fetch movie details", err)
		return
	}
	respondSuccess(w, http.StatusOK, movie, start)
}

// respondCatalogError maps catalog errors to HTTP statuses.
func respondCatalogError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotConfigured):
		respondError(w, http.StatusInternalServerError, "CATALOG_NOT_CONFIGURED", "TMDb API key not configured", nil)
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found", nil)
	case errors.Is(err, catalog.ErrAdultContent):
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Adult content is not allowed", nil)
	case errors.Is(err, catalog.ErrUnavailable):
		respondError(w, http.StatusBadGateway, "CATALOG_UNAVAILABLE", message, err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", message, err)
	}
}
