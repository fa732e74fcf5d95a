// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package models

// Catalog caps applied when metadata is normalized.
const (
	MaxMovieKeywords  = 10
	MaxMovieCompanies = 3
)

// MovieMetadata is the normalized view of a catalog movie used by the
// recommendation pipeline. It is fetched on demand and never persisted in
// the review store.
type MovieMetadata struct {
	ID                  int      `json:"id"`
	Title               string   `json:"title"`
	Genres              []string `json:"genres"`
	Keywords            []string `json:"keywords"`
	Overview            string   `json:"overview"`
	PosterPath          string   `json:"poster_path,omitempty"`
	ReleaseDate         string   `json:"release_date"`
	VoteAverage         float64  `json:"vote_average"`
	Runtime             int      `json:"runtime"`
	ProductionCompanies []string `json:"production_companies"`
}

// RecommendedMovie is one resolved recommendation returned to the client.
type RecommendedMovie struct {
	MovieID     int     `json:"movie_id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Reason      string  `json:"reason"`
}

// NewRecommendedMovie builds a recommendation from resolved metadata. An
// empty poster path is reported as null.
func NewRecommendedMovie(m *MovieMetadata, reason string) RecommendedMovie {
	rec := RecommendedMovie{
		MovieID:     m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		Reason:      reason,
	}
	if m.PosterPath != "" {
		poster := m.PosterPath
		rec.PosterPath = &poster
	}
	return rec
}

// RecommendationResponse is the payload of getRecommendations.
type RecommendationResponse struct {
	UserID          string             `json:"user_id"`
	Recommendations []RecommendedMovie `json:"recommendations"`
}
