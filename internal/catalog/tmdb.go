// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package catalog

import (
	"strings"

	"github.com/tomtom215/moview/internal/models"
)

type tmdbNamed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// tmdbMovie is the subset of GET /movie/{id}?append_to_response=keywords
// that the resolver reads.
type tmdbMovie struct {
	ID                  int         `json:"id"`
	Title               string      `json:"title"`
	Overview            string      `json:"overview"`
	PosterPath          *string     `json:"poster_path"`
	ReleaseDate         string      `json:"release_date"`
	VoteAverage         float64     `json:"vote_average"`
	Runtime             *int        `json:"runtime"`
	Adult               bool        `json:"adult"`
	Genres              []tmdbNamed `json:"genres"`
	ProductionCompanies []tmdbNamed `json:"production_companies"`
	Keywords            struct {
		Keywords []tmdbNamed `json:"keywords"`
	} `json:"keywords"`
}

// tmdbSearchResult is one entry of GET /search/movie.
type tmdbSearchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Adult       bool    `json:"adult"`
}

type tmdbSearchPage struct {
	Page    int                `json:"page"`
	Results []tmdbSearchResult `json:"results"`
}

func namesOf(items []tmdbNamed, limit int) []string {
	out := make([]string, 0, min(len(items), limit))
	for _, it := range items {
		if len(out) == limit {
			break
		}
		if name := strings.TrimSpace(it.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toMetadata normalizes a details response. Keywords are capped at 10 and
// production companies at 3.
func (m *tmdbMovie) toMetadata() *models.MovieMetadata {
	runtime := 0
	if m.Runtime != nil {
		runtime = *m.Runtime
	}
	return &models.MovieMetadata{
		ID:                  m.ID,
		Title:               m.Title,
		Genres:              namesOf(m.Genres, len(m.Genres)),
		Keywords:            namesOf(m.Keywords.Keywords, models.MaxMovieKeywords),
		Overview:            m.Overview,
		PosterPath:          derefString(m.PosterPath),
		ReleaseDate:         m.ReleaseDate,
		VoteAverage:         m.VoteAverage,
		Runtime:             runtime,
		ProductionCompanies: namesOf(m.ProductionCompanies, models.MaxMovieCompanies),
	}
}

// toMetadata builds partial metadata from a search hit. Genres and keywords
// are not part of search results.
func (r *tmdbSearchResult) toMetadata() *models.MovieMetadata {
	return &models.MovieMetadata{
		ID:                  r.ID,
		Title:               r.Title,
		Genres:              []string{},
		Keywords:            []string{},
		Overview:            r.Overview,
		PosterPath:          derefString(r.PosterPath),
		ReleaseDate:         r.ReleaseDate,
		VoteAverage:         r.VoteAverage,
		ProductionCompanies: []string{},
	}
}
