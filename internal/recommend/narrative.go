// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/moview/internal/models"
)

// Narrative snippet limits.
const (
	maxNarrativeExemplars = 5
	maxDislikedExemplars  = 2
	maxExemplarGenres     = 3
	likedSnippetRunes     = 100
	dislikedSnippetRunes  = 80
)

// composeNarrative writes the profile as plain text for the generative
// service. The output depends only on its inputs.
func composeNarrative(p *Profile, reviews []models.Review) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The user has written %d %s: %d rated 4 stars or higher and %d rated 2.5 stars or lower.\n",
		p.ReviewCount, plural(p.ReviewCount, "review", "reviews"), len(p.HighRated), len(p.LowRated))

	if len(p.FavoriteGenres) > 0 {
		fmt.Fprintf(&b, "Favorite genres: %s.\n", strings.Join(p.FavoriteGenres, ", "))
	}
	if len(p.FavoriteKeywords) > 0 {
		fmt.Fprintf(&b, "Favorite keywords: %s.\n", strings.Join(p.FavoriteKeywords, ", "))
	}
	if p.Resolved() == 0 {
		fmt.Fprintf(&b, "Reviewed movie IDs: %s.\n", movieIDs(reviews))
	}

	if len(p.Exemplars) > 0 {
		b.WriteString("Movies the user loved:\n")
		for _, ex := range p.Exemplars[:min(maxNarrativeExemplars, len(p.Exemplars))] {
			b.WriteString("- ")
			b.WriteString(exemplarLine(ex))
			b.WriteByte('\n')
		}
	}

	if len(p.LowRated) > 0 {
		b.WriteString("Movies the user disliked:\n")
		for _, r := range p.LowRated[:min(maxDislikedExemplars, len(p.LowRated))] {
			fmt.Fprintf(&b, "- movie %d rated %.1f/5: %q\n", r.MovieID, r.Rating, truncate(r.Content, dislikedSnippetRunes))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func exemplarLine(ex Exemplar) string {
	r := ex.Review
	if ex.Movie == nil {
		return fmt.Sprintf("movie %d rated %.1f/5: %q", r.MovieID, r.Rating, truncate(r.Content, likedSnippetRunes))
	}

	title := ex.Movie.Title
	if title == "" {
		title = "movie " + strconv.Itoa(r.MovieID)
	}
	line := fmt.Sprintf("%s rated %.1f/5", title, r.Rating)
	if genres := ex.Movie.Genres; len(genres) > 0 {
		line += " (" + strings.Join(genres[:min(maxExemplarGenres, len(genres))], ", ") + ")"
	}
	return line + fmt.Sprintf(": %q", truncate(r.Content, likedSnippetRunes))
}

func movieIDs(reviews []models.Review) string {
	ids := make([]string, len(reviews))
	for i, r := range reviews {
		ids[i] = strconv.Itoa(r.MovieID)
	}
	return strings.Join(ids, ", ")
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
