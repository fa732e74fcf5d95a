// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package catalog

import (
	"context"
	"net/url"
	"strconv"
)

// Page is a raw catalog listing passed through to clients with image URLs
// added to every result.
type Page map[string]any

// Movie is a raw catalog details document with image URLs added.
type Movie map[string]any

// PopularMovies lists popular movies. Adult titles are excluded upstream.
func (c *Client) PopularMovies(ctx context.Context, page int) (Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("language", "en-US")
	q.Set("include_adult", "false")

	var out Page
	if err := c.getJSON(ctx, "popular", "/movie/popular", q, &out); err != nil {
		return nil, err
	}
	c.decorateResults(out)
	return out, nil
}

// SearchMovies searches by title.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (Page, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("language", "en-US")
	q.Set("include_adult", "false")

	var out Page
	if err := c.getJSON(ctx, "search", "/search/movie", q, &out); err != nil {
		return nil, err
	}
	c.decorateResults(out)
	return out, nil
}

// MovieDetails returns the full details document with credits, videos and
// reviews appended. Adult titles yield ErrAdultContent.
func (c *Client) MovieDetails(ctx context.Context, id int) (Movie, error) {
	q := url.Values{}
	q.Set("language", "en-US")
	q.Set("append_to_response", "credits,videos,reviews")

	var out Movie
	if err := c.getJSON(ctx, "details", "/movie/"+strconv.Itoa(id), q, &out); err != nil {
		return nil, err
	}
	if adult, _ := out["adult"].(bool); adult {
		return nil, ErrAdultContent
	}
	c.decorate(out)
	return out, nil
}

func (c *Client) decorateResults(page Page) {
	results, _ := page["results"].([]any)
	for _, r := range results {
		if m, ok := r.(map[string]any); ok {
			c.decorate(m)
		}
	}
}

// decorate adds poster_url and backdrop_url when the paths are present.
func (c *Client) decorate(m map[string]any) {
	if p, ok := m["poster_path"].(string); ok && p != "" {
		m["poster_url"] = c.posterURL(p)
	}
	if p, ok := m["backdrop_path"].(string); ok && p != "" {
		m["backdrop_url"] = c.backdropURL(p)
	}
}
