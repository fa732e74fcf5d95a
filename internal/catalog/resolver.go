// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// Resolver resolves movies for the recommendation pipeline. Its methods
// never return errors: false means unavailable and the caller skips the
// movie.
type Resolver struct {
	client *Client
	cache  *Cache
}

// NewResolver creates a Resolver. cache may be nil.
func NewResolver(client *Client, cache *Cache) *Resolver {
	return &Resolver{client: client, cache: cache}
}

// ByID resolves a catalog ID to metadata.
func (r *Resolver) ByID(ctx context.Context, id int) (*models.MovieMetadata, bool) {
	m, ok := r.byID(ctx, id)
	metrics.RecordCatalogLookup("id", ok)
	return m, ok
}

func (r *Resolver) byID(ctx context.Context, id int) (*models.MovieMetadata, bool) {
	key := "id:" + strconv.Itoa(id)
	if m, ok := r.cache.Get(key); ok {
		return m, true
	}

	m, err := r.client.MovieByID(ctx, id)
	if err != nil {
		r.logUnavailable(ctx, err, "movie_id", strconv.Itoa(id))
		return nil, false
	}
	r.cache.Set(key, m)
	return m, true
}

// ByTitle resolves a free-text title. The first search hit wins; its full
// details are fetched by ID, and if that fails the search hit's own fields
// are returned instead.
func (r *Resolver) ByTitle(ctx context.Context, title string) (*models.MovieMetadata, bool) {
	m, ok := r.byTitle(ctx, title)
	metrics.RecordCatalogLookup("title", ok)
	return m, ok
}

func (r *Resolver) byTitle(ctx context.Context, title string) (*models.MovieMetadata, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false
	}

	key := "title:" + strings.ToLower(title)
	if m, ok := r.cache.Get(key); ok {
		return m, true
	}

	hit, err := r.client.SearchFirst(ctx, title)
	if err != nil {
		r.logUnavailable(ctx, err, "title", title)
		return nil, false
	}

	m, ok := r.byID(ctx, hit.ID)
	if !ok {
		if ctx.Err() != nil {
			return nil, false
		}
		// Partial metadata is returned but not cached.
		return hit, true
	}
	r.cache.Set(key, m)
	return m, true
}

func (r *Resolver) logUnavailable(ctx context.Context, err error, field, value string) {
	event := logging.Ctx(ctx).Debug()
	if errors.Is(err, ErrUnavailable) {
		event = logging.Ctx(ctx).Warn()
	}
	event.Err(err).Str(field, logging.Sanitize(value)).Msg("Catalog lookup unavailable")
}
