// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/moview/internal/config"
)

const inceptionJSON = `{
  "id": 27205, "title": "Inception", "adult": false,
  "overview": "A thief who steals corporate secrets through dream-sharing technology.",
  "poster_path": "/inception.jpg", "backdrop_path": "/inception_bg.jpg",
  "release_date": "2010-07-15", "vote_average": 8.4, "runtime": 148,
  "genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}, {"id": 12, "name": "Adventure"}],
  "production_companies": [{"name": "Legendary Pictures"}, {"name": "Syncopy"}, {"name": "Warner Bros. Pictures"}, {"name": "Extra Co"}],
  "keywords": {"keywords": [
    {"name": "dream"}, {"name": "heist"}, {"name": "subconscious"}, {"name": "memory"}, {"name": "paris"},
    {"name": "architecture"}, {"name": "kidnapping"}, {"name": "mind"}, {"name": "spinning top"}, {"name": "limbo"},
    {"name": "eleventh"}, {"name": "twelfth"}
  ]}
}`

// fakeCatalog serves a small TMDb-shaped API and counts calls per path.
type fakeCatalog struct {
	srv   *httptest.Server
	calls atomic.Int64
}

func newFakeCatalog(t *testing.T, handler http.HandlerFunc) *fakeCatalog {
	t.Helper()
	f := &fakeCatalog{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.URL.Query().Get("api_key") != "test-key" {
			http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeCatalog) config() *config.CatalogConfig {
	return &config.CatalogConfig{
		BaseURL:      f.srv.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		APIKey:       "test-key",
		Timeout:      2 * time.Second,
	}
}

func tmdbHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/movie/27205":
		fmt.Fprint(w, inceptionJSON)
	case "/movie/666":
		fmt.Fprint(w, `{"id": 666, "title": "Adult Film", "adult": true}`)
	case "/movie/500":
		http.Error(w, `{"status_message":"boom"}`, http.StatusInternalServerError)
	case "/search/movie":
		switch strings.ToLower(r.URL.Query().Get("query")) {
		case "inception":
			fmt.Fprint(w, `{"page":1,"results":[
				{"id":27205,"title":"Inception","poster_path":"/inception.jpg"},
				{"id":64956,"title":"Inception: The Cobol Job"}]}`)
		case "broken details":
			fmt.Fprint(w, `{"page":1,"results":[{"id":500,"title":"Broken Details","overview":"From search","vote_average":6.1,"release_date":"2001-01-01"}]}`)
		default:
			fmt.Fprint(w, `{"page":1,"results":[]}`)
		}
	case "/movie/popular":
		fmt.Fprint(w, `{"page":1,"results":[{"id":27205,"title":"Inception","poster_path":"/p.jpg","backdrop_path":"/b.jpg"},{"id":2,"title":"No Art","poster_path":null}]}`)
	default:
		http.Error(w, `{"status_message":"not found"}`, http.StatusNotFound)
	}
}

func TestClientMovieByIDNormalizes(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	c := NewClient(f.config())

	m, err := c.MovieByID(context.Background(), 27205)
	if err != nil {
		t.Fatalf("MovieByID: %v", err)
	}
	if m.Title != "Inception" || m.Runtime != 148 || m.PosterPath != "/inception.jpg" {
		t.Errorf("unexpected metadata: %+v", m)
	}
	if len(m.Keywords) != 10 {
		t.Errorf("keywords = %d, want capped at 10", len(m.Keywords))
	}
	if len(m.ProductionCompanies) != 3 {
		t.Errorf("companies = %d, want capped at 3", len(m.ProductionCompanies))
	}
	if len(m.Genres) != 3 || m.Genres[0] != "Action" {
		t.Errorf("genres = %v", m.Genres)
	}
}

func TestClientErrors(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	c := NewClient(f.config())
	ctx := context.Background()

	tests := []struct {
		name string
		id   int
		want error
	}{
		{"not found", 404, ErrNotFound},
		{"adult", 666, ErrAdultContent},
		{"server error", 500, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.MovieByID(ctx, tt.id); !errors.Is(err, tt.want) {
				t.Errorf("MovieByID(%d) error = %v, want %v", tt.id, err, tt.want)
			}
		})
	}
}

func TestClientNotConfigured(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	cfg := f.config()
	cfg.APIKey = ""
	c := NewClient(cfg)

	if c.Configured() {
		t.Error("Configured() = true without key")
	}
	if _, err := c.PopularMovies(context.Background(), 1); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
	if f.calls.Load() != 0 {
		t.Errorf("made %d upstream calls without a key", f.calls.Load())
	}
}

func TestClientTimeoutIsUnavailable(t *testing.T) {
	f := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	cfg := f.config()
	cfg.Timeout = 50 * time.Millisecond
	c := NewClient(cfg)

	_, err := c.MovieByID(context.Background(), 1)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
	if strings.Contains(fmt.Sprint(err), "test-key") {
		t.Errorf("error leaks API key: %v", err)
	}
}

func TestPopularMoviesAddsImageURLs(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	c := NewClient(f.config())

	page, err := c.PopularMovies(context.Background(), 0)
	if err != nil {
		t.Fatalf("PopularMovies: %v", err)
	}
	results := page["results"].([]any)
	first := results[0].(map[string]any)
	if first["poster_url"] != "https://image.tmdb.org/t/p/w500/p.jpg" {
		t.Errorf("poster_url = %v", first["poster_url"])
	}
	if first["backdrop_url"] != "https://image.tmdb.org/t/p/w1280/b.jpg" {
		t.Errorf("backdrop_url = %v", first["backdrop_url"])
	}
	if _, ok := results[1].(map[string]any)["poster_url"]; ok {
		t.Error("poster_url added for null poster_path")
	}
}

func TestMovieDetails(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	c := NewClient(f.config())
	ctx := context.Background()

	m, err := c.MovieDetails(ctx, 27205)
	if err != nil {
		t.Fatalf("MovieDetails: %v", err)
	}
	if m["poster_url"] != "https://image.tmdb.org/t/p/w500/inception.jpg" {
		t.Errorf("poster_url = %v", m["poster_url"])
	}
	if _, err := c.MovieDetails(ctx, 666); !errors.Is(err, ErrAdultContent) {
		t.Errorf("adult error = %v", err)
	}
	if _, err := c.MovieDetails(ctx, 12); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing error = %v", err)
	}
}

func TestResolverByID(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	r := NewResolver(NewClient(f.config()), nil)
	ctx := context.Background()

	if m, ok := r.ByID(ctx, 27205); !ok || m.Title != "Inception" {
		t.Errorf("ByID(27205) = %+v, %v", m, ok)
	}
	for _, id := range []int{404, 500, 666} {
		if m, ok := r.ByID(ctx, id); ok || m != nil {
			t.Errorf("ByID(%d) = %+v, %v; want unavailable", id, m, ok)
		}
	}
}

func TestOpenBreakerIsSharedAndAbsorbed(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	client := NewClient(f.config())
	ctx := context.Background()

	// One resolver per request, both backed by the process-wide client.
	first := NewResolver(client, nil)
	for range 10 {
		if _, ok := first.ByID(ctx, 500); ok {
			t.Fatal("ByID(500) resolved, want unavailable")
		}
	}
	if got := client.BreakerState(); got != "open" {
		t.Fatalf("BreakerState() = %q, want open", got)
	}

	before := f.calls.Load()
	second := NewResolver(client, nil)
	if m, ok := second.ByID(ctx, 27205); ok || m != nil {
		t.Errorf("ByID(27205) = %+v, %v; want unavailable while open", m, ok)
	}
	if m, ok := second.ByTitle(ctx, "Inception"); ok || m != nil {
		t.Errorf("ByTitle(Inception) = %+v, %v; want unavailable while open", m, ok)
	}
	if f.calls.Load() != before {
		t.Errorf("made %d upstream calls with the circuit open", f.calls.Load()-before)
	}
	if _, err := client.MovieByID(ctx, 27205); !errors.Is(err, ErrUnavailable) {
		t.Errorf("MovieByID error = %v, want ErrUnavailable", err)
	}
}

func TestResolverByTitle(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	r := NewResolver(NewClient(f.config()), nil)
	ctx := context.Background()

	t.Run("first result wins and details are fetched", func(t *testing.T) {
		m, ok := r.ByTitle(ctx, "Inception")
		if !ok || m.ID != 27205 || len(m.Keywords) == 0 {
			t.Errorf("ByTitle = %+v, %v", m, ok)
		}
	})

	t.Run("details failure falls back to search fields", func(t *testing.T) {
		m, ok := r.ByTitle(ctx, "Broken Details")
		if !ok {
			t.Fatal("ByTitle unavailable, want search fallback")
		}
		if m.ID != 500 || m.Overview != "From search" || m.VoteAverage != 6.1 {
			t.Errorf("fallback metadata = %+v", m)
		}
	})

	t.Run("no results", func(t *testing.T) {
		if _, ok := r.ByTitle(ctx, "Zzzz Unknown"); ok {
			t.Error("ByTitle resolved a title with no results")
		}
	})

	t.Run("blank title skips the network", func(t *testing.T) {
		before := f.calls.Load()
		if _, ok := r.ByTitle(ctx, "   "); ok {
			t.Error("ByTitle resolved a blank title")
		}
		if f.calls.Load() != before {
			t.Error("blank title hit the catalog")
		}
	})
}

func TestResolverUsesCache(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	cfg := f.config()
	cfg.CacheSize = 10
	cfg.CacheTTL = time.Hour

	cache, err := NewCache(cfg)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	r := NewResolver(NewClient(cfg), cache)
	ctx := context.Background()

	if _, ok := r.ByTitle(ctx, "Inception"); !ok {
		t.Fatal("first ByTitle failed")
	}
	calls := f.calls.Load()
	if _, ok := r.ByTitle(ctx, "inception"); !ok {
		t.Fatal("cached ByTitle failed")
	}
	if _, ok := r.ByID(ctx, 27205); !ok {
		t.Fatal("cached ByID failed")
	}
	if f.calls.Load() != calls {
		t.Errorf("cache miss: %d extra upstream calls", f.calls.Load()-calls)
	}
	if cache.Len() != 2 {
		t.Errorf("cache.Len() = %d, want 2 (id and title keys)", cache.Len())
	}
}

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache(&config.CatalogConfig{CacheSize: 0})
	if err != nil || c != nil {
		t.Fatalf("NewCache(size 0) = %v, %v; want nil, nil", c, err)
	}
	if _, ok := c.Get("id:1"); ok {
		t.Error("nil cache returned a hit")
	}
	c.Set("id:1", nil)
	if n, err := c.Maintain(); n != 0 || err != nil {
		t.Errorf("Maintain on nil cache = %d, %v", n, err)
	}
}

func TestResolverCancelledContext(t *testing.T) {
	f := newFakeCatalog(t, tmdbHandler)
	r := NewResolver(NewClient(f.config()), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := r.ByTitle(ctx, "Inception"); ok {
		t.Error("ByTitle resolved with a cancelled context")
	}
}
