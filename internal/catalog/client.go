// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moview/internal/breaker"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
	"github.com/tomtom215/moview/internal/models"
)

// maxErrorBodySize bounds how much of a failed response is kept for diagnostics.
const maxErrorBodySize = 512

// Image sizes appended to poster and backdrop paths.
const (
	posterSize   = "w500"
	backdropSize = "w1280"
)

// Client is an HTTP client for the catalog API.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	timeout      time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter // nil = unthrottled
	breaker    *breaker.Breaker
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg *config.CatalogConfig) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		timeout:      cfg.Timeout,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}

	s := breaker.DefaultSettings("catalog")
	s.IsSuccessful = countsAsHealthy
	c.breaker = breaker.New(s)
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// MovieByID fetches details with keywords appended and normalizes them.
func (c *Client) MovieByID(ctx context.Context, id int) (*models.MovieMetadata, error) {
	var m tmdbMovie
	q := url.Values{}
	q.Set("language", "en-US")
	q.Set("append_to_response", "keywords")
	if err := c.getJSON(ctx, "movie", "/movie/"+strconv.Itoa(id), q, &m); err != nil {
		return nil, err
	}
	if m.Adult {
		return nil, ErrAdultContent
	}
	return m.toMetadata(), nil
}

// SearchFirst returns the first search hit for title. No fuzzy scoring is
// applied; the catalog's own ranking decides.
func (c *Client) SearchFirst(ctx context.Context, title string) (*models.MovieMetadata, error) {
	var page tmdbSearchPage
	q := url.Values{}
	q.Set("query", title)
	q.Set("language", "en-US")
	q.Set("include_adult", "false")
	if err := c.getJSON(ctx, "search", "/search/movie", q, &page); err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, ErrNotFound
	}
	return page.Results[0].toMetadata(), nil
}

// getJSON performs one bounded, throttled, breaker-guarded GET and decodes
// the body into out.
func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	_, err := breaker.Execute(c.breaker, func() (struct{}, error) {
		return struct{}{}, c.do(ctx, path, query, out)
	})
	metrics.RecordCatalogRequest(operation, outcomeOf(err), time.Since(start))

	if err != nil {
		if errors.Is(err, breaker.ErrOpen) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		logging.Ctx(ctx).Debug().
			Str("operation", operation).
			Str("path", path).
			Err(err).
			Msg("Catalog request failed")
	}
	return err
}

func (c *Client) do(ctx context.Context, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait: %v", ErrUnavailable, err)
		}
	}

	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			return context.Canceled
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return fmt.Errorf("%w: %w", ErrUnavailable, context.DeadlineExceeded)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, redactKey(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

// redactKey keeps the API key out of error strings, which embed the URL.
func redactKey(msg, key string) string {
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "REDACTED")
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAdultContent):
		return "not_found"
	case errors.Is(err, breaker.ErrOpen):
		return "rejected"
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeFailure
	}
}

func (c *Client) posterURL(path string) string {
	return c.imageBaseURL + "/" + posterSize + path
}

func (c *Client) backdropURL(path string) string {
	return c.imageBaseURL + "/" + backdropSize + path
}
