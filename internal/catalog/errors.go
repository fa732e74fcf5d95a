// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package catalog

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the catalog answers 404.
	ErrNotFound = errors.New("movie not found")

	// ErrAdultContent is returned for movies flagged adult.
	ErrAdultContent = errors.New("adult content is not allowed")

	// ErrUnavailable wraps transport failures, timeouts, non-2xx answers and
	// open-circuit rejections.
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("TMDb API key not configured")
)

// countsAsHealthy reports errors that say nothing about catalog health and
// must not trip the breaker.
func countsAsHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAdultContent) ||
		errors.Is(err, context.Canceled)
}
