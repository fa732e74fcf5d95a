// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package middleware provides HTTP middleware shared by every route.

Key Components:

  - RequestID: accepts a well-formed inbound X-Request-ID or generates a UUID,
    echoes it on the response and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    the chi route pattern, so path parameters do not explode cardinality
  - Compression: gzip for clients that accept it

All middleware uses the func(http.Handler) http.Handler shape so it can be
passed to chi's r.Use directly:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

See Also:

  - internal/api: router and handlers
  - internal/metrics: Prometheus metric definitions
*/
package middleware
