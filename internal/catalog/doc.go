// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package catalog talks to the external movie catalog (TMDb v3 compatible).

Two layers are exposed:

  - Client issues the HTTP calls. Every call is bounded by the configured
    timeout (10s by default), throttled by an outbound token bucket and
    guarded by a circuit breaker. Errors are returned to the caller.
  - Resolver turns Client calls into movie metadata for the recommendation
    pipeline and never fails: any error is logged and reported as
    "unavailable" so callers can skip and continue.

The movie browsing endpoints use Client directly because they must report
404 and 403 to the end user.
*/
package catalog
