// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package api provides the HTTP surface of MoView on a chi router.

Every response uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "query_time_ms": 12}}
	{"status": "error", "data": null, "metadata": {...}, "error": {"code": "USER_NOT_FOUND", "message": "User not found"}}

Routes:

	GET  /                                   welcome message
	GET  /metrics                            Prometheus
	GET  /api/v1/health                      database and catalog status
	GET  /api/v1/health/live                 liveness
	POST /api/v1/auth/register               (AUTH_MODE=jwt only)
	POST /api/v1/auth/login
	GET  /api/v1/auth/me                     bearer token
	POST /api/v1/auth/verify-token           bearer token
	GET  /api/v1/movies/popular?page=
	GET  /api/v1/movies/search?q=&page=
	GET  /api/v1/movies/{movie_id}
	POST /api/v1/reviews
	GET  /api/v1/reviews/{movie_id}
	GET  /api/v1/reviews/user/{user_id}
	GET  /api/v1/reviews/stats/{movie_id}
	POST /api/v1/sentiment/analyze
	GET  /api/v1/recommendations/{user_id}

Validation failures answer 422 with field details; malformed JSON answers 400.
Rate limits are per client IP through go-chi/httprate, with stricter limits
on login, writes and endpoints that may call the generative service.
*/
package api
