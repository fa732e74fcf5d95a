// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/moview/internal/auth"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	authMiddleware *auth.Middleware // nil when AUTH_MODE=none
}

// NewRouter creates a router. authMiddleware may be nil, in which case the
// /api/v1/auth routes are not mounted.
func NewRouter(cfg *config.Config, handler *Handler, authMiddleware *auth.Middleware) *Router {
	return &Router{
		handler:        handler,
		chiMiddleware:  NewChiMiddlewareFromConfig(&cfg.Security),
		authMiddleware: authMiddleware,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.PrometheusMetrics)
	r.Use(APISecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/", router.handler.Root)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	if router.authMiddleware != nil {
		r.Route("/api/v1/auth", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAuth())

			r.Post("/register", router.handler.Register)
			r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)

			r.Group(func(r chi.Router) {
				r.Use(router.authMiddleware.Authenticate)
				r.Get("/me", router.handler.Me)
				r.Post("/verify-token", router.handler.VerifyToken)
			})
		})
	}

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.Compression)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/popular", router.handler.PopularMovies)
			r.Get("/search", router.handler.SearchMovies)
			r.Get("/{movie_id}", router.handler.MovieDetails)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitWrite()).Post("/", router.handler.CreateReview)
			r.Get("/user/{user_id}", router.handler.ReviewsByUser)
			r.Get("/stats/{movie_id}", router.handler.MovieStats)
			r.Get("/{movie_id}", router.handler.ReviewsByMovie)
		})

		r.With(router.chiMiddleware.RateLimitGenerative()).
			Post("/sentiment/analyze", router.handler.AnalyzeSentiment)
		r.With(router.chiMiddleware.RateLimitGenerative()).
			Get("/recommendations/{user_id}", router.handler.Recommendations)
	})

	return r
}
