// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package api

import (
	"context"
	"time"

	"github.com/tomtom215/moview/internal/auth"
	"github.com/tomtom215/moview/internal/catalog"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/database"
	"github.com/tomtom215/moview/internal/models"
)

// Store is the persistence the handlers need. *database.DB satisfies it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UserExists(ctx context.Context, id string) (bool, error)

	CreateReview(ctx context.Context, in *models.NewReview, label database.SentimentFunc) (*models.Review, error)
	ListReviewsByMovie(ctx context.Context, movieID int) ([]models.Review, error)
	ListReviewsByUser(ctx context.Context, userID string) ([]models.Review, error)
	MovieRatingStats(ctx context.Context, movieID int) (*models.MovieRatingStats, error)
}

// MovieCatalog is the browse surface proxied to clients. *catalog.Client
// satisfies it.
type MovieCatalog interface {
	Configured() bool
	BreakerState() string
	PopularMovies(ctx context.Context, page int) (catalog.Page, error)
	SearchMovies(ctx context.Context, query string, page int) (catalog.Page, error)
	MovieDetails(ctx context.Context, id int) (catalog.Movie, error)
}

// Recommender produces recommendations. *recommend.Service satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, userID string) (*models.RecommendationResponse, error)
}

// SentimentAnalyzer classifies text. *sentiment.Analyzer satisfies it.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) models.SentimentResult
	LabelReview(ctx context.Context, content string) (string, error)
	Generative() bool
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: root, health and liveness
//   - handlers_auth.go: registration, login and token endpoints
//   - handlers_movies.go: catalog browsing proxy
//   - handlers_reviews.go: review creation, listing and stats
//   - handlers_sentiment.go: standalone sentiment analysis
//   - handlers_recommend.go: personalized recommendations
type Handler struct {
	store       Store
	catalog     MovieCatalog
	recommender Recommender
	sentiment   SentimentAnalyzer
	jwtManager  *auth.JWTManager
	lockout     *auth.LockoutManager
	config      *config.Config
	startTime   time.Time
}

// HandlerDeps groups NewHandler's collaborators. JWTManager and Lockout may
// be nil when AUTH_MODE=none.
type HandlerDeps struct {
	Store       Store
	Catalog     MovieCatalog
	Recommender Recommender
	Sentiment   SentimentAnalyzer
	JWTManager  *auth.JWTManager
	Lockout     *auth.LockoutManager
	Config      *config.Config
}

// NewHandler creates a new API handler with all required dependencies.
//
// Example:
//
//	handler := api.NewHandler(api.HandlerDeps{Store: db, Catalog: client, ...})
//	router := api.NewRouter(cfg, handler, authMiddleware)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		store:       deps.Store,
		catalog:     deps.Catalog,
		recommender: deps.Recommender,
		sentiment:   deps.Sentiment,
		jwtManager:  deps.JWTManager,
		lockout:     deps.Lockout,
		config:      deps.Config,
		startTime:   time.Now(),
	}
}

// bcryptCost returns the configured cost; HashPassword clamps invalid values.
func (h *Handler) bcryptCost() int {
	if h.config == nil {
		return auth.DefaultBcryptCost
	}
	return h.config.Security.BcryptCost
}
