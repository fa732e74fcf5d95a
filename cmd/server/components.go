// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/moview/internal/auth"
	"github.com/tomtom215/moview/internal/catalog"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/database"
	"github.com/tomtom215/moview/internal/genai"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/recommend"
	"github.com/tomtom215/moview/internal/sentiment"
	"github.com/tomtom215/moview/internal/supervisor"
	"github.com/tomtom215/moview/internal/supervisor/services"
)

const (
	cacheMaintenanceInterval = 10 * time.Minute
	lockoutSweepInterval     = 15 * time.Minute
)

// components are the long-lived collaborators shared by the HTTP layer.
type components struct {
	db          *database.DB
	catalog     *catalog.Client
	cache       *catalog.Cache
	recommender *recommend.Service
	sentiment   *sentiment.Analyzer

	// nil when AUTH_MODE=none
	jwtManager *auth.JWTManager
	lockout    *auth.LockoutManager
	authMW     *auth.Middleware
}

// initComponents builds the store, catalog, generative client and the
// services on top of them. The caller owns close.
func initComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c := &components{db: db}

	if cfg.Database.SeedDemoUser {
		if err := seedDemoUser(ctx, db, cfg.Security.BcryptCost); err != nil {
			c.close()
			return nil, err
		}
	}

	c.catalog = catalog.NewClient(&cfg.Catalog)
	if !c.catalog.Configured() {
		logging.Warn().Msg("TMDB_API_KEY not set: browsing returns errors and recommendations use bare fallbacks")
	}
	c.cache, err = catalog.NewCache(&cfg.Catalog)
	if err != nil {
		c.close()
		return nil, fmt.Errorf("failed to open catalog cache: %w", err)
	}

	gen, err := genai.New(&cfg.GenAI)
	switch {
	case errors.Is(err, genai.ErrDisabled):
		logging.Info().Msg("Generative service disabled, recommendations use curated fallbacks")
		gen = nil
	case err != nil:
		c.close()
		return nil, fmt.Errorf("failed to initialize generative client: %w", err)
	default:
		logging.Info().Str("provider", gen.Provider()).Str("model", cfg.GenAI.Model).Msg("Generative service enabled")
	}

	c.recommender = recommend.NewService(cfg.Recommend, recommend.Deps{
		Reviews:   db,
		Catalog:   catalog.NewResolver(c.catalog, c.cache),
		Generator: gen,
	})

	if cfg.Sentiment.UseGenerative && gen != nil {
		c.sentiment = sentiment.NewAnalyzer(gen)
	} else {
		c.sentiment = sentiment.NewAnalyzer(nil)
	}

	if cfg.Security.AuthMode == "jwt" {
		c.jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			c.close()
			return nil, fmt.Errorf("failed to initialize JWT manager: %w", err)
		}
		c.lockout = auth.NewLockoutManager(auth.DefaultLockoutConfig())
		c.authMW = auth.NewMiddleware(c.jwtManager, db)
		logging.Info().Dur("session_timeout", c.jwtManager.Timeout()).Msg("JWT authentication enabled")
	} else {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none): /api/v1/auth routes are not mounted")
	}

	return c, nil
}

// addMaintenance registers the periodic jobs with the background layer.
func (c *components) addMaintenance(tree *supervisor.SupervisorTree) {
	if c.cache != nil {
		tree.AddBackgroundService(services.NewPeriodicService("catalog-cache-maintenance", cacheMaintenanceInterval,
			func(context.Context) error {
				removed, err := c.cache.Maintain()
				if removed > 0 {
					logging.Debug().Int("removed", removed).Msg("Expired catalog cache entries dropped")
				}
				return err
			}))
	}
	if c.lockout != nil {
		tree.AddBackgroundService(services.NewPeriodicService("login-lockout-sweep", lockoutSweepInterval,
			func(context.Context) error {
				c.lockout.Cleanup()
				return nil
			}))
	}
}

func (c *components) close() {
	if err := c.cache.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing catalog cache")
	}
	if err := c.db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}

// seedDemoUser creates the demo account. Its password is random and never
// logged, so the account holds reviews but cannot sign in.
func seedDemoUser(ctx context.Context, db *database.DB, cost int) error {
	hash, err := auth.HashPassword(uuid.NewString(), cost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	if _, err := db.SeedDemoUser(ctx, hash); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}
	return nil
}
