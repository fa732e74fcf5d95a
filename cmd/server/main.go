// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/moview/docs" // Import generated swagger docs
	"github.com/tomtom215/moview/internal/api"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/supervisor"
	"github.com/tomtom215/moview/internal/supervisor/services"
)

// @title MoView API
// @version 1.0
// @description Movie reviews with sentiment labels and personalized recommendations.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/moview/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token from /api/v1/auth/login, sent as "Bearer <token>".
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Logging is not configured yet; the default logger still works.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", api.Version).
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("genai_provider", cfg.GenAI.Provider).
		Msg("Starting MoView")

	watchLogLevel()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	comps, err := initComponents(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer comps.close()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Store:       comps.db,
		Catalog:     comps.catalog,
		Recommender: comps.recommender,
		Sentiment:   comps.sentiment,
		JWTManager:  comps.jwtManager,
		Lockout:     comps.lockout,
		Config:      cfg,
	})
	router := api.NewRouter(cfg, handler, comps.authMW)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Recommendations may wait on the generative service and throttled
		// catalog lookups, so writes get the recommend budget on top.
		WriteTimeout: cfg.Server.Timeout + cfg.Recommend.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	comps.addMaintenance(tree)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("MoView stopped")
}

// watchLogLevel re-applies logging.level when the config file changes.
func watchLogLevel() {
	path := config.ConfigFilePath()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		lc, err := config.ReloadLogLevel(path)
		if err != nil {
			logging.Warn().Err(err).Msg("Ignoring invalid config file change")
			return
		}
		if lc.Level != logging.GetLevel().String() {
			logging.SetLevelString(lc.Level)
			logging.Info().Str("level", lc.Level).Msg("Log level updated")
		}
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
	}
}
