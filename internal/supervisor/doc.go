// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package supervisor runs MoView's long-lived services under suture v4.

	RootSupervisor ("moview")
	├── BackgroundSupervisor ("background-layer")
	│   ├── PeriodicService "catalog-cache-maintenance"
	│   └── PeriodicService "login-lockout-sweep" (AUTH_MODE=jwt)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are logged
through sutureslog on top of the zerolog slog adapter, and every restart
increments supervisor_service_restarts_total.

Usage in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddBackgroundService(services.NewPeriodicService("catalog-cache-maintenance", 10*time.Minute, cacheTask))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}
*/
package supervisor
