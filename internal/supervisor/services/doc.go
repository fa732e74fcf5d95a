// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

// Package services adapts MoView components to suture.Service.
//
// HTTPServerService turns http.Server's ListenAndServe/Shutdown pair into a
// context-driven Serve. PeriodicService runs maintenance jobs such as catalog
// cache compaction and login lockout sweeps on a ticker.
package services
