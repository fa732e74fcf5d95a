// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package main is the MoView API server.

MoView stores movie reviews, labels their sentiment and recommends movies
from a user's review history. Movie data comes from TMDb; recommendations are
drafted by an OpenAI-compatible generative service and fall back to curated
pools when it is unavailable.

Startup order:

 1. Configuration: koanf defaults, optional YAML file (CONFIG_PATH), environment
 2. Logging: zerolog, with the level reloaded when the config file changes
 3. Database: DuckDB review store, demo user seeded when SEED_DEMO_USER=true
 4. Catalog: TMDb client behind a circuit breaker, LRU + badger metadata cache
 5. Generative client: SDK or plain HTTP, or none
 6. Recommendation and sentiment services
 7. Authentication: JWT with login lockout (AUTH_MODE=jwt) or none
 8. Supervisor tree: cache maintenance, lockout sweeps, HTTP server

Examples:

	export TMDB_API_KEY=...
	export GENAI_PROVIDER=sdk GENAI_API_KEY=... GENAI_MODEL=llama-3.3-70b-versatile
	export JWT_SECRET=$(openssl rand -base64 32)
	./moview

	# local development without accounts
	AUTH_MODE=none ./moview

SIGINT and SIGTERM cancel the supervisor context; the HTTP server drains for
up to 10 seconds before the store is closed.
*/
package main
