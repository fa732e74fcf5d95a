// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

/*
Package config loads and validates MoView configuration.

Configuration is layered with koanf, lowest priority first:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/moview/config.yaml)
 3. Environment variables, mapped explicitly in envTransformFunc

Unknown environment variables are ignored. The result is validated before it
is returned, so callers can rely on every section being usable.

# Sections

  - server: listen address, timeouts, environment
  - database: DuckDB review store
  - catalog: movie metadata service (TMDb compatible), outbound rate limit, cache
  - genai: generative text service, provider selection (sdk, http, none)
  - recommend: profiling and recommendation tuning
  - sentiment: classifier path selection
  - security: JWT, CORS, inbound rate limits
  - logging: zerolog level and format

# Common Environment Variables

	HTTP_PORT=8000
	DUCKDB_PATH=/data/moview.duckdb
	TMDB_API_KEY=...
	GROQ_API_KEY=...
	GENAI_PROVIDER=sdk
	JWT_SECRET=...
	LOG_LEVEL=debug
*/
package config
