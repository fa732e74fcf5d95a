// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moview/config.yaml",
	"/etc/moview/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:         "/data/moview.duckdb",
			MaxMemory:    "512MB",
			Threads:      0,
			SeedDemoUser: true,
		},
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			APIKey:            "",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
			Burst:             5,
			CacheSize:         2000,
			CacheTTL:          6 * time.Hour,
			CachePath:         "",
		},
		GenAI: GenAIConfig{
			Provider:    ProviderSDK,
			BaseURL:     "https://api.groq.com/openai/v1",
			APIKey:      "",
			Model:       "llama-3.3-70b-versatile",
			Timeout:     30 * time.Second,
			Temperature: 0.7,
			MaxTokens:   1024,
		},
		Recommend: RecommendConfig{
			ExemplarDelay:      250 * time.Millisecond,
			MaxExemplars:       5,
			MaxRecommendations: 4,
			RequestTimeout:     50 * time.Second,
		},
		Sentiment: SentimentConfig{
			UseGenerative: false,
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         "",
			SessionTimeout:    30 * 24 * time.Hour,
			BcryptCost:        12,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
//
// ENV > File > Defaults. The returned config has passed Validate.
func LoadWithKoanf() (*Config, error) {
	k, err := loadLayers(findConfigFile())
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadLayers stacks defaults, the optional file and the environment.
func loadLayers(configPath string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY -> catalog.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	return k, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML already yields slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_demo_user":    "database.seed_demo_user",

	// Catalog
	"tmdb_api_key":             "catalog.api_key",
	"tmdb_base_url":            "catalog.base_url",
	"tmdb_image_base_url":      "catalog.image_base_url",
	"catalog_timeout":          "catalog.timeout",
	"catalog_rate_limit":       "catalog.requests_per_second",
	"catalog_rate_limit_burst": "catalog.burst",
	"catalog_cache_size":       "catalog.cache_size",
	"catalog_cache_ttl":        "catalog.cache_ttl",
	"catalog_cache_path":       "catalog.cache_path",

	// Generative service
	"genai_provider":    "genai.provider",
	"genai_base_url":    "genai.base_url",
	"genai_api_key":     "genai.api_key",
	"groq_api_key":      "genai.api_key",
	"genai_model":       "genai.model",
	"genai_timeout":     "genai.timeout",
	"genai_temperature": "genai.temperature",
	"genai_max_tokens":  "genai.max_tokens",

	// Recommendation pipeline
	"recommend_exemplar_delay":      "recommend.exemplar_delay",
	"recommend_max_exemplars":       "recommend.max_exemplars",
	"recommend_max_recommendations": "recommend.max_recommendations",
	"recommend_request_timeout":     "recommend.request_timeout",

	// Sentiment
	"sentiment_use_generative": "sentiment.use_generative",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"secret_key":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"bcrypt_cost":         "security.bcrypt_cost",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" so random environment variables never pollute config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever the file at path changes.
// The caller is responsible for synchronizing access to any state it
// reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}

// ReloadLogLevel re-reads the layered configuration and returns the
// logging section only. Used by the config file watcher.
func ReloadLogLevel(path string) (LoggingConfig, error) {
	k, err := loadLayers(path)
	if err != nil {
		return LoggingConfig{}, err
	}
	var lc LoggingConfig
	if err := k.Unmarshal("logging", &lc); err != nil {
		return LoggingConfig{}, fmt.Errorf("failed to unmarshal logging: %w", err)
	}
	if !validLogLevels[lc.Level] {
		return LoggingConfig{}, fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return lc, nil
}

// ConfigFilePath returns the config file LoadWithKoanf would read, or "".
func ConfigFilePath() string {
	return findConfigFile()
}
