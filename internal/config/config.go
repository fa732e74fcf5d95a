// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	GenAI     GenAIConfig     `koanf:"genai"`
	Recommend RecommendConfig `koanf:"recommend"`
	Sentiment SentimentConfig `koanf:"sentiment"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB review store settings
type DatabaseConfig struct {
	Path      string `koanf:"path"` // ":memory:" for an ephemeral store
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU

	// SeedDemoUser creates the demo account on startup when missing.
	SeedDemoUser bool `koanf:"seed_demo_user"`
}

// CatalogConfig holds movie catalog service settings.
type CatalogConfig struct {
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	APIKey       string        `koanf:"api_key"`
	Timeout      time.Duration `koanf:"timeout"`

	// RequestsPerSecond throttles outbound calls. 0 disables throttling.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// CacheSize is the number of resolved movies held in memory.
	// 0 disables caching entirely.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// CachePath enables a persistent badger tier. Empty keeps the cache in memory only.
	CachePath string `koanf:"cache_path"`
}

// GenAI provider names
const (
	ProviderSDK  = "sdk"
	ProviderHTTP = "http"
	ProviderNone = "none"
)

// GenAIConfig holds generative text service settings. Both providers speak
// the OpenAI compatible chat completions protocol.
type GenAIConfig struct {
	Provider    string        `koanf:"provider"`
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	Timeout     time.Duration `koanf:"timeout"`
	Temperature float64       `koanf:"temperature"`
	MaxTokens   int           `koanf:"max_tokens"`
}

// Enabled reports whether a generative client should be constructed.
func (g GenAIConfig) Enabled() bool {
	return g.Provider != ProviderNone && g.APIKey != ""
}

// RecommendConfig tunes the recommendation pipeline
type RecommendConfig struct {
	// ExemplarDelay spaces consecutive catalog lookups while profiling.
	ExemplarDelay      time.Duration `koanf:"exemplar_delay"`
	MaxExemplars       int           `koanf:"max_exemplars"`
	MaxRecommendations int           `koanf:"max_recommendations"`

	// RequestTimeout bounds one getRecommendations call end to end.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// SentimentConfig selects the sentiment classification path
type SentimentConfig struct {
	// UseGenerative routes the analyze endpoint through the generative
	// service when one is configured. Review creation always uses the
	// keyword heuristic.
	UseGenerative bool `koanf:"use_generative"`
}

// SecurityConfig holds authentication and HTTP hardening settings
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // jwt or none
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
