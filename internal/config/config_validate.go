// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateCatalog,
		c.validateGenAI,
		c.validateRecommend,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

// validateCatalog validates the catalog section. The API key is optional at
// startup: movie endpoints report it missing and recommendation lookups
// degrade to empty results.
func (c *Config) validateCatalog() error {
	if err := validateBaseURL(c.Catalog.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateBaseURL(c.Catalog.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	if c.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("CATALOG_RATE_LIMIT must not be negative")
	}
	if c.Catalog.RequestsPerSecond > 0 && c.Catalog.Burst < 1 {
		return fmt.Errorf("CATALOG_RATE_LIMIT_BURST must be at least 1 when throttling is enabled")
	}
	if c.Catalog.CacheSize < 0 {
		return fmt.Errorf("CATALOG_CACHE_SIZE must not be negative")
	}
	if c.Catalog.CacheSize > 0 && c.Catalog.CacheTTL <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must be positive when caching is enabled")
	}
	return nil
}

// validProviders defines the allowed generative providers
var validProviders = map[string]bool{
	ProviderSDK:  true,
	ProviderHTTP: true,
	ProviderNone: true,
}

func (c *Config) validateGenAI() error {
	if !validProviders[c.GenAI.Provider] {
		return fmt.Errorf("GENAI_PROVIDER must be one of: sdk, http, none")
	}
	if c.GenAI.Provider == ProviderNone {
		return nil
	}
	if err := validateBaseURL(c.GenAI.BaseURL, "GENAI_BASE_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.GenAI.Model) == "" {
		return fmt.Errorf("GENAI_MODEL is required when GENAI_PROVIDER=%s", c.GenAI.Provider)
	}
	if c.GenAI.Timeout <= 0 || c.GenAI.Timeout > 5*time.Minute {
		return fmt.Errorf("GENAI_TIMEOUT must be between 1ns and 5m")
	}
	if c.GenAI.Temperature < 0 || c.GenAI.Temperature > 2 {
		return fmt.Errorf("GENAI_TEMPERATURE must be between 0 and 2")
	}
	if c.GenAI.MaxTokens < 0 {
		return fmt.Errorf("GENAI_MAX_TOKENS must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.ExemplarDelay < 0 {
		return fmt.Errorf("RECOMMEND_EXEMPLAR_DELAY must not be negative")
	}
	if c.Recommend.MaxExemplars < 1 {
		return fmt.Errorf("RECOMMEND_MAX_EXEMPLARS must be at least 1")
	}
	if c.Recommend.MaxRecommendations < 1 || c.Recommend.MaxRecommendations > 4 {
		return fmt.Errorf("RECOMMEND_MAX_RECOMMENDATIONS must be between 1 and 4")
	}
	if c.Recommend.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateAuthMode(); err != nil {
		return err
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Security.AuthMode == "jwt" {
		return c.validateJWTSecret()
	}
	return nil
}

// validAuthModes defines the allowed authentication modes
var validAuthModes = map[string]bool{
	"none": true,
	"jwt":  true,
}

func (c *Config) validateAuthMode() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt")
	}
	if c.Security.AuthMode == "none" && c.IsProduction() {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
	}
	return nil
}

// minJWTSecretLength is the shortest accepted HS256 signing secret.
const minJWTSecretLength = 32

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if isPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET appears to be a placeholder value")
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	return nil
}

// validateCORS rejects wildcard origins in production.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production; " +
			"set specific origins such as CORS_ORIGINS=https://moview.example.com")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if wildcard CORS is configured outside production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// IsProduction returns true if ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns catch secrets copied verbatim from example configs.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"EXAMPLE",
}

func isPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, p := range placeholderPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}
