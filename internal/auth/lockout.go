// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/moview/internal/logging"
)

// LockoutConfig holds configuration for the login lockout.
type LockoutConfig struct {
	// MaxAttempts is the number of failed attempts before lockout.
	MaxAttempts int

	// LockoutDuration is the base lockout period.
	LockoutDuration time.Duration

	// MaxLockoutDuration caps the doubled period on repeated lockouts.
	MaxLockoutDuration time.Duration

	// Enabled controls whether lockout is active.
	Enabled bool
}

// DefaultLockoutConfig returns sensible defaults.
func DefaultLockoutConfig() LockoutConfig {
	return LockoutConfig{
		MaxAttempts:        5,
		LockoutDuration:    15 * time.Minute,
		MaxLockoutDuration: 24 * time.Hour,
		Enabled:            true,
	}
}

// lockoutEntry tracks failed login attempts for one email.
type lockoutEntry struct {
	failedAttempts int
	lockoutCount   int
	lockedUntil    time.Time
	lastAttempt    time.Time
}

// LockoutManager counts failed logins per email and locks the account
// temporarily once MaxAttempts is reached. State is process-local.
type LockoutManager struct {
	cfg     LockoutConfig
	mu      sync.Mutex
	entries map[string]*lockoutEntry
	now     func() time.Time
}

// NewLockoutManager creates a new lockout manager.
func NewLockoutManager(cfg LockoutConfig) *LockoutManager {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultLockoutConfig().MaxAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = DefaultLockoutConfig().LockoutDuration
	}
	if cfg.MaxLockoutDuration < cfg.LockoutDuration {
		cfg.MaxLockoutDuration = cfg.LockoutDuration
	}
	return &LockoutManager{
		cfg:     cfg,
		entries: make(map[string]*lockoutEntry),
		now:     time.Now,
	}
}

func lockoutKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckLocked reports whether email is locked and for how much longer.
func (m *LockoutManager) CheckLocked(email string) (bool, time.Duration) {
	if m == nil || !m.cfg.Enabled {
		return false, 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[lockoutKey(email)]
	if !ok {
		return false, 0
	}
	remaining := entry.lockedUntil.Sub(m.now())
	if remaining <= 0 {
		return false, 0
	}
	return true, remaining
}

// RecordFailedAttempt counts a failed login and reports whether the account
// is now locked.
func (m *LockoutManager) RecordFailedAttempt(email string) (locked bool, remaining time.Duration) {
	if m == nil || !m.cfg.Enabled {
		return false, 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := lockoutKey(email)
	now := m.now()
	entry, ok := m.entries[key]
	if !ok {
		entry = &lockoutEntry{}
		m.entries[key] = entry
	}

	entry.failedAttempts++
	entry.lastAttempt = now
	if entry.failedAttempts < m.cfg.MaxAttempts {
		return false, 0
	}

	duration := calculateLockoutDuration(m.cfg, entry.lockoutCount)
	entry.lockoutCount++
	entry.failedAttempts = 0
	entry.lockedUntil = now.Add(duration)

	logging.Warn().
		Str("email", logging.Sanitize(key)).
		Int("lockout_count", entry.lockoutCount).
		Dur("duration", duration).
		Msg("Account locked after repeated failed logins")
	return true, duration
}

// RecordSuccess clears the failure history for email.
func (m *LockoutManager) RecordSuccess(email string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	delete(m.entries, lockoutKey(email))
	m.mu.Unlock()
}

// Cleanup drops entries that are neither locked nor recently active and
// returns how many were removed.
func (m *LockoutManager) Cleanup() int {
	if m == nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.entries {
		if now.After(entry.lockedUntil) && now.Sub(entry.lastAttempt) > m.cfg.MaxLockoutDuration {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// calculateLockoutDuration doubles the base period per previous lockout, up
// to the configured maximum.
func calculateLockoutDuration(cfg LockoutConfig, lockoutCount int) time.Duration {
	duration := cfg.LockoutDuration
	for range lockoutCount {
		duration *= 2
		if duration >= cfg.MaxLockoutDuration {
			return cfg.MaxLockoutDuration
		}
	}
	return duration
}
