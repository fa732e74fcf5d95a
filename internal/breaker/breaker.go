// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

// Package breaker wraps sony/gobreaker with MoView logging and metrics so
// every outbound dependency (catalog, generative service) trips the same way.
//
// The breaker uses real time for its interval and timeout. Tests should
// shrink Settings rather than mock the clock.
package breaker

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
)

// ErrOpen is returned when a call is rejected without being attempted.
var ErrOpen = errors.New("circuit breaker open")

// Settings configures a Breaker. Zero fields take the defaults from
// DefaultSettings.
type Settings struct {
	Name string

	// MaxRequests allowed while half-open.
	MaxRequests uint32

	// Interval resets counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// MinRequests and FailureRatio decide when to open.
	MinRequests  uint32
	FailureRatio float64

	// IsSuccessful reports errors that should not count against the
	// dependency, such as a 404 or a caller cancellation.
	IsSuccessful func(err error) bool
}

// DefaultSettings returns the production tuning: at most 3 half-open
// probes, counts reset every minute, 2 minutes open, and the circuit opens at
// a 60% failure rate over at least 10 requests.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker guards calls to one dependency.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// New creates a Breaker and initializes its metrics.
func New(s Settings) *Breaker {
	d := DefaultSettings(s.Name)
	if s.MaxRequests == 0 {
		s.MaxRequests = d.MaxRequests
	}
	if s.Interval == 0 {
		s.Interval = d.Interval
	}
	if s.Timeout == 0 {
		s.Timeout = d.Timeout
	}
	if s.MinRequests == 0 {
		s.MinRequests = d.MinRequests
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = d.FailureRatio
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.Name).Set(0)

	log := logging.WithComponent("breaker")
	gs := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRatio
			if shouldTrip {
				log.Warn().
					Str("breaker", s.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			log.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	}
	if s.IsSuccessful != nil {
		gs.IsSuccessful = s.IsSuccessful
	}

	return &Breaker{
		cb:   gobreaker.NewCircuitBreaker[any](gs),
		name: s.Name,
	}
}

// Name returns the breaker name used in logs and metrics.
func (b *Breaker) Name() string {
	return b.name
}

// State returns closed, half-open or open.
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// Execute runs fn through the breaker. Rejections are reported as ErrOpen.
func Execute[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Debug().Str("breaker", b.name).Err(err).Msg("Request rejected")
			return zero, ErrOpen
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		if typed, ok := result.(T); ok {
			return typed, err
		}
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	typed, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
