// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moview/internal/logging"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// defaultTaskTimeout bounds a single task run.
const defaultTaskTimeout = 5 * time.Minute

// PeriodicService runs a task on a fixed interval until canceled.
//
// Task errors are logged and the loop continues; a failing run does not
// count as a service crash, so suture only restarts on panics.
type PeriodicService struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	task     Task
	logger   zerolog.Logger
}

// NewPeriodicService creates a periodic service. Non-positive intervals
// become one hour.
func NewPeriodicService(name string, interval time.Duration, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PeriodicService{
		name:     name,
		interval: interval,
		timeout:  min(interval, defaultTaskTimeout),
		task:     task,
		logger:   logging.WithComponent(name),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("periodic service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("periodic task failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("periodic task complete")
}

// String identifies the service in supervisor logs.
func (s *PeriodicService) String() string {
	return s.name
}
