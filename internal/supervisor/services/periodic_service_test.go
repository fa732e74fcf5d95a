// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPeriodicService_Defaults(t *testing.T) {
	svc := NewPeriodicService("sweep", 0, func(context.Context) error { return nil })
	if svc.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", svc.interval)
	}
	if svc.timeout != defaultTaskTimeout {
		t.Errorf("timeout = %v, want %v", svc.timeout, defaultTaskTimeout)
	}
	if svc.String() != "sweep" {
		t.Errorf("String() = %q, want sweep", svc.String())
	}

	short := NewPeriodicService("fast", 50*time.Millisecond, func(context.Context) error { return nil })
	if short.timeout != 50*time.Millisecond {
		t.Errorf("timeout = %v, want interval when shorter than default", short.timeout)
	}
}

func TestPeriodicService_RunsUntilCanceled(t *testing.T) {
	var runs atomic.Int32
	svc := NewPeriodicService("counter", 10*time.Millisecond, func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("task context has no deadline")
		}
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if runs.Load() < 2 {
		t.Errorf("task ran %d times, want at least 2", runs.Load())
	}
}

func TestPeriodicService_TaskErrorsDoNotStopLoop(t *testing.T) {
	var runs atomic.Int32
	svc := NewPeriodicService("flaky", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return errors.New("badger: value log busy")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_ = svc.Serve(ctx)
	if runs.Load() < 2 {
		t.Errorf("task ran %d times after errors, want at least 2", runs.Load())
	}
}
