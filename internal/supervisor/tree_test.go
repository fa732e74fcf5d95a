// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/moview/internal/metrics"
)

// testService runs until canceled, optionally failing its first maxFails starts.
type testService struct {
	name       string
	startCount atomic.Int32
	mu         sync.Mutex
	maxFails   int32
}

func newTestService(name string) *testService {
	return &testService{name: name}
}

func (s *testService) Serve(ctx context.Context) error {
	n := s.startCount.Add(1)

	s.mu.Lock()
	maxFails := s.maxFails
	s.mu.Unlock()

	if n <= maxFails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *testService) failFirst(n int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxFails = n
}

func (s *testService) String() string { return s.name }

var _ suture.Service = (*testService)(nil)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestSupervisorTreeConstruction(t *testing.T) {
	t.Run("applies default values for zero config", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}
		if tree.Root() == nil {
			t.Fatal("root supervisor should not be nil")
		}
		if tree.config != DefaultTreeConfig() {
			t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
			FailureThreshold: 2,
			FailureBackoff:   time.Second,
		})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}
		if tree.config.FailureThreshold != 2 || tree.config.FailureBackoff != time.Second {
			t.Errorf("config = %+v", tree.config)
		}
		if tree.config.ShutdownTimeout != 10*time.Second {
			t.Errorf("ShutdownTimeout = %v, want default 10s", tree.config.ShutdownTimeout)
		}
	})
}

func TestSupervisorTreeLifecycle(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureBackoff:  100 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}

	background := newTestService("background")
	api := newTestService("api")
	tree.AddBackgroundService(background)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	if !waitFor(t, time.Second, func() bool {
		return background.startCount.Load() >= 1 && api.startCount.Load() >= 1
	}) {
		t.Fatal("services were not started")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	if report, err := tree.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("UnstoppedServiceReport() = %v, %v; want empty", report, err)
	}
}

func TestSupervisorTreeRestartsFailingService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failing := newTestService("flaky-maintenance")
	failing.failFirst(2)
	stable := newTestService("stable-api")
	tree.AddBackgroundService(failing)
	tree.AddAPIService(stable)

	before := testutil.ToFloat64(metrics.ServiceRestarts.WithLabelValues("flaky-maintenance"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	if !waitFor(t, 2*time.Second, func() bool { return failing.startCount.Load() >= 3 }) {
		t.Fatalf("failing service started %d times, want at least 3", failing.startCount.Load())
	}
	if stable.startCount.Load() != 1 {
		t.Errorf("stable service started %d times, want 1", stable.startCount.Load())
	}

	cancel()
	<-errCh

	after := testutil.ToFloat64(metrics.ServiceRestarts.WithLabelValues("flaky-maintenance"))
	if after-before < 2 {
		t.Errorf("restart counter grew by %v, want at least 2", after-before)
	}
}
