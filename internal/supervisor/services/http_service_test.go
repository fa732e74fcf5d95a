// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*PeriodicService)(nil)
	_ HTTPServer     = (*http.Server)(nil)
)

// fakeHTTPServer blocks in ListenAndServe until Shutdown, unless startErr is set.
type fakeHTTPServer struct {
	startErr    error
	shutdownErr error

	started   chan struct{}
	stopOnce  sync.Once
	stopped   chan struct{}
	shutdowns atomic.Int32
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		started: make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stopped) })
	return f.shutdownErr
}

func TestNewHTTPServerService_Timeout(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{in: 30 * time.Second, want: 30 * time.Second},
		{in: 0, want: 10 * time.Second},
		{in: -time.Second, want: 10 * time.Second},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newFakeHTTPServer(), tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("NewHTTPServerService(%v) timeout = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
	}
	if got := NewHTTPServerService(newFakeHTTPServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		server := newFakeHTTPServer()
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		select {
		case <-server.started:
		case <-time.After(time.Second):
			t.Fatal("server did not start")
		}
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
		if server.shutdowns.Load() != 1 {
			t.Errorf("Shutdown called %d times, want 1", server.shutdowns.Load())
		}
	})

	t.Run("startup failure is returned", func(t *testing.T) {
		bindErr := errors.New("bind: address already in use")
		server := newFakeHTTPServer()
		server.startErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want wrapped bind error", err)
		}
	})

	t.Run("shutdown failure is returned", func(t *testing.T) {
		shutdownErr := errors.New("connections did not drain")
		server := newFakeHTTPServer()
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()
		<-server.started
		cancel()

		if err := <-errCh; !errors.Is(err, shutdownErr) {
			t.Errorf("Serve() = %v, want shutdown error", err)
		}
	})

	t.Run("real server on loopback", func(t *testing.T) {
		srv := &http.Server{
			Addr:              "127.0.0.1:0",
			Handler:           http.NotFoundHandler(),
			ReadHeaderTimeout: time.Second,
		}
		svc := NewHTTPServerService(srv, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
		}
	})
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	server := newFakeHTTPServer()
	sup := suture.New("test-api", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
	cancel()
	<-errCh

	if server.shutdowns.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
