// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

// Package genai is the client for the generative text service: an OpenAI
// compatible chat completions endpoint (Groq by default).
//
// There is one Generator interface with two implementations selected by
// configuration: SDKClient uses the official openai-go SDK and HTTPClient
// posts to /chat/completions directly. Both apply the same timeout, circuit
// breaker and metrics, and neither retries.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/moview/internal/breaker"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/metrics"
)

var (
	// ErrDisabled is returned by New when no generative service is configured.
	ErrDisabled = errors.New("generative service disabled")

	// ErrEmptyResponse is returned when the service answers without content.
	ErrEmptyResponse = errors.New("generative service returned no content")
)

// Schema asks the service to constrain its output to a JSON schema.
type Schema struct {
	Name        string
	Description string
	Definition  any
}

// Request is one system and user message pair.
type Request struct {
	// Purpose labels metrics and logs, for example "recommend" or "sentiment".
	Purpose string
	System  string
	User    string

	// Schema is optional.
	Schema *Schema
}

// Generator completes a chat request and returns the raw assistant text.
// The text is untrusted and callers must parse it defensively.
type Generator interface {
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
}

// completer is the transport specific part of a Generator.
type completer interface {
	complete(ctx context.Context, req Request) (string, error)
}

// client applies the timeout, breaker and metrics shared by all providers.
type client struct {
	provider string
	timeout  time.Duration
	impl     completer
	breaker  *breaker.Breaker
}

// New builds the Generator selected by cfg.Provider.
func New(cfg *config.GenAIConfig) (Generator, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	var impl completer
	switch cfg.Provider {
	case config.ProviderSDK:
		impl = newSDKClient(cfg)
	case config.ProviderHTTP:
		impl = newHTTPClient(cfg)
	default:
		return nil, fmt.Errorf("unknown generative provider %q", cfg.Provider)
	}

	s := breaker.DefaultSettings("genai-" + cfg.Provider)
	s.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}

	return &client{
		provider: cfg.Provider,
		timeout:  cfg.Timeout,
		impl:     impl,
		breaker:  breaker.New(s),
	}, nil
}

func (c *client) Provider() string {
	return c.provider
}

func (c *client) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := breaker.Execute(c.breaker, func() (string, error) {
		out, err := c.impl.complete(ctx, req)
		if err == nil && strings.TrimSpace(out) == "" {
			err = ErrEmptyResponse
		}
		return out, err
	})
	elapsed := time.Since(start)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		logging.Ctx(ctx).Warn().
			Str("provider", c.provider).
			Str("purpose", req.Purpose).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("Generative request failed")
	}
	metrics.RecordGenAICall(c.provider, req.Purpose, outcome, elapsed)

	if err != nil {
		return "", err
	}
	return text, nil
}
