// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/models"
	"github.com/tomtom215/moview/internal/recommend"
)

func useTestConfig(t *testing.T) {
	t.Helper()
	orig := loadConfig
	loadConfig = func() (*config.Config, error) {
		return &config.Config{
			Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1},
			Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
			GenAI:    config.GenAIConfig{Provider: "none"},
		}, nil
	}
	t.Cleanup(func() { loadConfig = orig })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "analyze", "An", "excellent", "film")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	var got models.SentimentResponse
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Text != "An excellent film" {
		t.Errorf("Text = %q, want joined args", got.Text)
	}
	if !models.IsValidSentiment(got.Sentiment) {
		t.Errorf("Sentiment = %q", got.Sentiment)
	}
}

func TestAnalyzeCommand_RejectsBlankText(t *testing.T) {
	if _, err := run(t, "analyze", "   "); err == nil {
		t.Error("expected error for blank text")
	}
	if _, err := run(t, "analyze"); err == nil {
		t.Error("expected error without arguments")
	}
}

func TestSeedDemoCommand(t *testing.T) {
	useTestConfig(t)

	out, err := run(t, "seed-demo", "--password", "demo-pass")
	if err != nil {
		t.Fatalf("seed-demo error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["user_id"] != models.DemoUserID {
		t.Errorf("user_id = %v, want %s", got["user_id"], models.DemoUserID)
	}
	if got["created"] != true {
		t.Errorf("created = %v, want true on a fresh store", got["created"])
	}
}

func TestRecommendCommand_UnknownUser(t *testing.T) {
	useTestConfig(t)

	_, err := run(t, "recommend", "99999999-9999-4999-8999-999999999999")
	if !errors.Is(err, recommend.ErrUserNotFound) {
		t.Errorf("recommend error = %v, want ErrUserNotFound", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "moviewctl ") {
		t.Errorf("output = %q", out)
	}
}
