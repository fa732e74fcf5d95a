// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tomtom215/moview/internal/auth"
	"github.com/tomtom215/moview/internal/catalog"
	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/database"
	"github.com/tomtom215/moview/internal/genai"
	"github.com/tomtom215/moview/internal/logging"
	"github.com/tomtom215/moview/internal/models"
	"github.com/tomtom215/moview/internal/recommend"
	"github.com/tomtom215/moview/internal/sentiment"
)

// loadConfig is swapped in tests.
var loadConfig = config.LoadWithKoanf

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "moviewctl",
		Short:         "Operate a MoView installation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logging.Init(logging.Config{
				Level:     level,
				Format:    "console",
				Timestamp: true,
				Output:    cmd.ErrOrStderr(),
			})
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newVersionCmd(),
		newAnalyzeCmd(),
		newRecommendCmd(),
		newSeedDemoCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "moviewctl %s (%s)\n", version, commit)
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var generative bool

	cmd := &cobra.Command{
		Use:   "analyze <text>",
		Short: "Classify the sentiment of a piece of text",
		Long: `Prints {text, sentiment, confidence} as JSON. The keyword heuristic is
used unless --generative is set and a generative service is configured.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("text must not be empty")
			}

			analyzer := sentiment.NewAnalyzer(nil)
			if generative {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				gen, err := genai.New(&cfg.GenAI)
				if err != nil {
					return fmt.Errorf("generative service: %w", err)
				}
				analyzer = sentiment.NewAnalyzer(gen)
			}

			result := analyzer.Analyze(cmd.Context(), text)
			return printJSON(cmd.OutOrStdout(), models.SentimentResponse{Text: text, SentimentResult: result})
		},
	}
	cmd.Flags().BoolVar(&generative, "generative", false, "Use the configured generative service")
	return cmd
}

func newRecommendCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "recommend <user-id>",
		Short: "Run the recommendation pipeline for a stored user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.New(&cfg.Database)
			if err != nil {
				return err
			}
			defer closeQuietly(db)

			cache, err := catalog.NewCache(&cfg.Catalog)
			if err != nil {
				return err
			}
			defer closeQuietly(cache)

			gen, err := genai.New(&cfg.GenAI)
			if err != nil && !errors.Is(err, genai.ErrDisabled) {
				return err
			}

			svc := recommend.NewService(cfg.Recommend, recommend.Deps{
				Reviews:   db,
				Catalog:   catalog.NewResolver(catalog.NewClient(&cfg.Catalog), cache),
				Generator: gen,
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			resp, err := svc.Recommend(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Give up after this long")
	return cmd
}

func newSeedDemoCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Create the demo user if it does not exist",
		Long: `Creates demo_user <demo@moview.com> with a fixed ID. Without --password the
account gets a random password and cannot sign in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if password == "" {
				password = uuid.NewString()
			}
			hash, err := auth.HashPassword(password, cfg.Security.BcryptCost)
			if err != nil {
				return err
			}

			db, err := database.New(&cfg.Database)
			if err != nil {
				return err
			}
			defer closeQuietly(db)

			created, err := db.SeedDemoUser(cmd.Context(), hash)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"user_id": models.DemoUserID,
				"email":   database.DemoEmail,
				"created": created,
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", os.Getenv("MOVIEW_DEMO_PASSWORD"), "Demo account password (env MOVIEW_DEMO_PASSWORD)")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Msg("close failed")
	}
}
