// Package cli defines Cobra command definitions for the querybox CLI.
// This file contains the root command, which launches the TUI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/querybox-dev/querybox/internal/api"
	"github.com/querybox-dev/querybox/internal/config"
	"github.com/querybox-dev/querybox/internal/history"
	"github.com/querybox-dev/querybox/internal/interview"
	qlog "github.com/querybox-dev/querybox/internal/log"
	"github.com/querybox-dev/querybox/internal/tui"
	"github.com/querybox-dev/querybox/internal/tui/app"
)

var (
	serverURL string
	version   = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "querybox",
	Short: "AI-evaluated mock interview practice in your terminal",
	Long: `QueryBox runs mock interview sessions against a question-generation
and answer-scoring backend. It asks you questions one at a time, scores
each answer, and finishes with a summary of strengths, weaknesses, and
suggested resources.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsTTY() {
			return cmd.Help()
		}

		cfg := loadConfig()
		if serverURL != "" {
			cfg.Server.URL = serverURL
		}

		client := api.NewClient(cfg.Server.URL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)

		var logger *qlog.Logger
		if dir, err := config.Dir(); err == nil {
			// Logging is best-effort; the interview runs fine without it.
			logger, _ = qlog.NewLogger(dir)
		}

		ctrl := interview.New(interview.Config{
			Engine: client,
			Pacing: time.Duration(cfg.Interview.PacingMs) * time.Millisecond,
			Logger: logger,
		})
		defer ctrl.Close()

		var store *history.Store
		if cfg.History.Enabled {
			if path, err := historyDBPath(cfg); err == nil {
				store, err = history.NewStore(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
					store = nil
				}
			}
		}
		if store != nil {
			defer store.Close()
		}

		return tui.Run(app.New(cfg, ctrl, store))
	},
}

// loadConfig reads the user's config, falling back to defaults when it
// is missing or invalid.
func loadConfig() *config.Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.ReadConfig(home)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// historyDBPath resolves the history database location.
func historyDBPath(cfg *config.Config) (string, error) {
	if cfg.History.DBPath != "" {
		return cfg.History.DBPath, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Override the configured backend URL")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(historyCmd)
}
