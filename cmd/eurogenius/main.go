// Package main is the EuroGenius command line tool. It shares the data
// directory, database and snapshot with the server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/eurogenius/internal/config"
	"github.com/aristath/eurogenius/internal/di"
	"github.com/aristath/eurogenius/pkg/logger"
)

var (
	// Global flags
	dataDir  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "eurogenius",
	Short: "EuroMillions combination optimizer",
	Long: `EuroGenius evolves EuroMillions combinations against the draw history
and blends them with an optional remote probability predictor.

Available commands:
  import   - Load draws from a CSV file
  train    - Rebuild the optimizer snapshot
  generate - Produce combinations for a strategy
  run      - Run the optimizer once and show its progress
  stats    - Show per-symbol statistics`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides EUROGENIUS_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(importCmd, trainCmd, generateCmd, runCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles what every command needs
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	container *di.Container
}

// openApp loads configuration, applying the global flags, and wires the container.
// Logs go to stderr so command output on stdout stays clean.
func openApp(ctx context.Context) (*app, error) {
	if dataDir != "" {
		if err := os.Setenv("EUROGENIUS_DATA_DIR", dataDir); err != nil {
			return nil, fmt.Errorf("failed to set data directory: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: os.Stderr,
	})

	container, _, err := di.Wire(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, container: container}, nil
}

func (a *app) Close() {
	if err := a.container.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to close database")
	}
}
