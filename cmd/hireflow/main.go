// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hireflow/hireflow/internal/config"
	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/logger"
	"github.com/hireflow/hireflow/internal/metrics"
	"github.com/hireflow/hireflow/internal/textsource/parsers"
	"github.com/hireflow/hireflow/internal/validation"
)

var version = "dev"

// errBlocking is returned by extract --strict when the report has errors.
var errBlocking = errors.New("validation report has blocking errors")

const (
	exitFailure  = 1
	exitBlocking = 2
)

type rootOptions struct {
	configPath string
	debug      bool
}

func main() {
	// A missing .env file is normal; variables may come from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		if errors.Is(err, errBlocking) {
			os.Exit(exitBlocking)
		}
		os.Exit(exitFailure)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "hireflow",
		Short: "Extract and validate new-hire onboarding documents",
		Long: `hireflow pulls new-hire fields such as name, email, department, role, start date
and salary out of onboarding documents, scores each field's confidence and
validates the result against HR rules.

Configuration is read from --config (or HIREFLOW_CONFIG) and HIREFLOW_*
environment variables. A .env file in the working directory is loaded first.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (or set HIREFLOW_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(
		newExtractCmd(opts),
		newBatchCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	metrics  *metrics.Metrics
	pipeline *intake.Pipeline
}

func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Debug:  opts.debug,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	pipeline := intake.NewPipeline(
		parsers.DefaultRegistry(),
		extraction.NewExtractor(catalog),
		validation.NewValidator(cfg.Validation),
		intake.LogObserver{Logger: log},
		m,
	)

	log.WithFields(logrus.Fields{
		"version":   version,
		"fields":    len(catalog),
		"sources":   pipeline.Sources(),
		"log_level": log.GetLevel().String(),
	}).Debug("hireflow initialised")

	return &app{cfg: cfg, log: log, metrics: m, pipeline: pipeline}, nil
}
