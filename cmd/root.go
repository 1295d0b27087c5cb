// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the countrydata CLI.
// It implements the interactive dashboard and one subcommand per operation using
// the Cobra CLI framework: fetching and rendering a country record, probing and
// opening the server, running the development backend and managing its dataset.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"countrydata/cli/internal/backend"
	"countrydata/cli/internal/config"
	"countrydata/cli/internal/logging"
	"countrydata/cli/internal/render"
	"countrydata/cli/internal/terminal"
	"countrydata/cli/internal/view"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	flagVariant string
	flagBaseURL string
	flagVerbose bool

	// cfg is the effective configuration, loaded before any command runs.
	cfg config.Config
	// logger receives diagnostics; it is quiet unless verbose is on.
	logger = logging.Discard()
)

// rootCmd represents the base command when called without any subcommands.
// On an interactive terminal it starts the dashboard.
var rootCmd = &cobra.Command{
	Use:   "countrydata",
	Short: "Look up GDP, population and top company figures by country",
	Long: `countrydata picks a country from a fixed list, asks the country data service for
its record and shows it as a table or as indented JSON.

Run without arguments for the interactive dashboard, or use "countrydata get <country>"
for a one-shot lookup. "countrydata serve" starts a local development server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("countrydata %s\n", Version)
			return nil
		}
		if !terminal.IsInteractive() {
			return cmd.Help()
		}
		return runDashboard(cmd.Context())
	},
}

// Execute runs the CLI application.
// SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var r *reportedError
		if !errors.As(err, &r) {
			pterm.Error.Println(logging.Mask(err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagVariant, "variant", "", `Client profile: "web" (50 countries, highlighted JSON) or "extension" (20 countries)`)
	pf.StringVar(&flagBaseURL, "base-url", "", "Base URL of the country data service")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose debug output")
}

// loadSettings layers command-line flags over the stored configuration and sets up
// the diagnostic logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("variant") {
		v, err := config.ParseVariant(flagVariant)
		if err != nil {
			return err
		}
		c.Variant = v
	}
	if flags.Changed("base-url") {
		c.BaseURL = flagBaseURL
	}
	if flags.Changed("verbose") {
		c.Verbose = flagVerbose
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	logger = logging.New(os.Stderr, cfg.Verbose)
	logger.Debug("settings loaded", "variant", cfg.Variant, "base_url", cfg.BaseURL, "endpoint", cfg.Endpoint)
	return nil
}

// newClient builds the service client for the effective configuration.
func newClient(c config.Config, log *slog.Logger) (*backend.HTTP, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return backend.New(backend.Options{
		BaseURL:   c.BaseURL,
		Endpoint:  c.Endpoint,
		Timeout:   timeout,
		Logger:    log,
		UserAgent: "countrydata/" + Version,
	}), nil
}

// newRenderer returns the renderer for the terminal. JSON is decorated with ANSI
// colors when the variant highlights it and stdout is a terminal.
func newRenderer(c config.Config, color bool) *render.Renderer {
	if c.HighlightJSON() && color {
		return &render.Renderer{Decorator: render.DefaultANSIDecorator()}
	}
	return &render.Renderer{}
}

// defaultMode returns the configured initial view.
func defaultMode(c config.Config) render.Mode {
	m, _ := view.ParseMode(c.DefaultView)
	return m
}
