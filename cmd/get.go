// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"countrydata/cli/internal/countries"
	apperrors "countrydata/cli/internal/errors"
	"countrydata/cli/internal/httperrors"
	"countrydata/cli/internal/render"
	"countrydata/cli/internal/terminal"
	"countrydata/cli/internal/view"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	getView string
	getHTML bool
)

// getCmd fetches one country record and prints it.
var getCmd = &cobra.Command{
	Use:   "get [country]",
	Short: "Fetch and show the record of one country",
	Long: `The get command asks the country data service for one country and prints the
record as a table (default) or as indented JSON. The country must be one of the
names listed by "countrydata countries"; on a terminal it can be chosen from a list
when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := defaultMode(cfg)
		if cmd.Flags().Changed("view") {
			m, ok := view.ParseMode(getView)
			if !ok {
				return fmt.Errorf("unknown view %q (want \"table\" or \"json\")", getView)
			}
			mode = m
		}

		names := cfg.Variant.Countries()
		name := ""
		switch {
		case len(args) == 1:
			n, err := resolveCountry(names, args[0])
			if err != nil {
				return err
			}
			name = n
		case terminal.IsInteractive():
			choice, err := pterm.DefaultInteractiveSelect.
				WithOptions(countries.Selectable(countries.Options(names))).
				WithMaxHeight(12).
				WithDefaultText("Select a country").
				Show()
			if err != nil {
				return err
			}
			name = choice
		}

		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}
		interactive := terminal.IsInteractive()
		disp := newTermDisplay(os.Stdout, interactive, mode)
		disp.errOut = os.Stderr
		disp.html = getHTML

		r := newRenderer(cfg, terminal.IsColor())
		if getHTML {
			r = &render.Renderer{}
			if cfg.HighlightJSON() {
				r.Decorator = render.HTMLDecorator{}
			}
		}
		ctrl := view.NewController(client, disp, r, view.WithLogger(logger), view.WithMode(mode))

		if err := ctrl.Submit(cmd.Context(), name); err != nil {
			if apperrors.Is(err, apperrors.KindNetwork) {
				fmt.Fprintln(os.Stderr, httperrors.Hint(err, "fetching country data", httperrors.ExtractHostFromURL(cfg.BaseURL)))
			}
			return reported(err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVar(&getView, "view", "", `Output view: "table" or "json" (default from config)`)
	getCmd.Flags().BoolVar(&getHTML, "html", false, "Print the record as an HTML fragment")
}

// resolveCountry returns the listed spelling of input, or an error naming the
// closest listed country when there is one.
func resolveCountry(names []string, input string) (string, error) {
	if n, ok := countries.Match(names, input); ok {
		return n, nil
	}
	if s, ok := countries.Suggest(names, input); ok {
		return "", fmt.Errorf("unknown country %q, did you mean %q?", input, s)
	}
	return "", fmt.Errorf("unknown country %q, run \"countrydata countries\" for the list", input)
}
