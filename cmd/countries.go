// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"os"

	"countrydata/cli/internal/countries"

	"github.com/spf13/cobra"
)

var countriesAll bool

// countriesCmd lists the selector options of the active variant.
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries offered by the selector",
	Long: `The countries command prints the selector options of the active variant in
list order: 20 countries for "extension", 50 for "web". With --all the placeholder
entry is printed first, as the selector shows it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printOptions(os.Stdout, countries.Options(cfg.Variant.Countries()), countriesAll)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
	countriesCmd.Flags().BoolVar(&countriesAll, "all", false, "Include the disabled placeholder entry")
}

func printOptions(w io.Writer, opts []countries.Option, withPlaceholder bool) {
	for _, o := range opts {
		if o.Disabled && !withPlaceholder {
			continue
		}
		fmt.Fprintln(w, o.Label)
	}
}
