package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"countrydata/cli/internal/config"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// configCmd groups the commands that inspect and change the config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change stored settings",
	Args:  cobra.NoArgs,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the config file path and the effective settings",
	Long: `The show command prints where the config file lives and the settings in effect,
after COUNTRYDATA_* environment overrides are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		return printConfig(os.Stdout, p, cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `The set command writes one setting to the config file. Keys:

  ` + strings.Join(config.Keys, "\n  ") + `

An empty value clears timeout (no timeout) and highlight (use the variant default).`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		stored, err := config.Update(args[0], args[1])
		if err != nil {
			pterm.Error.Println(err.Error())
			return reported(err)
		}
		logger.Debug("config updated", "key", args[0], "variant", stored.Variant)
		pterm.Success.Printfln("%s updated", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}

func printConfig(w io.Writer, path string, c config.Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s\n%s\n", path, b)
	return nil
}
