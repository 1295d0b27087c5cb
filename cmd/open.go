// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os/exec"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// openCmd opens the web page of the service, refusing when it is down.
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the country data dashboard in the browser",
	Long: `The open command checks that the server answers on the base URL and then opens
that URL in the default browser. Nothing is opened when the server is not running.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}
		st, err := client.Ping(cmd.Context())
		if err != nil {
			pterm.Error.Println(statusLine(st, err))
			pterm.Println("   Start it with: countrydata serve")
			return reported(err)
		}
		if err := openBrowser(client.BaseURL()); err != nil {
			pterm.Warning.Printfln("Could not open a browser. Visit %s", client.BaseURL())
			return nil
		}
		pterm.Info.Printfln("Opened %s", client.BaseURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// browserCommand returns the platform command that opens url in the default browser.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// openBrowser starts the browser process but does not wait for it to complete.
func openBrowser(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Start()
}
