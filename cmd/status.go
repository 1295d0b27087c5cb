// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"net/http"

	"countrydata/cli/internal/backend"
	apperrors "countrydata/cli/internal/errors"
	"countrydata/cli/internal/httperrors"
	"countrydata/cli/internal/server"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	statusHealth   bool
	statusGRPCAddr string
)

// statusCmd checks the service the way the popup's status line does.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the country data service is running",
	Long: `The status command sends GET to the base URL. Any 2xx answer means the server
is running. With --health the gRPC health service of "countrydata serve" is asked too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}
		st, err := client.Ping(cmd.Context())
		if err != nil {
			pterm.Error.Println(statusLine(st, err))
			if apperrors.Is(err, apperrors.KindNetwork) {
				return reported(httperrors.FormatNetworkError(err, "checking server status", httperrors.ExtractHostFromURL(cfg.BaseURL)))
			}
			return reported(err)
		}
		pterm.Success.Println(statusLine(st, nil))

		if !statusHealth {
			return nil
		}
		addr := cfg.Serve.GRPCAddr
		if statusGRPCAddr != "" {
			addr = statusGRPCAddr
		}
		health, err := backend.CheckHealth(cmd.Context(), addr, server.HealthService)
		if err != nil {
			pterm.Warning.Printfln("Health service at %s: %v", addr, err)
			return reported(err)
		}
		pterm.Info.Printfln("Health service at %s: %s", addr, health)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusHealth, "health", false, "Also query the gRPC health service")
	statusCmd.Flags().StringVar(&statusGRPCAddr, "grpc-addr", "", "Address of the gRPC health service (default from config)")
}

// statusLine is the one-line liveness result.
func statusLine(st backend.Status, err error) string {
	if err == nil {
		line := fmt.Sprintf("Server is running (HTTP %d)", st.StatusCode)
		if st.Title != "" {
			line += ": " + st.Title
		}
		return line
	}
	if st.StatusCode != 0 {
		return fmt.Sprintf("Server not responding (HTTP %d %s)", st.StatusCode, http.StatusText(st.StatusCode))
	}
	return "Server not running"
}
