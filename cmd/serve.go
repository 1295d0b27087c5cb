// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"countrydata/cli/internal/dataset"
	"countrydata/cli/internal/dsn"
	"countrydata/cli/internal/logging"
	"countrydata/cli/internal/server"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	serveDataset  string
	serveAddr     string
	serveGRPCAddr string
	serveNoGRPC   bool
)

// serveCmd runs the development backend until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local country data server",
	Long: `The serve command starts the development backend: POST /get_country_data, a small
landing page on / and a gRPC health service on a second port.

The dataset is taken from --dataset, COUNTRYDATA_DSN, DATABASE_URL or the DSN saved
with "countrydata connect", in that order. Without any of them the built-in sample of
ten countries is served. PostgreSQL (postgres://...) and SQLite (sqlite://<path> or
file:<path>) datasets are created and seeded on first use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conn, origin := dsn.Resolve(serveDataset, storedDatasetDSN)
		logger.Debug("dataset resolved", "origin", origin, "dsn", logging.Mask(conn))

		src, err := dataset.Open(ctx, conn)
		if err != nil {
			pterm.Error.Println(logging.PresentError("open dataset from "+string(origin), err))
			return reported(fmt.Errorf("open dataset: %w", err))
		}
		defer src.Close()

		addr := cfg.Serve.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		grpcAddr := cfg.Serve.GRPCAddr
		if cmd.Flags().Changed("grpc-addr") {
			grpcAddr = serveGRPCAddr
		}
		if serveNoGRPC {
			grpcAddr = ""
		}

		srv := server.New(src, server.Options{
			Addr:      addr,
			GRPCAddr:  grpcAddr,
			Countries: cfg.Variant.Countries(),
			Logger:    logger,
		})
		if err := srv.Listen(); err != nil {
			return err
		}

		pterm.Success.Printfln("Serving %s dataset (%s)", src.Kind(), origin)
		pterm.Println("   HTTP  http://" + srv.Addr())
		if srv.GRPCAddr() != "" {
			pterm.Println("   gRPC  " + srv.GRPCAddr() + " (grpc.health.v1)")
		}
		pterm.Println("Press Ctrl+C to stop.")

		if err := srv.Serve(ctx); err != nil {
			return err
		}
		pterm.Info.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveDataset, "dataset", "", "Dataset DSN (postgres://..., sqlite://<path> or file:<path>)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&serveGRPCAddr, "grpc-addr", "", "gRPC health listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoGRPC, "no-grpc", false, "Do not start the gRPC health service")
}

// storedDatasetDSN reads the DSN saved by connect. A keychain that cannot be opened
// counts as nothing stored.
func storedDatasetDSN() (string, error) {
	km, err := openKeychain()
	if err != nil {
		logger.Debug("keychain unavailable", "error", err)
		return "", err
	}
	return km.LoadDatasetDSN()
}
