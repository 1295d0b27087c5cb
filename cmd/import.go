package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"countrydata/cli/internal/dataset"
	"countrydata/cli/internal/dsn"
	"countrydata/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var importDataset string

// importCmd loads country records from a JSON file into a database dataset.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store country records from a JSON file in the dataset",
	Long: `The import command reads a JSON object mapping country names to records, for example

  {"Morocco": {"gdp": "$130.9 billion (2023)", "population": "37.8 million (2023)"}}

and stores each record in the dataset, replacing any record with the same name. Use
"-" to read standard input. The dataset is resolved the same way as for serve; the
built-in sample cannot be changed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		conn, origin := dsn.Resolve(importDataset, storedDatasetDSN)
		logger.Debug("dataset resolved", "origin", origin, "dsn", logging.Mask(conn))

		kind, n, err := importRecords(cmd.Context(), conn, in)
		if err != nil {
			pterm.Error.Println(logging.PresentError("import into dataset from "+string(origin), err))
			return reported(err)
		}
		pterm.Success.Printfln("Imported %d countries into the %s dataset", n, kind)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importDataset, "dataset", "", "Dataset DSN (postgres://..., sqlite://<path> or file:<path>)")
}

// importRecords opens the dataset for conn and imports r into it.
func importRecords(ctx context.Context, conn string, r io.Reader) (string, int, error) {
	src, err := dataset.Open(ctx, conn)
	if err != nil {
		return "", 0, fmt.Errorf("open dataset: %w", err)
	}
	defer src.Close()
	n, err := dataset.Import(ctx, src, r)
	return src.Kind(), n, err
}
