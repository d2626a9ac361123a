package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inmodata/pisos-dashboard/internal/dataset"
)

var inspectDataset string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the dataset and print a summary report",
	Long: `Parses the listings CSV without starting the server and prints a
load report as JSON: row counts per transaction type, distinct provinces,
and whether the price-per-m² column was derived.

Useful as a dry run to validate a new dataset export before serving it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfg.Dataset.Path
		if inspectDataset != "" {
			path = inspectDataset
		}

		loader := dataset.New(path, cfg.Dataset.Delimiter)
		if _, err := loader.Load(cmd.Context()); err != nil {
			return eris.Wrap(err, "inspect: load dataset")
		}

		report := loader.Report()
		zap.L().Info("dataset inspected", zap.String("path", path), zap.Int("rows", report.Rows))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDataset, "dataset", "", "dataset CSV path (default from config)")
	rootCmd.AddCommand(inspectCmd)
}
