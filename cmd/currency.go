package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inmodata/pisos-dashboard/pkg/frankfurter"
)

var (
	currencyCode   string
	currencyYear   int
	currencyFormat string
)

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Fetch a daily exchange-rate series from Frankfurter",
	Long: `Fetches the EUR exchange-rate series for a currency over one
calendar year. For the current year the series runs through today.

Examples:
  # USD rates for 2023 as JSON
  pisos-dashboard currency --code USD --year 2023

  # GBP rates for this year as CSV
  pisos-dashboard currency --code GBP --format csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		year := currencyYear
		if year == 0 {
			year = time.Now().Year()
		}

		client := frankfurter.NewClient(frankfurter.Options{
			BaseURL:    cfg.Frankfurter.BaseURL,
			Timeout:    time.Duration(cfg.Frankfurter.TimeoutSecs) * time.Second,
			RatePerSec: cfg.Frankfurter.RatePerSec,
			CacheTTL:   time.Duration(cfg.Frankfurter.CacheTTLMinutes) * time.Minute,
		})

		rates, err := client.Series(cmd.Context(), currencyCode, year)
		if err != nil {
			return eris.Wrap(err, "currency: fetch series")
		}
		zap.L().Info("currency series fetched",
			zap.String("code", currencyCode),
			zap.Int("year", year),
			zap.Int("observations", len(rates)),
		)

		if currencyFormat == "csv" {
			w := csv.NewWriter(os.Stdout)
			if err := w.Write([]string{"date", "rate"}); err != nil {
				return eris.Wrap(err, "currency: write csv")
			}
			for _, r := range rates {
				record := []string{r.Date.Format("2006-01-02"), strconv.FormatFloat(r.Value, 'f', -1, 64)}
				if err := w.Write(record); err != nil {
					return eris.Wrap(err, "currency: write csv")
				}
			}
			w.Flush()
			return w.Error()
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rates)
	},
}

func init() {
	currencyCmd.Flags().StringVar(&currencyCode, "code", "", "currency code, e.g. USD (required)")
	currencyCmd.Flags().IntVar(&currencyYear, "year", 0, "calendar year (default: current year)")
	currencyCmd.Flags().StringVar(&currencyFormat, "format", "json", "output format: json or csv")
	_ = currencyCmd.MarkFlagRequired("code")
	rootCmd.AddCommand(currencyCmd)
}
