package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ultimate-squeeze/scanner/internal/scanner"
	"github.com/ultimate-squeeze/scanner/pkg/config"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [ticker]",
	Short: "Run a scan from the terminal",
	Long: `Runs the scan pipeline once and prints the ranked results as JSON.

With a ticker argument, analyzes that single ticker (including the
score breakdown) instead of a batch.

Example:
  go run ./cmd/scanner scan
  go run ./cmd/scanner scan --categories top_meme_stocks,biotech_squeeze --max 10
  go run ./cmd/scanner scan --min-score 45
  go run ./cmd/scanner scan GME`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var (
	scanCategories []string
	scanMax        int
	scanMinScore   int
	scanOrtexKey   string
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringSliceVar(&scanCategories, "categories", nil, "universe categories to scan (default: all)")
	scanCmd.Flags().IntVar(&scanMax, "max", 0, "max tickers per scan (default: configured batch size)")
	scanCmd.Flags().IntVar(&scanMinScore, "min-score", 0, "drop results below this squeeze score")
	scanCmd.Flags().StringVar(&scanOrtexKey, "ortex-key", "", "Ortex API key (overrides ORTEX_API_KEY)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	svc, err := buildScanner(cfg, log)
	if err != nil {
		return err
	}

	key := scanOrtexKey
	if key == "" {
		key = cfg.Ortex.APIKey
	}

	ctx := context.Background()

	var out interface{}
	if len(args) == 1 {
		out, err = svc.ScanOne(ctx, args[0], key)
	} else {
		out, err = svc.Scan(ctx, scanner.Options{
			OrtexKey:   key,
			Categories: scanCategories,
			MaxTickers: scanMax,
			MinScore:   scanMinScore,
		})
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
