package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ultimate-squeeze/scanner/internal/pricing"
	"github.com/ultimate-squeeze/scanner/internal/scanner"
	"github.com/ultimate-squeeze/scanner/internal/shortdata"
	"github.com/ultimate-squeeze/scanner/internal/universe"
	"github.com/ultimate-squeeze/scanner/pkg/config"
	"github.com/ultimate-squeeze/scanner/pkg/httputil"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scanner",
	Short: "Ultimate Squeeze Scanner - short squeeze candidate scanner",
	Long: `Ultimate Squeeze Scanner CLI

Scans a fixed ticker universe for short squeeze candidates: concurrent
price lookups, live or modeled short-interest metrics, squeeze scoring
and ranking.

Usage:
  go run ./cmd/scanner [command]

Examples:
  go run ./cmd/scanner api
  go run ./cmd/scanner scan --categories top_meme_stocks --max 10
  go run ./cmd/scanner universe`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// buildScanner wires the scan pipeline from configuration. Shared by the
// api and scan commands.
func buildScanner(cfg *config.Config, log *logger.Logger) (*scanner.Scanner, error) {
	priceClient := httputil.New(log, cfg.Pricing.Timeout)

	var provider pricing.Provider
	switch cfg.Pricing.Provider {
	case "chart":
		provider = pricing.NewChartProvider(priceClient, cfg.Pricing.BaseURL)
	case "finance":
		provider = pricing.NewFinanceProvider()
	default:
		return nil, fmt.Errorf("unknown pricing provider: %s", cfg.Pricing.Provider)
	}

	prices := pricing.NewFetcher(
		provider,
		cfg.Scanner.Workers,
		cfg.Pricing.Timeout,
		cfg.Scanner.BatchTimeout,
		log,
	)

	ortexClient := httputil.New(log, cfg.Ortex.Timeout)
	metrics := shortdata.NewClient(ortexClient, cfg.Ortex.BaseURL, cfg.Ortex.RateLimit, log)

	return scanner.New(universe.New(), prices, metrics, cfg.Scanner, log), nil
}
