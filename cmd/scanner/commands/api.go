package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ultimate-squeeze/scanner/internal/api"
	"github.com/ultimate-squeeze/scanner/internal/api/handlers"
	"github.com/ultimate-squeeze/scanner/internal/universe"
	"github.com/ultimate-squeeze/scanner/pkg/config"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /                     - Scanner page
  GET  /api/health           - Health check
  GET  /api/ticker-universe  - Ticker universe info
  POST /api/scan             - Run a batch scan
  POST /api/single-scan      - Analyze a single ticker

Example:
  go run ./cmd/scanner api
  go run ./cmd/scanner api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Ultimate Squeeze Scanner API ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	svc, err := buildScanner(cfg, log)
	if err != nil {
		return err
	}

	scanHandler := handlers.NewScanHandler(svc, cfg.Ortex.APIKey, log)
	metaHandler := handlers.NewMetaHandler(universe.New(), cfg)

	router := api.NewRouter(scanHandler, metaHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /")
	fmt.Println("  GET  /api/health")
	fmt.Println("  GET  /api/ticker-universe")
	fmt.Println("  POST /api/scan")
	fmt.Println("  POST /api/single-scan")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
