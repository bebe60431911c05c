package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Built once at startup and passed by reference; never mutated afterwards.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// External sources
	Ortex   OrtexConfig
	Pricing PricingConfig

	// Scan pipeline tunables
	Scanner ScannerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// OrtexConfig holds the optional short-interest source configuration.
type OrtexConfig struct {
	APIKey  string // empty means live metrics are skipped entirely
	BaseURL string
	Timeout time.Duration

	// Rate limit for outbound Ortex calls (requests per second)
	RateLimit int
}

// PricingConfig holds the quote source configuration.
type PricingConfig struct {
	Provider string // "finance" (finance-go quote API) or "chart" (Yahoo chart endpoint)
	BaseURL  string // chart provider base URL
	Timeout  time.Duration
}

// ScannerConfig holds the scan orchestration tunables.
// These are internal performance knobs, not required external configuration.
type ScannerConfig struct {
	MaxBatchSize     int           // hard cap on tickers per scan
	DefaultBatchSize int           // batch size when the request sets no limit
	Workers          int           // concurrent price lookups
	BatchTimeout     time.Duration // wall-clock ceiling for the price fan-out
	LiveThreshold    int           // live metrics only when priced count <= this
	MaxLiveLookups   int           // leading subset size for live metrics
	ExcellentBelow   time.Duration // scans faster than this rate "excellent"
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Ortex: OrtexConfig{
			APIKey:    getEnv("ORTEX_API_KEY", ""),
			BaseURL:   getEnv("ORTEX_BASE_URL", "https://api.ortex.com"),
			Timeout:   getEnvAsDuration("ORTEX_TIMEOUT", "3s"),
			RateLimit: getEnvAsInt("ORTEX_RATE_LIMIT", 2),
		},

		Pricing: PricingConfig{
			Provider: getEnv("PRICE_PROVIDER", "finance"),
			BaseURL:  getEnv("PRICE_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:  getEnvAsDuration("PRICE_TIMEOUT", "4s"),
		},

		Scanner: ScannerConfig{
			MaxBatchSize:     getEnvAsInt("SCAN_MAX_BATCH_SIZE", 15),
			DefaultBatchSize: getEnvAsInt("SCAN_DEFAULT_BATCH_SIZE", 10),
			Workers:          getEnvAsInt("SCAN_WORKERS", 8),
			BatchTimeout:     getEnvAsDuration("SCAN_BATCH_TIMEOUT", "20s"),
			LiveThreshold:    getEnvAsInt("SCAN_LIVE_THRESHOLD", 8),
			MaxLiveLookups:   getEnvAsInt("SCAN_MAX_LIVE_LOOKUPS", 5),
			ExcellentBelow:   getEnvAsDuration("SCAN_EXCELLENT_BELOW", "10s"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are coherent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Pricing.Provider != "finance" && c.Pricing.Provider != "chart" {
		return fmt.Errorf("PRICE_PROVIDER must be one of: finance, chart")
	}

	if c.Scanner.MaxBatchSize < 1 {
		return fmt.Errorf("SCAN_MAX_BATCH_SIZE must be positive")
	}

	if c.Scanner.Workers < 1 {
		return fmt.Errorf("SCAN_WORKERS must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
