package handlers

import (
	"net/http"
	"time"

	"github.com/ultimate-squeeze/scanner/internal/universe"
	"github.com/ultimate-squeeze/scanner/pkg/config"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// MetaHandler handles the informational endpoints: the scanner page,
// health, and the ticker universe listing.
type MetaHandler struct {
	universe *universe.Universe
	config   *config.Config
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(u *universe.Universe, cfg *config.Config) *MetaHandler {
	return &MetaHandler{
		universe: u,
		config:   cfg,
	}
}

// Health returns service status plus the active feature and performance
// configuration.
// GET /api/health
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"message":   "Ultimate Squeeze Scanner API",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
		"features": map[string]string{
			"live_ortex_integration": "active",
			"yahoo_finance_pricing":  "active",
			"professional_scoring":   "active",
			"multi_ticker_scanning":  "active",
			"production_optimized":   "active",
		},
		"ticker_universe_size": h.universe.Size(),
		"performance_config": map[string]interface{}{
			"max_safe_batch_size": h.config.Scanner.MaxBatchSize,
			"max_workers":         h.config.Scanner.Workers,
			"ortex_timeout":       h.config.Ortex.Timeout.Seconds(),
			"price_timeout":       h.config.Pricing.Timeout.Seconds(),
			"batch_timeout":       h.config.Scanner.BatchTimeout.Seconds(),
		},
	})
}

// TickerUniverse returns category sizes and sample tickers.
// GET /api/ticker-universe
func (h *MetaHandler) TickerUniverse(w http.ResponseWriter, r *http.Request) {
	categories := make(map[string]int)
	samples := make(map[string][]string)

	for _, cat := range h.universe.Categories() {
		categories[cat.Name] = len(cat.Tickers)
		n := len(cat.Tickers)
		if n > 5 {
			n = 5
		}
		samples[cat.Name] = cat.Tickers[:n]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories":     categories,
		"total_tickers":  h.universe.Size(),
		"sample_tickers": samples,
	})
}

// Index serves the embedded scanner page.
// GET /
func (h *MetaHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}
