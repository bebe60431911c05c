package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ultimate-squeeze/scanner/internal/scanner"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// ScanService runs scan pipelines. Implemented by scanner.Scanner.
type ScanService interface {
	Scan(ctx context.Context, opts scanner.Options) (*scanner.Report, error)
	ScanOne(ctx context.Context, ticker, ortexKey string) (*scanner.Result, error)
}

// ScanHandler handles scan API endpoints.
type ScanHandler struct {
	svc      ScanService
	ortexKey string // fallback when the request carries no key
	logger   *logger.Logger
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(svc ScanService, ortexKey string, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		svc:      svc,
		ortexKey: ortexKey,
		logger:   log,
	}
}

// ScanRequest represents a batch scan request.
type ScanRequest struct {
	OrtexKey string      `json:"ortex_key"`
	Filters  ScanFilters `json:"filters"`
}

// ScanFilters bounds the batch selection.
type ScanFilters struct {
	Categories []string `json:"categories"`
	MaxTickers int      `json:"max_tickers"`
	MinScore   int      `json:"min_score"`
}

// ScanResponse represents a batch scan response.
type ScanResponse struct {
	Success     bool             `json:"success"`
	ScanResults []scanner.Result `json:"scan_results"`
	ScanStats   scanner.Stats    `json:"scan_stats"`
	Message     string           `json:"message"`
}

// Scan runs the full pipeline for a batch of tickers.
// POST /api/scan
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// An empty body is a valid default scan.
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.svc.Scan(ctx, scanner.Options{
		OrtexKey:   h.resolveKey(req.OrtexKey),
		Categories: req.Filters.Categories,
		MaxTickers: req.Filters.MaxTickers,
		MinScore:   req.Filters.MinScore,
	})
	if err != nil {
		h.logger.WithError(err).Error("Scan failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ScanResponse{
		Success:     true,
		ScanResults: report.Results,
		ScanStats:   report.Stats,
		Message:     fmt.Sprintf("Production scan completed - %d tickers analyzed", len(report.Results)),
	})
}

// SingleScanRequest represents a single ticker analysis request.
type SingleScanRequest struct {
	Ticker   string `json:"ticker"`
	OrtexKey string `json:"ortex_key"`
}

// SingleScanResponse represents a single ticker analysis response.
type SingleScanResponse struct {
	Success bool            `json:"success"`
	Result  *scanner.Result `json:"result"`
}

// SingleScan analyzes one ticker with a full score breakdown.
// POST /api/single-scan
func (h *ScanHandler) SingleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SingleScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.ScanOne(ctx, req.Ticker, h.resolveKey(req.OrtexKey))
	if err != nil {
		switch {
		case errors.Is(err, scanner.ErrNoTicker):
			respondError(w, http.StatusBadRequest, "No ticker provided")
		case errors.Is(err, scanner.ErrPriceUnavailable):
			respondError(w, http.StatusBadRequest, "Failed to get price data")
		default:
			h.logger.WithError(err).Error("Single scan failed")
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, SingleScanResponse{
		Success: true,
		Result:  result,
	})
}

// resolveKey prefers the request-supplied key over the configured one.
func (h *ScanHandler) resolveKey(requestKey string) string {
	if requestKey != "" {
		return requestKey
	}
	return h.ortexKey
}
