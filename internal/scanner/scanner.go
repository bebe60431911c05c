// Package scanner orchestrates a squeeze scan: batch selection, the
// concurrent price fetch, live/synthetic metrics resolution, scoring, and
// ranking. Scans are stateless; every request gets a fresh pipeline run.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ultimate-squeeze/scanner/internal/pricing"
	"github.com/ultimate-squeeze/scanner/internal/scoring"
	"github.com/ultimate-squeeze/scanner/internal/shortdata"
	"github.com/ultimate-squeeze/scanner/internal/universe"
	"github.com/ultimate-squeeze/scanner/pkg/config"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// Sentinel errors for the single-ticker variant.
var (
	ErrNoTicker         = errors.New("no ticker provided")
	ErrPriceUnavailable = errors.New("failed to get price data")
)

// PriceFetcher retrieves quotes for a batch of tickers.
type PriceFetcher interface {
	FetchBatch(ctx context.Context, tickers []string) map[string]pricing.Quote
}

// MetricsFetcher retrieves live short-interest metrics for one ticker;
// nil means no data.
type MetricsFetcher interface {
	Fetch(ctx context.Context, ticker, apiKey string) *shortdata.Record
}

// Scanner runs the scan pipeline.
type Scanner struct {
	universe *universe.Universe
	prices   PriceFetcher
	metrics  MetricsFetcher
	cfg      config.ScannerConfig
	logger   *logger.Logger
}

// New creates a scan orchestrator
func New(u *universe.Universe, prices PriceFetcher, metrics MetricsFetcher, cfg config.ScannerConfig, log *logger.Logger) *Scanner {
	return &Scanner{
		universe: u,
		prices:   prices,
		metrics:  metrics,
		cfg:      cfg,
		logger:   log.WithField("module", "scanner"),
	}
}

// Options selects and bounds a scan.
type Options struct {
	OrtexKey   string   // empty disables live metrics
	Categories []string // empty means the full universe
	MaxTickers int      // 0 means the configured default
	MinScore   int      // results below this score are filtered out
}

// Result is the merged per-ticker view: price, metrics, and score.
type Result struct {
	Ticker         string             `json:"ticker"`
	SqueezeScore   int                `json:"squeeze_score"`
	SqueezeType    string             `json:"squeeze_type"`
	CurrentPrice   float64            `json:"current_price"`
	PriceChange    float64            `json:"price_change"`
	PriceChangePct float64            `json:"price_change_pct"`
	Volume         int64              `json:"volume"`
	OrtexData      shortdata.Record   `json:"ortex_data"`
	RiskFactors    []string           `json:"risk_factors"`
	ScoreBreakdown *scoring.Breakdown `json:"score_breakdown,omitempty"`
	DataQuality    string             `json:"data_quality"`
	Timestamp      time.Time          `json:"timestamp"`
}

// Stats summarizes a scan run.
type Stats struct {
	TotalTickersScanned int       `json:"total_tickers_scanned"`
	SuccessfulAnalysis  int       `json:"successful_analysis"`
	LiveOrtexCount      int       `json:"live_ortex_count"`
	ScanTimeSeconds     float64   `json:"scan_time_seconds"`
	PerformanceRating   string    `json:"performance_rating"`
	Timestamp           time.Time `json:"timestamp"`
}

// Report bundles ranked results with scan statistics.
type Report struct {
	Results []Result `json:"results"`
	Stats   Stats    `json:"scan_stats"`
}

// Scan runs the full pipeline for a batch of tickers.
//
// Tickers whose price lookup fails are silently excluded; a scan that
// prices zero tickers is a success with an empty result list, not an
// error. Live metrics are attempted only for a small leading subset and
// only when the priced count is within the configured threshold; every
// other ticker gets a deterministic modeled record.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Report, error) {
	start := time.Now()

	// SELECT: resolve categories and cap the batch.
	batch := s.universe.TickersFor(opts.Categories)

	limit := opts.MaxTickers
	if limit <= 0 {
		limit = s.cfg.DefaultBatchSize
	}
	if limit > s.cfg.MaxBatchSize {
		limit = s.cfg.MaxBatchSize
	}
	if len(batch) > limit {
		batch = batch[:limit]
	}

	// FETCH_PRICES: survivors keep their batch order.
	quotes := s.prices.FetchBatch(ctx, batch)
	survivors := make([]string, 0, len(quotes))
	for _, ticker := range batch {
		if _, ok := quotes[ticker]; ok {
			survivors = append(survivors, ticker)
		}
	}

	// FETCH_METRICS: bounded, best-effort, sequential.
	records := make(map[string]*shortdata.Record)
	liveCount := 0
	if opts.OrtexKey != "" && len(survivors) <= s.cfg.LiveThreshold {
		lookups := len(survivors)
		if lookups > s.cfg.MaxLiveLookups {
			lookups = s.cfg.MaxLiveLookups
		}
		for _, ticker := range survivors[:lookups] {
			if rec := s.metrics.Fetch(ctx, ticker, opts.OrtexKey); rec != nil {
				records[ticker] = rec
				liveCount++
			}
		}
	}

	// BACKFILL + SCORE_AND_MERGE.
	now := time.Now()
	results := make([]Result, 0, len(survivors))
	for _, ticker := range survivors {
		rec, ok := records[ticker]
		if !ok {
			modeled := shortdata.Synthesize(ticker, s.universe.CategoryOf(ticker))
			rec = &modeled
		}

		results = append(results, buildResult(ticker, quotes[ticker], rec, now, false))
	}

	// RANK: stable sort keeps prior relative order on score ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SqueezeScore > results[j].SqueezeScore
	})

	if opts.MinScore > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.SqueezeScore >= opts.MinScore {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	elapsed := time.Since(start)
	report := &Report{
		Results: results,
		Stats: Stats{
			TotalTickersScanned: len(batch),
			SuccessfulAnalysis:  len(results),
			LiveOrtexCount:      liveCount,
			ScanTimeSeconds:     math.Round(elapsed.Seconds()*10) / 10,
			PerformanceRating:   s.rating(elapsed),
			Timestamp:           now,
		},
	}

	s.logger.WithFields(map[string]interface{}{
		"batch":    len(batch),
		"results":  len(results),
		"live":     liveCount,
		"duration": elapsed,
	}).Info("Scan completed")

	return report, nil
}

// ScanOne runs the pipeline for a single ticker. Unlike the batch scan it
// fails fast: a missing symbol or a failed price lookup is an error, and
// the result carries the full score breakdown.
func (s *Scanner) ScanOne(ctx context.Context, ticker, ortexKey string) (*Result, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, ErrNoTicker
	}

	quotes := s.prices.FetchBatch(ctx, []string{ticker})
	quote, ok := quotes[ticker]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrPriceUnavailable, ticker)
	}

	var rec *shortdata.Record
	if ortexKey != "" {
		rec = s.metrics.Fetch(ctx, ticker, ortexKey)
	}
	if rec == nil {
		modeled := shortdata.Synthesize(ticker, s.universe.CategoryOf(ticker))
		rec = &modeled
	}

	result := buildResult(ticker, quote, rec, time.Now(), true)
	return &result, nil
}

// buildResult merges price, metrics and score into the wire shape
func buildResult(ticker string, quote pricing.Quote, rec *shortdata.Record, ts time.Time, withBreakdown bool) Result {
	scored := scoring.Score(rec, quote.PriceChangePct)

	result := Result{
		Ticker:         ticker,
		SqueezeScore:   scored.SqueezeScore,
		SqueezeType:    scored.SqueezeType,
		CurrentPrice:   quote.CurrentPrice,
		PriceChange:    quote.PriceChange,
		PriceChangePct: quote.PriceChangePct,
		Volume:         quote.Volume,
		OrtexData:      *rec,
		RiskFactors:    scored.RiskFactors,
		DataQuality:    rec.DataQuality,
		Timestamp:      ts,
	}

	if withBreakdown {
		breakdown := scored.Breakdown
		result.ScoreBreakdown = &breakdown
	}

	return result
}

// rating labels scan latency for the stats block
func (s *Scanner) rating(elapsed time.Duration) string {
	if elapsed < s.cfg.ExcellentBelow {
		return "excellent"
	}
	return "good"
}
