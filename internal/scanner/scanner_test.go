package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultimate-squeeze/scanner/internal/pricing"
	"github.com/ultimate-squeeze/scanner/internal/scoring"
	"github.com/ultimate-squeeze/scanner/internal/shortdata"
	"github.com/ultimate-squeeze/scanner/internal/universe"
	"github.com/ultimate-squeeze/scanner/pkg/config"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// fakePrices serves canned quotes; tickers absent from the map fail.
type fakePrices struct {
	quotes map[string]pricing.Quote
	calls  int
}

func (f *fakePrices) FetchBatch(ctx context.Context, tickers []string) map[string]pricing.Quote {
	f.calls++
	out := make(map[string]pricing.Quote)
	for _, t := range tickers {
		if q, ok := f.quotes[t]; ok {
			out[t] = q
		}
	}
	return out
}

// fakeMetrics serves canned live records; tickers absent yield no data.
type fakeMetrics struct {
	records map[string]*shortdata.Record
	calls   int
}

func (f *fakeMetrics) Fetch(ctx context.Context, ticker, apiKey string) *shortdata.Record {
	f.calls++
	return f.records[ticker]
}

func testConfig() config.ScannerConfig {
	return config.ScannerConfig{
		MaxBatchSize:     15,
		DefaultBatchSize: 10,
		Workers:          4,
		BatchTimeout:     5 * time.Second,
		LiveThreshold:    8,
		MaxLiveLookups:   5,
		ExcellentBelow:   10 * time.Second,
	}
}

func quoteFor(ticker string, price, prevClose float64) pricing.Quote {
	change := price - prevClose
	return pricing.Quote{
		Ticker:         ticker,
		CurrentPrice:   price,
		PriceChange:    change,
		PriceChangePct: change / prevClose * 100,
		Volume:         1000,
	}
}

func TestScanRanksDescending(t *testing.T) {
	// Live records engineered to score roughly 95 / 59 / 15, in reverse of
	// the batch order so the sort is observable.
	prices := &fakePrices{quotes: map[string]pricing.Quote{
		"GME":  quoteFor("GME", 100, 100),
		"AMC":  quoteFor("AMC", 50, 50),
		"BBBY": quoteFor("BBBY", 20, 20),
	}}
	metrics := &fakeMetrics{records: map[string]*shortdata.Record{
		"GME":  {ShortInterest: 5, Utilization: 30, CostToBorrow: 1, DaysToCover: 1, DataQuality: shortdata.DataQualityLive, Source: shortdata.SourceExternalAPI},
		"AMC":  {ShortInterest: 20, Utilization: 70, CostToBorrow: 15, DaysToCover: 4, DataQuality: shortdata.DataQualityLive, Source: shortdata.SourceExternalAPI},
		"BBBY": {ShortInterest: 45, Utilization: 99, CostToBorrow: 50, DaysToCover: 20, DataQuality: shortdata.DataQualityLive, Source: shortdata.SourceExternalAPI},
	}}

	s := New(universe.New(), prices, metrics, testConfig(), logger.Discard())

	report, err := s.Scan(context.Background(), Options{
		OrtexKey:   "key",
		Categories: []string{universe.CategoryMeme},
		MaxTickers: 3,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	for i := 1; i < len(report.Results); i++ {
		assert.GreaterOrEqual(t,
			report.Results[i-1].SqueezeScore,
			report.Results[i].SqueezeScore,
			"results must be sorted by score descending")
	}
	assert.Equal(t, "BBBY", report.Results[0].Ticker)
	assert.Equal(t, "GME", report.Results[2].Ticker)
	assert.Equal(t, 3, report.Stats.LiveOrtexCount)
}

func TestScanDropsFailedPriceLookups(t *testing.T) {
	prices := &fakePrices{quotes: map[string]pricing.Quote{
		"GME": quoteFor("GME", 25, 20),
		"AMC": quoteFor("AMC", 10, 11),
		// BBBY missing: its price fetch failed
	}}

	s := New(universe.New(), prices, &fakeMetrics{}, testConfig(), logger.Discard())

	report, err := s.Scan(context.Background(), Options{MaxTickers: 3})
	require.NoError(t, err)

	assert.Len(t, report.Results, 2)
	assert.Equal(t, 3, report.Stats.TotalTickersScanned)
	assert.Equal(t, 2, report.Stats.SuccessfulAnalysis)
	for _, r := range report.Results {
		assert.NotEqual(t, "BBBY", r.Ticker)
	}
}

func TestScanWithoutKeyUsesEstimatesOnly(t *testing.T) {
	prices := &fakePrices{quotes: map[string]pricing.Quote{
		"GME": quoteFor("GME", 25, 20),
		"AMC": quoteFor("AMC", 10, 11),
	}}
	metrics := &fakeMetrics{records: map[string]*shortdata.Record{
		"GME": {ShortInterest: 30, DataQuality: shortdata.DataQualityLive},
	}}

	s := New(universe.New(), prices, metrics, testConfig(), logger.Discard())

	report, err := s.Scan(context.Background(), Options{MaxTickers: 2})
	require.NoError(t, err)

	assert.Zero(t, metrics.calls, "no credential means no live lookups")
	assert.Zero(t, report.Stats.LiveOrtexCount)
	for _, r := range report.Results {
		assert.Equal(t, shortdata.DataQualityEstimate, r.DataQuality)
		assert.Equal(t, shortdata.SourceModeled, r.OrtexData.Source)
	}
}

func TestScanMetricsFailureFallsBackToEstimate(t *testing.T) {
	prices := &fakePrices{quotes: map[string]pricing.Quote{
		"GME": quoteFor("GME", 25, 20),
	}}
	// Live source returns no data for every ticker (e.g. all candidates 500).
	metrics := &fakeMetrics{}

	s := New(universe.New(), prices, metrics, testConfig(), logger.Discard())

	report, err := s.Scan(context.Background(), Options{OrtexKey: "key", MaxTickers: 1})
	require.NoError(t, err)

	require.Len(t, report.Results, 1, "metrics failure must not drop the ticker")
	assert.Positive(t, metrics.calls)
	assert.Equal(t, shortdata.DataQualityEstimate, report.Results[0].DataQuality)
	assert.Zero(t, report.Stats.LiveOrtexCount)
}

func TestScanSkipsLiveLookupsAboveThreshold(t *testing.T) {
	quotes := make(map[string]pricing.Quote)
	u := universe.New()
	for _, ticker := range u.AllTickers()[:10] {
		quotes[ticker] = quoteFor(ticker, 10, 10)
	}
	prices := &fakePrices{quotes: quotes}
	metrics := &fakeMetrics{}

	cfg := testConfig()
	cfg.LiveThreshold = 8

	s := New(u, prices, metrics, cfg, logger.Discard())

	report, err := s.Scan(context.Background(), Options{OrtexKey: "key", MaxTickers: 10})
	require.NoError(t, err)

	assert.Zero(t, metrics.calls, "live lookups are skipped for large batches")
	assert.Len(t, report.Results, 10)
}

func TestScanLiveLookupsBoundedToLeadingSubset(t *testing.T) {
	quotes := make(map[string]pricing.Quote)
	u := universe.New()
	for _, ticker := range u.AllTickers()[:7] {
		quotes[ticker] = quoteFor(ticker, 10, 10)
	}
	prices := &fakePrices{quotes: quotes}
	metrics := &fakeMetrics{}

	s := New(u, prices, metrics, testConfig(), logger.Discard())

	_, err := s.Scan(context.Background(), Options{OrtexKey: "key", MaxTickers: 7})
	require.NoError(t, err)

	assert.Equal(t, 5, metrics.calls, "only the leading subset gets live lookups")
}

func TestScanZeroSurvivorsIsSuccess(t *testing.T) {
	s := New(universe.New(), &fakePrices{}, &fakeMetrics{}, testConfig(), logger.Discard())

	report, err := s.Scan(context.Background(), Options{MaxTickers: 5})
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Stats.SuccessfulAnalysis)
	assert.Equal(t, 5, report.Stats.TotalTickersScanned)
}

func TestScanAppliesMinScoreFloor(t *testing.T) {
	prices := &fakePrices{quotes: map[string]pricing.Quote{
		"GME": quoteFor("GME", 100, 100),
		"AMC": quoteFor("AMC", 200, 200),
	}}
	metrics := &fakeMetrics{records: map[string]*shortdata.Record{
		"GME": {ShortInterest: 45, Utilization: 99, CostToBorrow: 50, DaysToCover: 20, DataQuality: shortdata.DataQualityLive},
		"AMC": {ShortInterest: 1, Utilization: 10, CostToBorrow: 0.5, DaysToCover: 0.5, DataQuality: shortdata.DataQualityLive},
	}}

	s := New(universe.New(), prices, metrics, testConfig(), logger.Discard())

	report, err := s.Scan(context.Background(), Options{
		OrtexKey:   "key",
		Categories: []string{universe.CategoryMeme},
		MaxTickers: 5,
		MinScore:   50,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "GME", report.Results[0].Ticker)
}

func TestScanCapsBatchAtMaxSize(t *testing.T) {
	s := New(universe.New(), &fakePrices{}, &fakeMetrics{}, testConfig(), logger.Discard())

	report, err := s.Scan(context.Background(), Options{MaxTickers: 1000})
	require.NoError(t, err)

	assert.Equal(t, 15, report.Stats.TotalTickersScanned)
}

func TestScanOne(t *testing.T) {
	prices := &fakePrices{quotes: map[string]pricing.Quote{
		"GME": quoteFor("GME", 25, 20),
	}}

	s := New(universe.New(), prices, &fakeMetrics{}, testConfig(), logger.Discard())

	result, err := s.ScanOne(context.Background(), "gme", "")
	require.NoError(t, err)

	assert.Equal(t, "GME", result.Ticker, "ticker is upcased")
	require.NotNil(t, result.ScoreBreakdown, "single scan carries the breakdown")
	assert.NotEqual(t, scoring.TypeError, result.SqueezeType)
	assert.Equal(t, shortdata.DataQualityEstimate, result.DataQuality)
}

func TestScanOneEmptyTicker(t *testing.T) {
	prices := &fakePrices{}
	s := New(universe.New(), prices, &fakeMetrics{}, testConfig(), logger.Discard())

	_, err := s.ScanOne(context.Background(), "   ", "key")

	assert.ErrorIs(t, err, ErrNoTicker)
	assert.Zero(t, prices.calls, "no upstream calls for a missing ticker")
}

func TestScanOnePriceFailure(t *testing.T) {
	s := New(universe.New(), &fakePrices{}, &fakeMetrics{}, testConfig(), logger.Discard())

	_, err := s.ScanOne(context.Background(), "GME", "")

	assert.ErrorIs(t, err, ErrPriceUnavailable)
}
