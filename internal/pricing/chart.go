package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ultimate-squeeze/scanner/pkg/httputil"
)

// ChartProvider fetches quote snapshots from the Yahoo Finance chart
// endpoint. The base URL is configurable so tests can point it at a fake
// upstream.
type ChartProvider struct {
	httpClient *httputil.Client
	baseURL    string
}

// NewChartProvider creates a chart-endpoint quote provider
func NewChartProvider(httpClient *httputil.Client, baseURL string) *ChartProvider {
	return &ChartProvider{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// chartResponse mirrors the subset of the chart payload the scanner needs.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				PreviousClose       float64 `json:"previousClose"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// Quote fetches the latest snapshot for one ticker.
func (p *ChartProvider) Quote(ctx context.Context, ticker string) (*Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s", p.baseURL, ticker)

	resp, err := p.httpClient.Get(ctx, url, map[string]string{
		"User-Agent": "Mozilla/5.0 (compatible; SqueezeScanner/1.0)",
	})
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", ticker)
	}

	meta := payload.Chart.Result[0].Meta
	return newQuote(ticker, meta.RegularMarketPrice, meta.PreviousClose, meta.RegularMarketVolume), nil
}
