package shortdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/ultimate-squeeze/scanner/pkg/httputil"
	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// Client handles communication with the Ortex short-interest API.
//
// Live lookups are a best-effort enhancement: every failure mode (timeout,
// non-200, wrong content type, unparseable body) falls through to the next
// candidate endpoint, and exhausting all candidates yields no data rather
// than an error. Calls are paced by an in-process rate limiter.
type Client struct {
	httpClient *httputil.Client
	limiter    *rate.Limiter
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new Ortex API client. ratePerSec bounds outbound
// call rate across all tickers of a scan.
func NewClient(httpClient *httputil.Client, baseURL string, ratePerSec int, log *logger.Logger) *Client {
	if ratePerSec < 1 {
		ratePerSec = 1
	}
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		baseURL:    baseURL,
		logger:     log.WithField("module", "shortdata"),
	}
}

// Fetch attempts to retrieve live metrics for a ticker. A nil Record with
// no error means "no data": the caller is expected to back-fill with a
// modeled estimate. A missing API key skips the lookup entirely.
func (c *Client) Fetch(ctx context.Context, ticker, apiKey string) *Record {
	if apiKey == "" {
		return nil
	}

	// Exchange-specific candidates, tried in order.
	candidates := []string{
		fmt.Sprintf("%s/api/v1/stock/nasdaq/%s/short_interest", c.baseURL, ticker),
		fmt.Sprintf("%s/api/v1/stock/nyse/%s/short_interest", c.baseURL, ticker),
	}

	for _, url := range candidates {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil
		}

		rec := c.tryEndpoint(ctx, url, apiKey)
		if rec != nil {
			c.logger.WithField("ticker", ticker).Debug("Live short data retrieved")
			return rec
		}
	}

	return nil
}

// tryEndpoint fetches and normalizes a single candidate; nil on any failure
func (c *Client) tryEndpoint(ctx context.Context, url, apiKey string) *Record {
	resp, err := c.httpClient.Get(ctx, url, map[string]string{
		"User-Agent":    "Ultimate-Squeeze-Scanner/Production",
		"Accept":        "application/json",
		"Ortex-Api-Key": apiKey,
	})
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}

	return normalize(payload)
}
