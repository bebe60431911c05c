package pricing

import (
	"context"
	"time"

	"github.com/ultimate-squeeze/scanner/pkg/logger"
)

// Fetcher runs concurrent quote lookups for a batch of tickers.
//
// Each scan gets its own fan-out: a fixed number of workers pull tickers
// from a channel and push one outcome per ticker back. The aggregator
// collects outcomes until the batch deadline; workers still in flight at
// the deadline are abandoned and their tickers simply omitted, so the
// wall-clock time of a batch is bounded regardless of stalled upstreams.
type Fetcher struct {
	provider     Provider
	workers      int
	callTimeout  time.Duration
	batchTimeout time.Duration
	logger       *logger.Logger
}

// NewFetcher creates a batch quote fetcher
func NewFetcher(provider Provider, workers int, callTimeout, batchTimeout time.Duration, log *logger.Logger) *Fetcher {
	return &Fetcher{
		provider:     provider,
		workers:      workers,
		callTimeout:  callTimeout,
		batchTimeout: batchTimeout,
		logger:       log.WithField("module", "pricing"),
	}
}

// FetchBatch fetches quotes for every ticker in the batch. Tickers whose
// lookup errors, times out, or returns an unparseable payload are absent
// from the returned map; a partial map is not an error. No retries.
func (f *Fetcher) FetchBatch(ctx context.Context, tickers []string) map[string]Quote {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, f.batchTimeout)
	defer cancel()

	tickerCh := make(chan string, len(tickers))
	resultCh := make(chan *Quote, len(tickers))

	workers := f.workers
	if workers > len(tickers) {
		workers = len(tickers)
	}

	for i := 0; i < workers; i++ {
		go f.quoteWorker(ctx, tickerCh, resultCh)
	}

	for _, ticker := range tickers {
		tickerCh <- ticker
	}
	close(tickerCh)

	// Collect one outcome per ticker, or stop at the batch deadline.
	// resultCh is buffered to the batch size so abandoned workers never
	// block on send.
	quotes := make(map[string]Quote)
	for received := 0; received < len(tickers); received++ {
		select {
		case q := <-resultCh:
			if q != nil {
				quotes[q.Ticker] = *q
			}
		case <-ctx.Done():
			f.logger.WithFields(map[string]interface{}{
				"received": received,
				"batch":    len(tickers),
			}).Warn("Batch deadline reached, abandoning in-flight lookups")
			return quotes
		}
	}

	f.logger.WithFields(map[string]interface{}{
		"batch":    len(tickers),
		"success":  len(quotes),
		"duration": time.Since(start),
	}).Info("Price fetch completed")

	return quotes
}

// quoteWorker processes quote lookups, one outcome per ticker
func (f *Fetcher) quoteWorker(ctx context.Context, tickerCh <-chan string, resultCh chan<- *Quote) {
	for ticker := range tickerCh {
		select {
		case <-ctx.Done():
			resultCh <- nil
			continue
		default:
		}

		callCtx, cancel := context.WithTimeout(ctx, f.callTimeout)
		q, err := f.provider.Quote(callCtx, ticker)
		cancel()

		if err != nil {
			// Dropped silently per the degradation policy; the ticker is
			// excluded from this scan.
			f.logger.WithError(err).WithField("ticker", ticker).Debug("Quote lookup failed")
			resultCh <- nil
			continue
		}

		resultCh <- q
	}
}
