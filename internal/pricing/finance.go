package pricing

import (
	"context"
	"fmt"

	"github.com/piquette/finance-go/quote"
)

// FinanceProvider fetches quote snapshots through the finance-go quote
// API. The library does not take a context, so the call runs in its own
// goroutine and is abandoned when the context deadline passes; the
// library's own HTTP timeout eventually reaps it.
type FinanceProvider struct{}

// NewFinanceProvider creates a finance-go quote provider
func NewFinanceProvider() *FinanceProvider {
	return &FinanceProvider{}
}

// Quote fetches the latest snapshot for one ticker.
func (p *FinanceProvider) Quote(ctx context.Context, ticker string) (*Quote, error) {
	type result struct {
		price         float64
		previousClose float64
		volume        int64
		err           error
	}

	ch := make(chan result, 1)
	go func() {
		q, err := quote.Get(ticker)
		if err != nil {
			ch <- result{err: fmt.Errorf("quote fetch failed: %w", err)}
			return
		}
		if q == nil {
			ch <- result{err: fmt.Errorf("empty quote for %s", ticker)}
			return
		}
		ch <- result{
			price:         q.RegularMarketPrice,
			previousClose: q.RegularMarketPreviousClose,
			volume:        int64(q.RegularMarketVolume),
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		return newQuote(ticker, r.price, r.previousClose, r.volume), nil
	}
}
