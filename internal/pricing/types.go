package pricing

import (
	"context"
	"math"
)

// Quote is a point-in-time price snapshot for one ticker.
type Quote struct {
	Ticker         string  `json:"ticker"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`
	Volume         int64   `json:"volume"`
}

// Provider fetches the latest quote snapshot for a single ticker.
// Implementations must respect the context deadline.
type Provider interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

// newQuote derives the change fields from price and previous close.
// Change values are zero when the previous close is missing or zero.
func newQuote(ticker string, price, previousClose float64, volume int64) *Quote {
	var change, changePct float64
	if previousClose != 0 {
		change = price - previousClose
		changePct = change / previousClose * 100
	}

	return &Quote{
		Ticker:         ticker,
		CurrentPrice:   round2(price),
		PriceChange:    round2(change),
		PriceChangePct: round2(changePct),
		Volume:         volume,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
