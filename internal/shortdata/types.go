// Package shortdata retrieves short-interest style metrics for tickers:
// live values from the Ortex API when a key is available, deterministic
// modeled values otherwise.
package shortdata

import "math"

// Data quality tags. The tag set on a Record must propagate unchanged
// into the scan result a consumer builds from it.
const (
	DataQualityLive     = "live"
	DataQualityEstimate = "estimate"
)

// Record sources.
const (
	SourceExternalAPI = "external_api"
	SourceModeled     = "modeled"
)

// Record holds the short-interest metrics for one ticker. All percentage
// fields are 0-100 scaled.
type Record struct {
	ShortInterest float64 `json:"short_interest"`
	Utilization   float64 `json:"utilization"`
	CostToBorrow  float64 `json:"cost_to_borrow"`
	DaysToCover   float64 `json:"days_to_cover"`
	DataQuality   string  `json:"data_quality"`
	Source        string  `json:"source"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
