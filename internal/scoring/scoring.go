// Package scoring implements the squeeze scoring algorithm: a pure
// function from short-interest metrics and price momentum to a bounded
// score, a risk classification, and a set of risk-factor tags.
package scoring

import (
	"github.com/ultimate-squeeze/scanner/internal/shortdata"
)

// Squeeze risk classifications, from total score thresholds.
const (
	TypeExtreme  = "Extreme Squeeze Risk"
	TypeHigh     = "High Squeeze Risk"
	TypeModerate = "Moderate Squeeze Risk"
	TypeLow      = "Low Risk"
	TypeError    = "Error"
)

// Risk-factor tags. Independent; any subset may co-occur.
const (
	RiskExtremeShortInterest = "EXTREME_SHORT_INTEREST"
	RiskHighUtilization      = "HIGH_UTILIZATION"
	RiskHighBorrowingCosts   = "HIGH_BORROWING_COSTS"
	RiskLongCoverTime        = "LONG_COVER_TIME"
	RiskStrongMomentum       = "STRONG_MOMENTUM"
)

// Component weights and caps. Short interest dominates; momentum is the
// only uncapped component and only counts when positive.
const (
	siWeight       = 1.2
	siCap          = 35.0
	utilWeight     = 0.25
	utilCap        = 25.0
	ctbWeight      = 0.8
	ctbCap         = 20.0
	dtcWeight      = 1.5
	dtcCap         = 15.0
	momentumWeight = 0.3
)

// Breakdown carries the per-component sub-scores.
type Breakdown struct {
	ShortInterest int `json:"short_interest"`
	Utilization   int `json:"utilization"`
	CostToBorrow  int `json:"cost_to_borrow"`
	DaysToCover   int `json:"days_to_cover"`
	Momentum      int `json:"momentum"`
}

// Result is a scored squeeze assessment for one ticker.
type Result struct {
	SqueezeScore int       `json:"squeeze_score"`
	SqueezeType  string    `json:"squeeze_type"`
	RiskFactors  []string  `json:"risk_factors"`
	Breakdown    Breakdown `json:"score_breakdown"`
}

// Score computes the squeeze assessment from a metrics record and the
// day's price change percentage. Scoring never aborts a scan: a missing
// record yields a zeroed result classified as Error.
func Score(rec *shortdata.Record, priceChangePct float64) Result {
	if rec == nil {
		return Result{SqueezeType: TypeError, RiskFactors: []string{}}
	}

	siScore := min(rec.ShortInterest*siWeight, siCap)
	utilScore := min(rec.Utilization*utilWeight, utilCap)
	ctbScore := min(rec.CostToBorrow*ctbWeight, ctbCap)
	dtcScore := min(rec.DaysToCover*dtcWeight, dtcCap)

	var momentumScore float64
	if priceChangePct > 0 {
		momentumScore = priceChangePct * momentumWeight
	}

	total := int(siScore + utilScore + ctbScore + dtcScore + momentumScore)

	riskFactors := []string{}
	if rec.ShortInterest > 25 {
		riskFactors = append(riskFactors, RiskExtremeShortInterest)
	}
	if rec.Utilization > 90 {
		riskFactors = append(riskFactors, RiskHighUtilization)
	}
	if rec.CostToBorrow > 20 {
		riskFactors = append(riskFactors, RiskHighBorrowingCosts)
	}
	if rec.DaysToCover > 7 {
		riskFactors = append(riskFactors, RiskLongCoverTime)
	}
	if priceChangePct > 15 {
		riskFactors = append(riskFactors, RiskStrongMomentum)
	}

	return Result{
		SqueezeScore: total,
		SqueezeType:  classify(total),
		RiskFactors:  riskFactors,
		Breakdown: Breakdown{
			ShortInterest: int(siScore),
			Utilization:   int(utilScore),
			CostToBorrow:  int(ctbScore),
			DaysToCover:   int(dtcScore),
			Momentum:      int(momentumScore),
		},
	}
}

// classify maps a total score onto a squeeze risk tier
func classify(total int) string {
	switch {
	case total >= 80:
		return TypeExtreme
	case total >= 65:
		return TypeHigh
	case total >= 45:
		return TypeModerate
	default:
		return TypeLow
	}
}
