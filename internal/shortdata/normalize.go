package shortdata

import "strings"

// normalize maps a raw Ortex payload onto a Record.
//
// The payload schema varies between endpoints, so fields are classified by
// case-insensitive substring matching on the key name, first match wins:
//
//	"short_interest", "si"  -> ShortInterest
//	"utilization", "util"   -> Utilization
//	"cost_to_borrow", "ctb" -> CostToBorrow
//	"days_to_cover", "dtc"  -> DaysToCover
//
// This is a best-effort heuristic, not a guaranteed schema: non-numeric
// values and keys matching no rule are silently ignored. When short
// interest is present, missing derived fields are estimated from it.
func normalize(payload map[string]interface{}) *Record {
	var si, util, ctb, dtc *float64

	for key, value := range payload {
		num, ok := value.(float64)
		if !ok {
			continue
		}

		keyLower := strings.ToLower(key)
		switch {
		case strings.Contains(keyLower, "short_interest") || strings.Contains(keyLower, "si"):
			si = &num
		case strings.Contains(keyLower, "utilization") || strings.Contains(keyLower, "util"):
			util = &num
		case strings.Contains(keyLower, "cost_to_borrow") || strings.Contains(keyLower, "ctb"):
			ctb = &num
		case strings.Contains(keyLower, "days_to_cover") || strings.Contains(keyLower, "dtc"):
			dtc = &num
		}
	}

	rec := &Record{
		DataQuality: DataQualityLive,
		Source:      SourceExternalAPI,
	}

	if si != nil {
		rec.ShortInterest = *si
	}
	if util != nil {
		rec.Utilization = *util
	}
	if ctb != nil {
		rec.CostToBorrow = *ctb
	}
	if dtc != nil {
		rec.DaysToCover = *dtc
	}

	// Estimate derived fields from short interest when the source omitted
	// them. A zero short-interest value triggers no estimation.
	if rec.ShortInterest != 0 {
		if rec.Utilization == 0 {
			rec.Utilization = min(rec.ShortInterest*3.5, 95)
		}
		if rec.DaysToCover == 0 {
			rec.DaysToCover = max(rec.ShortInterest*0.2, 0.8)
		}
		if rec.CostToBorrow == 0 {
			rec.CostToBorrow = max(rec.ShortInterest*0.4, 1.0)
		}
	}

	return rec
}
