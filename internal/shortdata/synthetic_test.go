package shortdata

import (
	"testing"

	"github.com/ultimate-squeeze/scanner/internal/universe"
)

func TestSynthesizeDeterminism(t *testing.T) {
	first := Synthesize("ZZZZ", "")
	second := Synthesize("ZZZZ", "")

	if first != second {
		t.Errorf("Synthesize() is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestSynthesizeKnownProfile(t *testing.T) {
	rec := Synthesize("GME", universe.CategoryMeme)

	if rec.ShortInterest != 22.4 || rec.Utilization != 89.2 ||
		rec.CostToBorrow != 12.8 || rec.DaysToCover != 4.1 {
		t.Errorf("GME should use its reference profile, got %+v", rec)
	}
	if rec.DataQuality != DataQualityEstimate {
		t.Errorf("DataQuality = %q, want estimate", rec.DataQuality)
	}
	if rec.Source != SourceModeled {
		t.Errorf("Source = %q, want modeled", rec.Source)
	}
}

func TestSynthesizeCategoryRanges(t *testing.T) {
	tests := []struct {
		name     string
		ticker   string
		category string
		siLo     float64
		siHi     float64
		utilLo   float64
		utilHi   float64
	}{
		{"meme range", "MULN", universe.CategoryMeme, 15, 35, 75, 95},
		{"biotech range", "CRSP", universe.CategoryBiotech, 20, 40, 80, 98},
		{"large cap range", "MSFT", universe.CategoryLargeCap, 1, 6, 20, 50},
		{"default range", "ZZZZ", "", 8, 25, 50, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Synthesize(tt.ticker, tt.category)

			if rec.ShortInterest < tt.siLo || rec.ShortInterest > tt.siHi {
				t.Errorf("ShortInterest %v outside [%v, %v]", rec.ShortInterest, tt.siLo, tt.siHi)
			}
			if rec.Utilization < tt.utilLo || rec.Utilization > tt.utilHi {
				t.Errorf("Utilization %v outside [%v, %v]", rec.Utilization, tt.utilLo, tt.utilHi)
			}
		})
	}
}

func TestSynthesizeDaysToCoverTracksShortInterest(t *testing.T) {
	rec := Synthesize("ZZZZ", "")

	// dtc = si * uniform(0.2, 0.5), then rounded to one decimal
	lo := rec.ShortInterest*0.2 - 0.05
	hi := rec.ShortInterest*0.5 + 0.05
	if rec.DaysToCover < lo || rec.DaysToCover > hi {
		t.Errorf("DaysToCover %v outside [%v, %v] for si=%v",
			rec.DaysToCover, lo, hi, rec.ShortInterest)
	}
}

func TestSynthesizeDistinctTickersDiffer(t *testing.T) {
	a := Synthesize("AAAA", "")
	b := Synthesize("BBBB", "")

	if a == b {
		t.Error("different tickers should produce different profiles")
	}
}
