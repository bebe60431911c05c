package shortdata

import (
	"hash/fnv"
	"math/rand"

	"github.com/ultimate-squeeze/scanner/internal/universe"
)

// knownProfiles holds reference short-interest profiles for tickers with
// well-documented squeeze characteristics. These are returned verbatim.
var knownProfiles = map[string]Record{
	"GME":  {ShortInterest: 22.4, Utilization: 89.2, CostToBorrow: 12.8, DaysToCover: 4.1},
	"AMC":  {ShortInterest: 18.7, Utilization: 82.1, CostToBorrow: 8.9, DaysToCover: 3.8},
	"SAVA": {ShortInterest: 35.2, Utilization: 95.1, CostToBorrow: 45.8, DaysToCover: 12.3},
	"VXRT": {ShortInterest: 28.9, Utilization: 87.6, CostToBorrow: 18.2, DaysToCover: 8.7},
	"BBBY": {ShortInterest: 42.1, Utilization: 98.2, CostToBorrow: 78.5, DaysToCover: 15.8},
	"BYND": {ShortInterest: 31.5, Utilization: 91.7, CostToBorrow: 25.3, DaysToCover: 9.2},
	"PTON": {ShortInterest: 26.8, Utilization: 84.5, CostToBorrow: 15.7, DaysToCover: 6.8},
}

// metricRange bounds a uniform draw.
type metricRange struct {
	lo, hi float64
}

// categoryRanges selects plausible metric ranges per universe category.
// Meme and biotech names run hot, large caps run cold, anything else gets
// a middle band.
var categoryRanges = map[string]struct{ si, util, ctb metricRange }{
	universe.CategoryMeme:     {si: metricRange{15, 35}, util: metricRange{75, 95}, ctb: metricRange{10, 40}},
	universe.CategoryBiotech:  {si: metricRange{20, 40}, util: metricRange{80, 98}, ctb: metricRange{15, 60}},
	universe.CategoryLargeCap: {si: metricRange{1, 6}, util: metricRange{20, 50}, ctb: metricRange{0.5, 3}},
}

var defaultRanges = struct{ si, util, ctb metricRange }{
	si:   metricRange{8, 25},
	util: metricRange{50, 85},
	ctb:  metricRange{3, 20},
}

// Synthesize derives a plausible metrics record for a ticker without live
// data. The generator is seeded from a stable hash of the ticker symbol,
// so repeated calls for the same ticker and category membership produce
// identical output.
func Synthesize(ticker, category string) Record {
	if profile, ok := knownProfiles[ticker]; ok {
		profile.DataQuality = DataQualityEstimate
		profile.Source = SourceModeled
		return profile
	}

	rng := rand.New(rand.NewSource(tickerSeed(ticker)))

	ranges, ok := categoryRanges[category]
	if !ok {
		ranges = defaultRanges
	}

	si := round1(uniform(rng, ranges.si))
	util := round1(uniform(rng, ranges.util))
	ctb := round1(uniform(rng, ranges.ctb))
	dtc := round1(si * (0.2 + rng.Float64()*0.3))

	return Record{
		ShortInterest: si,
		Utilization:   util,
		CostToBorrow:  ctb,
		DaysToCover:   dtc,
		DataQuality:   DataQualityEstimate,
		Source:        SourceModeled,
	}
}

// tickerSeed hashes the symbol into a small stable seed
func tickerSeed(ticker string) int64 {
	h := fnv.New32a()
	h.Write([]byte(ticker))
	return int64(h.Sum32() % 10000)
}

func uniform(rng *rand.Rand, r metricRange) float64 {
	return r.lo + rng.Float64()*(r.hi-r.lo)
}
