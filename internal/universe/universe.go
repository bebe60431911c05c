// Package universe holds the static ticker universe the scanner operates
// on: a fixed set of categories, each with an ordered list of symbols.
// The tables are read-only after construction and safe to share across
// concurrent scans without locking.
package universe

// Category names. Requests select batches by these keys.
const (
	CategoryMeme      = "top_meme_stocks"
	CategoryHighShort = "high_short_interest"
	CategoryBiotech   = "biotech_squeeze"
	CategorySmallCap  = "small_cap_movers"
	CategoryLargeCap  = "large_cap_samples"
)

// categoryOrder fixes iteration order; Go maps would otherwise randomize
// the flattened universe between processes.
var categoryOrder = []string{
	CategoryMeme,
	CategoryHighShort,
	CategoryBiotech,
	CategorySmallCap,
	CategoryLargeCap,
}

var categoryTickers = map[string][]string{
	CategoryMeme: {
		"GME", "AMC", "BBBY", "SAVA", "VXRT", "CLOV", "SPRT", "IRNT",
		"DWAC", "PHUN", "PROG", "ATER", "BBIG", "MULN", "EXPR", "KOSS",
	},
	CategoryHighShort: {
		"BYND", "PTON", "ROKU", "UPST", "AFRM", "HOOD", "COIN", "RIVN",
		"LCID", "NKLA", "PLUG", "BLNK", "QS", "GOEV", "RIDE", "WKHS",
	},
	CategoryBiotech: {
		"BIIB", "GILD", "REGN", "BMRN", "ALNY", "SRPT", "IONS", "ARWR",
		"EDIT", "CRSP", "NTLA", "BEAM", "BLUE", "FOLD", "RARE", "KRYS",
	},
	CategorySmallCap: {
		"SPCE", "DKNG", "PENN", "FUBO", "WISH", "RBLX", "PLTR", "SNOW",
		"CRWD", "OKTA", "DDOG", "NET", "FSLY", "ESTC", "ZM", "DOCN",
	},
	CategoryLargeCap: {
		"AAPL", "TSLA", "META", "NFLX", "NVDA", "GOOGL", "AMZN", "MSFT",
	},
}

// Universe exposes the static category -> tickers mapping.
type Universe struct {
	order      []string
	tickers    map[string][]string
	all        []string
	membership map[string]string // ticker -> first category containing it
}

// Category pairs a category name with its ordered ticker list.
type Category struct {
	Name    string
	Tickers []string
}

// New builds the universe from the static tables. The flattened list is
// deduplicated preserving first-seen order.
func New() *Universe {
	u := &Universe{
		order:      categoryOrder,
		tickers:    categoryTickers,
		membership: make(map[string]string),
	}

	seen := make(map[string]bool)
	for _, name := range u.order {
		for _, ticker := range u.tickers[name] {
			if _, ok := u.membership[ticker]; !ok {
				u.membership[ticker] = name
			}
			if !seen[ticker] {
				seen[ticker] = true
				u.all = append(u.all, ticker)
			}
		}
	}

	return u
}

// Categories returns all categories in their fixed order.
func (u *Universe) Categories() []Category {
	out := make([]Category, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, Category{Name: name, Tickers: u.tickers[name]})
	}
	return out
}

// AllTickers returns the deduplicated flat list of every ticker in the
// universe, in first-seen order.
func (u *Universe) AllTickers() []string {
	return u.all
}

// Size returns the number of distinct tickers in the universe.
func (u *Universe) Size() int {
	return len(u.all)
}

// TickersFor returns the deduplicated ordered union of the selected
// categories. Unknown category names are ignored; when the selection is
// empty (or contains only unknown names) the full universe is returned.
func (u *Universe) TickersFor(categories []string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, name := range categories {
		tickers, ok := u.tickers[name]
		if !ok {
			continue
		}
		for _, ticker := range tickers {
			if !seen[ticker] {
				seen[ticker] = true
				out = append(out, ticker)
			}
		}
	}

	if len(out) == 0 {
		return u.all
	}
	return out
}

// CategoryOf returns the category a ticker belongs to, or "" when the
// ticker is not part of the universe. A ticker listed in several
// categories reports the first one in category order.
func (u *Universe) CategoryOf(ticker string) string {
	return u.membership[ticker]
}
