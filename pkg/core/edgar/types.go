package edgar

// tickerEntry is one row of SEC's company_tickers.json map.
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// companyFacts is the shape of the XBRL companyfacts API response,
// trimmed to the parts the fetcher reads: facts[taxonomy][tag].units.
type companyFacts struct {
	CIK        int                                   `json:"cik"`
	EntityName string                                `json:"entityName"`
	Facts      map[string]map[string]companyConcept `json:"facts"`
}

type companyConcept struct {
	Label string                 `json:"label"`
	Units map[string][]factValue `json:"units"`
}

// factValue is one reported data point for a concept/unit pair.
type factValue struct {
	End   string  `json:"end"` // period end date, YYYY-MM-DD
	Val   float64 `json:"val"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"`
	Form  string  `json:"form"`
	Frame string  `json:"frame,omitempty"`
}
