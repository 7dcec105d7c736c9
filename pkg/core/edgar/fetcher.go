// Package edgar fetches base-year valuation inputs from SEC EDGAR's
// structured XBRL APIs: ticker-to-CIK resolution plus the companyfacts
// endpoint. It is the data-fetch collaborator sitting outside the
// valuation core; the core only ever sees the resulting RawFacts.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
)

const (
	userAgent         = "Mountain Path Valuation research@mountainpath.example"
	companyTickersURL = "https://www.sec.gov/files/company_tickers.json"
	companyFactsURL   = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"

	// Filing values arrive in USD; the models work in millions.
	millions = 1e6
)

// XBRL tag fallback lists. Order matters: the first tag with data wins.
var (
	revenueTags      = []string{"Revenues", "SalesRevenueNet", "RevenueFromContractWithCustomerExcludingAssessedTax"}
	ebitTags         = []string{"OperatingIncomeLoss"}
	pretaxTags       = []string{"IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest", "IncomeLossFromContinuingOperationsBeforeIncomeTaxesMinorityInterestAndIncomeLossFromEquityMethodInvestments"}
	taxTags          = []string{"IncomeTaxExpenseBenefit"}
	depreciationTags = []string{"DepreciationAndAmortization", "DepreciationDepletionAndAmortization"}
	capexTags        = []string{"PaymentsToAcquirePropertyPlantAndEquipment"}
	shortDebtTags    = []string{"ShortTermBorrowings", "DebtCurrent"}
	longDebtTags     = []string{"LongTermDebt", "LongTermDebtNoncurrent"}
	cashTags         = []string{"CashAndCashEquivalentsAtCarryingValue", "CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents"}
	netIncomeTags    = []string{"NetIncomeLoss"}
	dividendTags     = []string{"PaymentsOfDividends", "PaymentsOfDividendsCommonStock"}
	sharesTags       = []string{"WeightedAverageNumberOfDilutedSharesOutstanding", "WeightedAverageNumberOfSharesOutstandingBasic"}
	deiSharesTags    = []string{"EntityCommonStockSharesOutstanding"}
	interestIncTags  = []string{"InterestIncome"}
)

// Fetcher resolves tickers and pulls companyfacts, consulting a cache
// before touching the network.
type Fetcher struct {
	client      *http.Client
	cache       FactsCache
	tickerOnce  sync.Once
	tickerErr   error
	tickerTable map[string]string // TICKER -> zero-padded CIK
}

// NewFetcher creates a fetcher. cache may be nil to disable caching.
func NewFetcher(cache FactsCache) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 60 * time.Second},
		cache:  cache,
	}
}

// LookupCIK resolves a ticker symbol to a zero-padded 10-digit CIK using
// SEC's company_tickers.json. The map is loaded once per process.
func (f *Fetcher) LookupCIK(ctx context.Context, ticker string) (string, error) {
	f.tickerOnce.Do(func() {
		f.tickerErr = f.loadTickerTable(ctx)
	})
	if f.tickerErr != nil {
		return "", f.tickerErr
	}

	cik, ok := f.tickerTable[strings.ToUpper(ticker)]
	if !ok {
		return "", fmt.Errorf("ticker %s not found in SEC registry", strings.ToUpper(ticker))
	}
	return cik, nil
}

// FetchBaseYearFacts pulls the latest 10-K facts for a ticker, scaled to
// millions of USD, ready for baseyear.Normalize.
func (f *Fetcher) FetchBaseYearFacts(ctx context.Context, ticker string) (baseyear.RawFacts, error) {
	ticker = strings.ToUpper(ticker)

	if f.cache != nil {
		if facts, ok := f.cache.Get(ctx, ticker); ok {
			return *facts, nil
		}
	}

	cik, err := f.LookupCIK(ctx, ticker)
	if err != nil {
		return baseyear.RawFacts{}, err
	}

	var cf companyFacts
	url := fmt.Sprintf(companyFactsURL, cik)
	if err := f.getJSON(ctx, url, &cf); err != nil {
		return baseyear.RawFacts{}, fmt.Errorf("fetch companyfacts for %s: %w", ticker, err)
	}

	revenue, revenueYear := latest(cf, "us-gaap", "USD", revenueTags)
	shares, _ := latest(cf, "dei", "shares", deiSharesTags)
	if shares == 0 {
		shares, _ = latest(cf, "us-gaap", "shares", sharesTags)
	}

	facts := baseyear.RawFacts{
		Ticker:     ticker,
		FiscalYear: revenueYear,
		Revenue:    revenue / millions,
		Shares:     shares, // raw count; the normalizer handles unit conversion
	}
	facts.EBIT, _ = latestM(cf, ebitTags)
	facts.PretaxIncome, _ = latestM(cf, pretaxTags)
	facts.TaxExpense, _ = latestM(cf, taxTags)
	facts.Depreciation, _ = latestM(cf, depreciationTags)
	facts.CapEx, _ = latestM(cf, capexTags)
	facts.ShortTermDebt, _ = latestM(cf, shortDebtTags)
	facts.LongTermDebt, _ = latestM(cf, longDebtTags)
	facts.Cash, _ = latestM(cf, cashTags)
	facts.NetIncome, _ = latestM(cf, netIncomeTags)
	facts.DividendsPaid, _ = latestM(cf, dividendTags)
	facts.InterestIncome, _ = latestM(cf, interestIncTags)

	if f.cache != nil {
		// Caching is best-effort; the facts are still good.
		_ = f.cache.Set(ctx, ticker, &facts)
	}
	return facts, nil
}

func (f *Fetcher) loadTickerTable(ctx context.Context) error {
	var entries map[string]tickerEntry
	if err := f.getJSON(ctx, companyTickersURL, &entries); err != nil {
		return fmt.Errorf("fetch ticker registry: %w", err)
	}

	f.tickerTable = make(map[string]string, len(entries))
	for _, e := range entries {
		cik := strconv.Itoa(e.CIK)
		for len(cik) < 10 {
			cik = "0" + cik
		}
		f.tickerTable[strings.ToUpper(e.Ticker)] = cik
	}
	return nil
}

func (f *Fetcher) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	// Only User-Agent is set explicitly; the transport negotiates gzip on
	// its own and decodes it transparently.
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// latestM returns the most recent us-gaap USD value among the tags,
// scaled to millions.
func latestM(cf companyFacts, tags []string) (float64, int) {
	v, year := latest(cf, "us-gaap", "USD", tags)
	return v / millions, year
}

// latest scans a tag fallback list and returns the data point with the
// latest period end, preferring annual report forms. Returns 0 when no
// tag has data; callers treat 0 as unobserved.
func latest(cf companyFacts, taxonomy, unit string, tags []string) (float64, int) {
	concepts, ok := cf.Facts[taxonomy]
	if !ok {
		return 0, 0
	}

	for _, tag := range tags {
		concept, ok := concepts[tag]
		if !ok {
			continue
		}
		values := concept.Units[unit]
		if len(values) == 0 {
			continue
		}

		var best *factValue
		for i := range values {
			fv := &values[i]
			if fv.Form != "" && fv.Form != "10-K" && fv.Form != "10-K/A" {
				continue
			}
			if best == nil || fv.End > best.End {
				best = fv
			}
		}
		if best == nil {
			// No 10-K data points; fall back to the latest of any form.
			for i := range values {
				fv := &values[i]
				if best == nil || fv.End > best.End {
					best = fv
				}
			}
		}
		if best != nil {
			return best.Val, fiscalYearOf(*best)
		}
	}
	return 0, 0
}

func fiscalYearOf(fv factValue) int {
	if fv.FY > 0 {
		return fv.FY
	}
	if len(fv.End) >= 4 {
		if y, err := strconv.Atoi(fv.End[:4]); err == nil {
			return y
		}
	}
	return 0
}
