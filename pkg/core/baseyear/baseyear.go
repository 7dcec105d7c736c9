// Package baseyear turns raw 10-K facts into the clean base-year record the
// valuation models consume. All currency amounts are in millions of USD.
package baseyear

import (
	"fmt"
	"math"
)

const (
	// DefaultTaxRate is the conservative corporate default used when the
	// effective rate cannot be derived from the filing.
	DefaultTaxRate = 0.21

	// Effective tax rates outside this band are one-off distortions
	// (settlements, valuation allowance releases) and are clamped.
	MinTaxRate = 0.10
	MaxTaxRate = 0.30

	// DefaultOperatingMargin is the industry-floor margin applied when
	// revenue is not positive at margin-derivation time.
	DefaultOperatingMargin = 0.15

	// DefaultBeta is assumed when the market data source has no beta.
	DefaultBeta = 1.0
)

// RawFacts holds the facts extracted from the latest 10-K before
// normalization. A zero value means the tag was not observed; the
// normalizer applies the documented defaults, never "unavailable".
type RawFacts struct {
	Ticker         string  `json:"ticker"`
	FiscalYear     int     `json:"fiscal_year"`
	Revenue        float64 `json:"revenue"`
	EBIT           float64 `json:"ebit"`
	PretaxIncome   float64 `json:"pretax_income"`
	TaxExpense     float64 `json:"tax_expense"`
	Depreciation   float64 `json:"depreciation"`
	CapEx          float64 `json:"capex"`
	ShortTermDebt  float64 `json:"short_term_debt"`
	LongTermDebt   float64 `json:"long_term_debt"`
	Cash           float64 `json:"cash"`
	NetIncome      float64 `json:"net_income"`
	DividendsPaid  float64 `json:"dividends_paid"`
	Shares         float64 `json:"shares"`
	InterestIncome float64 `json:"interest_income"`
	CurrentPrice   float64 `json:"current_price"`
	Beta           float64 `json:"beta"`
}

// BaseYearRecord is the immutable snapshot of one fiscal year's operating
// economics. Constructed once per run by Normalize and consumed read-only
// by the projector, the valuators and the sensitivity engine.
type BaseYearRecord struct {
	FiscalYear      int     `json:"fiscal_year"`
	Revenue         float64 `json:"revenue"`
	EBIT            float64 `json:"ebit"`
	OperatingMargin float64 `json:"operating_margin"`
	TaxRate         float64 `json:"tax_rate"`
	Depreciation    float64 `json:"depreciation"`
	CapEx           float64 `json:"capex"`
	NetDebt         float64 `json:"net_debt"`
	Shares          float64 `json:"shares"` // diluted, millions
	NetIncome       float64 `json:"net_income"`
	DividendsPaid   float64 `json:"dividends_paid"`
	CurrentPrice    float64 `json:"current_price"`
	Beta            float64 `json:"beta"`
}

// InsufficientDataError reports that the filing lacks a fact the valuation
// cannot proceed without. Fatal to the run; never retried.
type InsufficientDataError struct {
	Missing string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient 10-K data: %s not available", e.Missing)
}

// Normalize produces a BaseYearRecord from raw extracted facts.
//
// Policy:
//   - revenue and EBIT are required; anything else defaults.
//   - effective tax rate = tax / pre-tax income, clamped to
//     [MinTaxRate, MaxTaxRate], only when pre-tax income is positive.
//   - CapEx is stored as a non-negative magnitude (source sign
//     conventions vary between cash-flow presentations).
//   - net debt = short-term borrowings + long-term debt - cash, with
//     missing components treated as zero.
func Normalize(f RawFacts) (*BaseYearRecord, error) {
	if f.Revenue <= 0 {
		return nil, &InsufficientDataError{Missing: "revenue"}
	}
	if f.EBIT == 0 {
		return nil, &InsufficientDataError{Missing: "operating income (EBIT)"}
	}

	taxRate := DefaultTaxRate
	if f.PretaxIncome > 0 && f.TaxExpense != 0 {
		taxRate = clampTaxRate(f.TaxExpense / f.PretaxIncome)
	}

	beta := f.Beta
	if beta == 0 {
		beta = DefaultBeta
	}

	return &BaseYearRecord{
		FiscalYear:      f.FiscalYear,
		Revenue:         f.Revenue,
		EBIT:            f.EBIT,
		OperatingMargin: OperatingMargin(f.EBIT, f.Revenue),
		TaxRate:         taxRate,
		Depreciation:    f.Depreciation,
		CapEx:           math.Abs(f.CapEx),
		NetDebt:         f.ShortTermDebt + f.LongTermDebt - f.Cash,
		Shares:          NormalizeShares(f.Shares),
		NetIncome:       f.NetIncome,
		DividendsPaid:   f.DividendsPaid,
		CurrentPrice:    f.CurrentPrice,
		Beta:            beta,
	}, nil
}

// OperatingMargin returns EBIT / revenue, or the industry-floor default
// when revenue is not positive.
func OperatingMargin(ebit, revenue float64) float64 {
	if revenue <= 0 {
		return DefaultOperatingMargin
	}
	return ebit / revenue
}

// NormalizeShares converts a share count to millions. Counts above 1e9 are
// assumed to be absolute units (SEC dei facts report raw share counts,
// while the rest of the record is in millions).
func NormalizeShares(shares float64) float64 {
	if shares > 1e9 {
		return shares / 1e6
	}
	return shares
}

func clampTaxRate(rate float64) float64 {
	if rate < MinTaxRate {
		return MinTaxRate
	}
	if rate > MaxTaxRate {
		return MaxTaxRate
	}
	return rate
}
