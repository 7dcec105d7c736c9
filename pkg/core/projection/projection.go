// Package projection advances a base-year record through the explicit
// forecast period, producing the per-year FCFF table the DCF valuator
// discounts.
package projection

import (
	"math"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
)

// FCFFRow is one explicit-period year of the projection. Amounts are in
// millions of USD.
type FCFFRow struct {
	Year         int     `json:"year"`
	Revenue      float64 `json:"revenue"`
	EBIT         float64 `json:"ebit"`
	NOPAT        float64 `json:"nopat"`
	Reinvestment float64 `json:"reinvestment"`
	FCFF         float64 `json:"fcff"`
	PVFCFF       float64 `json:"pv_fcff"`
}

// Project builds the explicit-period FCFF table: exactly horizon rows in
// chronological order, starting from the base-year revenue.
//
// Per year i (1-based):
//
//	revenue_i = revenue_{i-1} * (1 + growth_i)
//	EBIT_i    = revenue_i * base operating margin (held constant)
//	NOPAT_i   = EBIT_i * (1 - tax rate)
//	FCFF_i    = NOPAT_i - reinvestment_i
//	PV_i      = FCFF_i / (1 + WACC)^i
//
// Reinvestment follows the selected policy. Negative FCFF in high-growth
// years is a valid outcome, not an error; no row is ever skipped.
func Project(base *baseyear.BaseYearRecord, a assumption.Assumptions) ([]FCFFRow, error) {
	a = a.WithDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	rows := make([]FCFFRow, 0, a.Horizon)
	prevRevenue := base.Revenue

	for i := 0; i < a.Horizon; i++ {
		growth := a.GrowthFor(i)
		revenue := prevRevenue * (1 + growth)
		ebit := revenue * base.OperatingMargin
		nopat := ebit * (1 - base.TaxRate)

		var reinvestment float64
		switch a.Policy {
		case assumption.PolicySalesToCapital:
			// Tied to the realized revenue change; negative when
			// revenue shrinks.
			reinvestment = (revenue - prevRevenue) / a.SalesToCapitalRatio
		case assumption.PolicyReturnOnCapital:
			rate := clamp(growth/a.ReturnOnCapital, 0, assumption.MaxReinvestmentRate)
			reinvestment = nopat * rate
		}

		fcff := nopat - reinvestment

		rows = append(rows, FCFFRow{
			Year:         base.FiscalYear + i + 1,
			Revenue:      revenue,
			EBIT:         ebit,
			NOPAT:        nopat,
			Reinvestment: reinvestment,
			FCFF:         fcff,
			PVFCFF:       fcff / math.Pow(1+a.WACC, float64(i+1)),
		})

		prevRevenue = revenue
	}

	return rows, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
