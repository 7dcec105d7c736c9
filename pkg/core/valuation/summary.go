package valuation

import (
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/projection"
)

// ValuationResult is the full output record of one run: the projection
// table, the DCF figures and the cross-check prices, plus the current
// market price for comparison (zero when unavailable).
type ValuationResult struct {
	Rows              []projection.FCFFRow `json:"projection"`
	PVExplicit        float64              `json:"pv_explicit"`
	TerminalValue     float64              `json:"terminal_value"`
	PVTerminal        float64              `json:"pv_terminal"`
	EnterpriseValue   float64              `json:"enterprise_value"`
	EquityValue       float64              `json:"equity_value"`
	FairValuePerShare Metric               `json:"fair_value_per_share"`
	DDMPrice          Metric               `json:"ddm_price"`
	PEPrice           Metric               `json:"pe_price"`
	CurrentPrice      float64              `json:"current_price"`
}

// RunValuation projects the base year under the given assumptions and
// values the resulting FCFF stream, attaching the DDM and P/E
// cross-checks. costOfEquity feeds the DDM only; the DCF discounts at the
// assumptions' WACC.
func RunValuation(base *baseyear.BaseYearRecord, a assumption.Assumptions, costOfEquity float64) (*ValuationResult, error) {
	a = a.WithDefaults()

	rows, err := projection.Project(base, a)
	if err != nil {
		return nil, err
	}

	dcf, err := CalculateDCF(DCFInput{
		Rows:           rows,
		WACC:           a.WACC,
		TerminalGrowth: a.TerminalGrowth,
		NetDebt:        base.NetDebt,
		Shares:         base.Shares,
	})
	if err != nil {
		return nil, err
	}

	cross := CrossCheckInput{
		DividendsPaid: base.DividendsPaid,
		NetIncome:     base.NetIncome,
		Shares:        base.Shares,
		CostOfEquity:  costOfEquity,
	}

	return &ValuationResult{
		Rows:              rows,
		PVExplicit:        dcf.PVExplicit,
		TerminalValue:     dcf.TerminalValue,
		PVTerminal:        dcf.PVTerminal,
		EnterpriseValue:   dcf.EnterpriseValue,
		EquityValue:       dcf.EquityValue,
		FairValuePerShare: dcf.FairValuePerShare,
		DDMPrice:          DDMPrice(cross),
		PEPrice:           PEPrice(cross),
		CurrentPrice:      base.CurrentPrice,
	}, nil
}
