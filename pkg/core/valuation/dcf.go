// Package valuation discounts a projected FCFF stream into enterprise,
// equity and per-share value, with DDM and P/E cross-checks.
package valuation

import (
	"fmt"
	"math"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/projection"
)

// MaxPlausiblePerShare is the sanity ceiling on per-share output. A fair
// value beyond it almost always means a unit mismatch upstream (absolute
// shares against $M equity), so the figure is reported as not applicable
// instead of presented as a valuation.
const MaxPlausiblePerShare = 100000.0

// DCFInput carries everything the two-stage DCF needs beyond the
// projection itself. Amounts are in millions of USD.
type DCFInput struct {
	Rows           []projection.FCFFRow
	WACC           float64
	TerminalGrowth float64
	NetDebt        float64
	Shares         float64 // diluted, millions
}

// DCFResult holds the valuation outputs of one run.
type DCFResult struct {
	PVExplicit        float64 `json:"pv_explicit"`
	TerminalValue     float64 `json:"terminal_value"`
	PVTerminal        float64 `json:"pv_terminal"`
	EnterpriseValue   float64 `json:"enterprise_value"`
	EquityValue       float64 `json:"equity_value"`
	FairValuePerShare Metric  `json:"fair_value_per_share"`
}

// TerminalValueUndefinedError reports a scenario where the Gordon Growth
// denominator is not positive. The valuator always rejects such runs; it
// never applies a silent correction.
type TerminalValueUndefinedError struct {
	WACC           float64
	TerminalGrowth float64
}

func (e *TerminalValueUndefinedError) Error() string {
	return fmt.Sprintf("terminal value undefined: WACC %.4f must exceed terminal growth %.4f",
		e.WACC, e.TerminalGrowth)
}

// CalculateDCF performs the standard two-stage DCF over an explicit FCFF
// projection plus a Gordon Growth terminal value.
func CalculateDCF(input DCFInput) (DCFResult, error) {
	if len(input.Rows) == 0 {
		return DCFResult{}, fmt.Errorf("projection is empty")
	}

	// 1. Terminal value stability guard. Checked before any arithmetic so
	// the denominator below is always positive.
	if input.WACC <= input.TerminalGrowth {
		return DCFResult{}, &TerminalValueUndefinedError{
			WACC:           input.WACC,
			TerminalGrowth: input.TerminalGrowth,
		}
	}

	// 2. PV of the explicit period.
	var pvExplicit float64
	for _, row := range input.Rows {
		pvExplicit += row.PVFCFF
	}

	// 3. Terminal value (Gordon Growth) off the last explicit FCFF.
	horizon := len(input.Rows)
	lastFCFF := input.Rows[horizon-1].FCFF
	terminalValue := lastFCFF * (1 + input.TerminalGrowth) / (input.WACC - input.TerminalGrowth)
	pvTerminal := terminalValue / math.Pow(1+input.WACC, float64(horizon))

	// 4. Enterprise value and equity bridge.
	enterpriseValue := pvExplicit + pvTerminal
	equityValue := enterpriseValue - input.NetDebt

	// 5. Per-share value: not applicable rather than a crash or infinity
	// when shares are missing, or past the plausibility ceiling.
	fairValue := NA()
	if input.Shares > 0 {
		perShare := equityValue / input.Shares
		if math.Abs(perShare) <= MaxPlausiblePerShare {
			fairValue = Some(perShare)
		}
	}

	return DCFResult{
		PVExplicit:        pvExplicit,
		TerminalValue:     terminalValue,
		PVTerminal:        pvTerminal,
		EnterpriseValue:   enterpriseValue,
		EquityValue:       equityValue,
		FairValuePerShare: fairValue,
	}, nil
}
