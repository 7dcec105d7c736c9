// Package sensitivity re-runs the DCF across a WACC x terminal-growth grid
// to produce the enterprise-value surface for the heatmap.
package sensitivity

import (
	"sync"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/projection"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/valuation"
)

// Grid is the enterprise-value surface: Cells[i][j] is the EV in billions
// for WACCValues[i] x GrowthValues[j], or not-applicable where the pair is
// economically invalid (WACC <= g). Axis order is preserved from the
// input sequences.
type Grid struct {
	WACCValues   []float64            `json:"wacc_values"`
	GrowthValues []float64            `json:"growth_values"`
	Cells        [][]valuation.Metric `json:"cells"`
}

// Build evaluates the Cartesian product of the two axes. Cells are fully
// independent, so they are computed concurrently; each one re-runs the
// projector and valuator with its own WACC/growth pair. A cell that cannot
// be valued is marked not applicable; it never aborts the rest of the grid.
func Build(base *baseyear.BaseYearRecord, a assumption.Assumptions, waccValues, growthValues []float64) (*Grid, error) {
	a = a.WithDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	grid := &Grid{
		WACCValues:   waccValues,
		GrowthValues: growthValues,
		Cells:        make([][]valuation.Metric, len(waccValues)),
	}
	for i := range grid.Cells {
		grid.Cells[i] = make([]valuation.Metric, len(growthValues))
	}

	var wg sync.WaitGroup
	for i, wacc := range waccValues {
		for j, growth := range growthValues {
			if wacc <= growth {
				// Invalid pair: no valuation attempted.
				grid.Cells[i][j] = valuation.NA()
				continue
			}
			wg.Add(1)
			go func(i, j int, wacc, growth float64) {
				defer wg.Done()
				grid.Cells[i][j] = evaluateCell(base, a, wacc, growth)
			}(i, j, wacc, growth)
		}
	}
	wg.Wait()

	return grid, nil
}

// DefaultAxes builds the canonical 5x3 grid around a scenario's central
// discount and terminal-growth rates.
func DefaultAxes(wacc, terminalGrowth float64) (waccValues, growthValues []float64) {
	waccValues = []float64{wacc - 0.02, wacc - 0.01, wacc, wacc + 0.01, wacc + 0.02}
	growthValues = []float64{terminalGrowth - 0.005, terminalGrowth, terminalGrowth + 0.005}
	return waccValues, growthValues
}

func evaluateCell(base *baseyear.BaseYearRecord, a assumption.Assumptions, wacc, growth float64) valuation.Metric {
	cell := a
	cell.WACC = wacc
	cell.TerminalGrowth = growth

	rows, err := projection.Project(base, cell)
	if err != nil {
		return valuation.NA()
	}
	res, err := valuation.CalculateDCF(valuation.DCFInput{
		Rows:           rows,
		WACC:           cell.WACC,
		TerminalGrowth: cell.TerminalGrowth,
		NetDebt:        base.NetDebt,
		Shares:         base.Shares,
	})
	if err != nil {
		return valuation.NA()
	}

	// $M -> $B for readability on the heatmap
	return valuation.Some(res.EnterpriseValue / 1000)
}
