package sensitivity

import (
	"errors"
	"math"
	"testing"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/projection"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/valuation"
)

func demoRecord() *baseyear.BaseYearRecord {
	return &baseyear.BaseYearRecord{
		FiscalYear:      2025,
		Revenue:         1000,
		EBIT:            200,
		OperatingMargin: 0.20,
		TaxRate:         0.21,
		NetDebt:         200,
		Shares:          100,
	}
}

func demoAssumptions() assumption.Assumptions {
	return assumption.Assumptions{
		GrowthRate:          0.08,
		WACC:                0.09,
		TerminalGrowth:      0.03,
		Horizon:             5,
		Policy:              assumption.PolicySalesToCapital,
		SalesToCapitalRatio: 2.5,
	}
}

func TestGridShapeAndMask(t *testing.T) {
	waccs := []float64{0.02, 0.03, 0.07, 0.09, 0.11}
	growths := []float64{0.02, 0.03, 0.04}

	grid, err := Build(demoRecord(), demoAssumptions(), waccs, growths)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(grid.Cells) != len(waccs) {
		t.Fatalf("Expected %d rows, got %d", len(waccs), len(grid.Cells))
	}
	for i := range grid.Cells {
		if len(grid.Cells[i]) != len(growths) {
			t.Fatalf("Row %d: expected %d cells, got %d", i, len(growths), len(grid.Cells[i]))
		}
	}

	// Every WACC <= g cell masked, every other cell valued
	for i, w := range waccs {
		for j, g := range growths {
			cell := grid.Cells[i][j]
			if w <= g {
				if cell.Valid {
					t.Errorf("Cell (%f, %f) should be not applicable", w, g)
				}
			} else {
				if !cell.Valid {
					t.Errorf("Cell (%f, %f) should hold an enterprise value", w, g)
				}
				if math.IsNaN(cell.Value) || math.IsInf(cell.Value, 0) {
					t.Errorf("Cell (%f, %f) leaked NaN/Inf", w, g)
				}
			}
		}
	}

	// Axis order preserved
	for i := range waccs {
		if grid.WACCValues[i] != waccs[i] {
			t.Error("WACC axis order changed")
		}
	}
}

func TestGridCellMatchesDirectValuation(t *testing.T) {
	base := demoRecord()
	a := demoAssumptions()

	grid, err := Build(base, a, []float64{0.09}, []float64{0.03})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	direct := a
	direct.WACC = 0.09
	direct.TerminalGrowth = 0.03
	rows, _ := projection.Project(base, direct)
	res, err := valuation.CalculateDCF(valuation.DCFInput{
		Rows:           rows,
		WACC:           direct.WACC,
		TerminalGrowth: direct.TerminalGrowth,
		NetDebt:        base.NetDebt,
		Shares:         base.Shares,
	})
	if err != nil {
		t.Fatalf("CalculateDCF failed: %v", err)
	}

	cell := grid.Cells[0][0]
	if !cell.Valid {
		t.Fatal("Expected a valued cell")
	}
	// Grid cells are scaled to billions
	if math.Abs(cell.Value-res.EnterpriseValue/1000) > 1e-9 {
		t.Errorf("Cell %f does not match direct EV %f", cell.Value, res.EnterpriseValue/1000)
	}
}

func TestBuildRejectsInvalidAssumptions(t *testing.T) {
	a := demoAssumptions()
	a.SalesToCapitalRatio = 0

	_, err := Build(demoRecord(), a, []float64{0.09}, []float64{0.03})
	var invalid *assumption.InvalidAssumptionError
	if !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidAssumptionError, got %v", err)
	}
}

func TestDefaultAxes(t *testing.T) {
	waccs, growths := DefaultAxes(0.09, 0.03)
	if len(waccs) != 5 || len(growths) != 3 {
		t.Fatalf("Expected a 5x3 grid, got %dx%d", len(waccs), len(growths))
	}
	if waccs[2] != 0.09 || growths[1] != 0.03 {
		t.Error("Expected central values on the axes")
	}
}
