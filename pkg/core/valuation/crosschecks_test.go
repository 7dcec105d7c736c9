package valuation

import (
	"math"
	"testing"
)

func TestDDMPrice(t *testing.T) {
	in := CrossCheckInput{
		DividendsPaid: 40,
		Shares:        100,
		CostOfEquity:  0.10, // rf 0.045 + 1.0 * erp 0.055
	}
	// DPS = 0.40; price = 0.40 * 1.02 / (0.10 - 0.02) = 5.10
	got := DDMPrice(in)
	if !got.Valid || math.Abs(got.Value-5.10) > 1e-9 {
		t.Errorf("Expected 5.10, got %s", got)
	}
}

func TestDDMPriceNotApplicable(t *testing.T) {
	// ke at or below the perpetual growth rate is undefined, never Inf
	in := CrossCheckInput{DividendsPaid: 40, Shares: 100, CostOfEquity: 0.02}
	if DDMPrice(in).Valid {
		t.Error("Expected NA when ke == g")
	}
	in.CostOfEquity = 0.01
	if DDMPrice(in).Valid {
		t.Error("Expected NA when ke < g")
	}
	in = CrossCheckInput{DividendsPaid: 40, Shares: 0, CostOfEquity: 0.10}
	if DDMPrice(in).Valid {
		t.Error("Expected NA when shares missing")
	}
}

func TestPEPrice(t *testing.T) {
	in := CrossCheckInput{NetIncome: 150, Shares: 100}
	// EPS 1.50 at 15x = 22.50
	got := PEPrice(in)
	if !got.Valid || math.Abs(got.Value-22.5) > 1e-9 {
		t.Errorf("Expected 22.50, got %s", got)
	}

	// Loss-making: NA rather than a negative "price"
	in.NetIncome = -10
	if PEPrice(in).Valid {
		t.Error("Expected NA for negative EPS")
	}
}

func TestCalculateWACC(t *testing.T) {
	res := CalculateWACC(WACCInput{
		Beta:              1.2,
		RiskFreeRate:      0.045,
		EquityRiskPremium: 0.055,
		PreTaxCostOfDebt:  0.04,
		TaxRate:           0.21,
	})

	// ke = 0.045 + 1.2 * 0.055 = 0.111
	if math.Abs(res.CostOfEquity-0.111) > 1e-9 {
		t.Errorf("Expected ke 0.111, got %f", res.CostOfEquity)
	}
	// Zero target leverage: all-equity weights, WACC == ke
	if res.WeightEquity != 1.0 || res.WeightDebt != 0.0 {
		t.Errorf("Expected pure equity weights, got We=%f Wd=%f", res.WeightEquity, res.WeightDebt)
	}
	if math.Abs(res.WACC-res.CostOfEquity) > 1e-9 {
		t.Errorf("Expected WACC == ke at zero leverage, got %f", res.WACC)
	}

	// With leverage the after-tax debt cost pulls WACC below ke
	levered := CalculateWACC(WACCInput{
		Beta:              1.2,
		RiskFreeRate:      0.045,
		EquityRiskPremium: 0.055,
		PreTaxCostOfDebt:  0.04,
		TaxRate:           0.21,
		DebtToEquityRatio: 0.5,
	})
	if levered.WACC >= res.WACC {
		t.Errorf("Expected levered WACC below all-equity WACC, got %f", levered.WACC)
	}
	if math.Abs(levered.WeightDebt-1.0/3.0) > 1e-9 {
		t.Errorf("Expected Wd 1/3 at D/E 0.5, got %f", levered.WeightDebt)
	}
}

func TestMetricJSON(t *testing.T) {
	na, _ := NA().MarshalJSON()
	if string(na) != "null" {
		t.Errorf("Expected NA to marshal as null, got %s", na)
	}
	some, _ := Some(26.55).MarshalJSON()
	if string(some) != "26.55" {
		t.Errorf("Expected 26.55, got %s", some)
	}

	var m Metric
	if err := m.UnmarshalJSON([]byte("null")); err != nil || m.Valid {
		t.Error("Expected null to unmarshal to NA")
	}
	if err := m.UnmarshalJSON([]byte("3.5")); err != nil || !m.Valid || m.Value != 3.5 {
		t.Error("Expected 3.5 to unmarshal to a valid metric")
	}
}
