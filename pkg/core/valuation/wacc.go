package valuation

// WACCInput parameters for deriving the discount rate from market data.
type WACCInput struct {
	Beta              float64
	RiskFreeRate      float64
	EquityRiskPremium float64
	PreTaxCostOfDebt  float64
	TaxRate           float64
	DebtToEquityRatio float64 // Target leverage (D/E); 0 is the conservative default
}

// WACCResult holds the calculated rates.
type WACCResult struct {
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"` // after-tax
	WACC         float64 `json:"wacc"`
	WeightDebt   float64 `json:"weight_debt"`
	WeightEquity float64 `json:"weight_equity"`
}

// CostOfEquity computes Ke via CAPM: Rf + beta * ERP.
func CostOfEquity(riskFreeRate, beta, equityRiskPremium float64) float64 {
	return riskFreeRate + beta*equityRiskPremium
}

// CalculateWACC computes the Weighted Average Cost of Capital.
//
// With the conservative default of zero target leverage the weights
// collapse to pure equity and WACC equals the CAPM cost of equity; net
// debt is handled separately in the equity bridge.
func CalculateWACC(input WACCInput) WACCResult {
	// 1. Cost of Equity (CAPM)
	ke := CostOfEquity(input.RiskFreeRate, input.Beta, input.EquityRiskPremium)

	// 2. Cost of Debt (after-tax)
	kd := input.PreTaxCostOfDebt * (1 - input.TaxRate)

	// 3. Weights from D/E:
	// D/E = x -> Wd = x / (1+x), We = 1 / (1+x)
	wd := input.DebtToEquityRatio / (1 + input.DebtToEquityRatio)
	we := 1.0 / (1 + input.DebtToEquityRatio)

	return WACCResult{
		CostOfEquity: ke,
		CostOfDebt:   kd,
		WACC:         ke*we + kd*wd,
		WeightDebt:   wd,
		WeightEquity: we,
	}
}
