// Package market supplies the market-level constants the CAPM and WACC
// derivations need: risk-free rate, equity risk premium, cost of debt.
package market

import (
	"fmt"
	"os"

	"github.com/hjson/hjson-go/v4"
)

// MarketData holds the market-level rate assumptions for a run.
type MarketData struct {
	RiskFreeRate      float64 `json:"risk_free_rate"`      // proxy for the US 10Y Treasury
	EquityRiskPremium float64 `json:"equity_risk_premium"` // market risk premium
	PreTaxCostOfDebt  float64 `json:"pre_tax_cost_of_debt"`
	DefaultBeta       float64 `json:"default_beta"`
}

// Defaults returns the conservative compiled-in constants.
func Defaults() MarketData {
	return MarketData{
		RiskFreeRate:      0.045,
		EquityRiskPremium: 0.055,
		PreTaxCostOfDebt:  0.04,
		DefaultBeta:       1.0,
	}
}

// Load reads market constants from an hjson file, filling anything the
// file leaves unset with the defaults.
func Load(path string) (MarketData, error) {
	md := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return md, fmt.Errorf("read market config %s: %w", path, err)
	}

	var fromFile MarketData
	if err := hjson.Unmarshal(data, &fromFile); err != nil {
		return md, fmt.Errorf("parse market config %s: %w", path, err)
	}

	if fromFile.RiskFreeRate > 0 {
		md.RiskFreeRate = fromFile.RiskFreeRate
	}
	if fromFile.EquityRiskPremium > 0 {
		md.EquityRiskPremium = fromFile.EquityRiskPremium
	}
	if fromFile.PreTaxCostOfDebt > 0 {
		md.PreTaxCostOfDebt = fromFile.PreTaxCostOfDebt
	}
	if fromFile.DefaultBeta > 0 {
		md.DefaultBeta = fromFile.DefaultBeta
	}
	return md, nil
}
