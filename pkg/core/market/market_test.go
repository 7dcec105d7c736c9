package market

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	doc := `{
  # 10Y Treasury proxy
  risk_free_rate: 0.042
  equity_risk_premium: 0.05
}`
	path := filepath.Join(t.TempDir(), "market.hjson")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	md, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if md.RiskFreeRate != 0.042 {
		t.Errorf("Expected 0.042, got %f", md.RiskFreeRate)
	}
	if md.EquityRiskPremium != 0.05 {
		t.Errorf("Expected 0.05, got %f", md.EquityRiskPremium)
	}
	// Unset fields keep the defaults
	if md.PreTaxCostOfDebt != Defaults().PreTaxCostOfDebt {
		t.Errorf("Expected default cost of debt, got %f", md.PreTaxCostOfDebt)
	}
	if md.DefaultBeta != Defaults().DefaultBeta {
		t.Errorf("Expected default beta, got %f", md.DefaultBeta)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	md, err := Load(filepath.Join(t.TempDir(), "absent.hjson"))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
	if md != Defaults() {
		t.Error("Expected defaults when the file is missing")
	}
}
