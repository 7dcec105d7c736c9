package assumption

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
)

// Scenario is an offline valuation case loaded from a YAML file: a company
// snapshot plus the assumptions to value it under. Used by the CLI so a run
// does not require SEC access.
type Scenario struct {
	Name        string              `yaml:"name"`
	Company     ScenarioCompany     `yaml:"company"`
	Assumptions ScenarioAssumptions `yaml:"assumptions"`
	Sensitivity *ScenarioGrid       `yaml:"sensitivity,omitempty"`
}

// ScenarioCompany mirrors baseyear.RawFacts in YAML form. Amounts are in
// millions of USD.
type ScenarioCompany struct {
	Ticker        string  `yaml:"ticker"`
	FiscalYear    int     `yaml:"fiscal_year"`
	Revenue       float64 `yaml:"revenue"`
	EBIT          float64 `yaml:"ebit"`
	PretaxIncome  float64 `yaml:"pretax_income"`
	TaxExpense    float64 `yaml:"tax_expense"`
	Depreciation  float64 `yaml:"depreciation"`
	CapEx         float64 `yaml:"capex"`
	ShortTermDebt float64 `yaml:"short_term_debt"`
	LongTermDebt  float64 `yaml:"long_term_debt"`
	Cash          float64 `yaml:"cash"`
	NetIncome     float64 `yaml:"net_income"`
	DividendsPaid float64 `yaml:"dividends_paid"`
	Shares        float64 `yaml:"shares"`
	CurrentPrice  float64 `yaml:"current_price"`
	Beta          float64 `yaml:"beta"`
}

// ScenarioAssumptions mirrors Assumptions in YAML form.
type ScenarioAssumptions struct {
	GrowthRate          float64   `yaml:"growth_rate"`
	GrowthSchedule      []float64 `yaml:"growth_schedule"`
	WACC                float64   `yaml:"wacc"`
	TerminalGrowth      float64   `yaml:"terminal_growth"`
	Horizon             int       `yaml:"horizon"`
	Policy              string    `yaml:"policy"`
	SalesToCapitalRatio float64   `yaml:"sales_to_capital_ratio"`
	ReturnOnCapital     float64   `yaml:"return_on_capital"`
}

// ScenarioGrid lists the sensitivity axes to evaluate.
type ScenarioGrid struct {
	WACCValues   []float64 `yaml:"wacc_values"`
	GrowthValues []float64 `yaml:"growth_values"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &s, nil
}

// BaseYear normalizes the scenario's company snapshot into a
// BaseYearRecord, applying the same defaults as the live pipeline.
func (s *Scenario) BaseYear() (*baseyear.BaseYearRecord, error) {
	return baseyear.Normalize(baseyear.RawFacts{
		Ticker:        s.Company.Ticker,
		FiscalYear:    s.Company.FiscalYear,
		Revenue:       s.Company.Revenue,
		EBIT:          s.Company.EBIT,
		PretaxIncome:  s.Company.PretaxIncome,
		TaxExpense:    s.Company.TaxExpense,
		Depreciation:  s.Company.Depreciation,
		CapEx:         s.Company.CapEx,
		ShortTermDebt: s.Company.ShortTermDebt,
		LongTermDebt:  s.Company.LongTermDebt,
		Cash:          s.Company.Cash,
		NetIncome:     s.Company.NetIncome,
		DividendsPaid: s.Company.DividendsPaid,
		Shares:        s.Company.Shares,
		CurrentPrice:  s.Company.CurrentPrice,
		Beta:          s.Company.Beta,
	})
}

// ToAssumptions converts the YAML assumptions into the validated form.
func (s *Scenario) ToAssumptions() Assumptions {
	return Assumptions{
		GrowthRate:          s.Assumptions.GrowthRate,
		GrowthSchedule:      s.Assumptions.GrowthSchedule,
		WACC:                s.Assumptions.WACC,
		TerminalGrowth:      s.Assumptions.TerminalGrowth,
		Horizon:             s.Assumptions.Horizon,
		Policy:              ReinvestmentPolicy(s.Assumptions.Policy),
		SalesToCapitalRatio: s.Assumptions.SalesToCapitalRatio,
		ReturnOnCapital:     s.Assumptions.ReturnOnCapital,
	}.WithDefaults()
}
