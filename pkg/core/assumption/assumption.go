// Package assumption defines the scenario parameters for one valuation run
// and their validation rules.
package assumption

import "fmt"

// ReinvestmentPolicy selects how the projector converts growth into
// reinvestment. The two policies are not equivalent: sales-to-capital ties
// reinvestment to the realized revenue change and can push FCFF negative,
// while return-on-capital keeps FCFF a fixed non-negative fraction of NOPAT.
type ReinvestmentPolicy string

const (
	PolicySalesToCapital  ReinvestmentPolicy = "sales_to_capital"
	PolicyReturnOnCapital ReinvestmentPolicy = "return_on_capital"
)

const (
	// DefaultHorizon is the canonical explicit forecast period.
	DefaultHorizon = 5

	// DefaultReturnOnCapital is the assumed marginal ROC under the
	// return-on-capital policy.
	DefaultReturnOnCapital = 0.15

	// MaxReinvestmentRate caps the reinvestment rate under the
	// return-on-capital policy, so FCFF never drops below 20% of NOPAT.
	MaxReinvestmentRate = 0.80
)

// Assumptions are the caller-supplied scenario parameters for one run.
// Growth is either a single scalar applied every year or a per-year
// schedule of exactly Horizon entries.
type Assumptions struct {
	GrowthRate     float64   `json:"growth_rate"`
	GrowthSchedule []float64 `json:"growth_schedule,omitempty"`

	WACC           float64 `json:"wacc"`
	TerminalGrowth float64 `json:"terminal_growth"`
	Horizon        int     `json:"horizon"`

	Policy              ReinvestmentPolicy `json:"policy"`
	SalesToCapitalRatio float64            `json:"sales_to_capital_ratio,omitempty"`
	ReturnOnCapital     float64            `json:"return_on_capital,omitempty"`
}

// InvalidAssumptionError reports a malformed scenario input. Fatal to the
// run it belongs to, harmless to any other.
type InvalidAssumptionError struct {
	Reason string
}

func (e *InvalidAssumptionError) Error() string {
	return fmt.Sprintf("invalid assumption: %s", e.Reason)
}

// WithDefaults fills the canonical configuration for anything the caller
// left unset: a 5-year horizon and the return-on-capital policy at 15%.
func (a Assumptions) WithDefaults() Assumptions {
	if a.Horizon == 0 {
		a.Horizon = DefaultHorizon
	}
	if a.Policy == "" {
		a.Policy = PolicyReturnOnCapital
	}
	if a.Policy == PolicyReturnOnCapital && a.ReturnOnCapital == 0 {
		a.ReturnOnCapital = DefaultReturnOnCapital
	}
	return a
}

// Validate checks the scenario inputs. The WACC > terminal-growth
// requirement is not checked here: that is the valuator's terminal-value
// guard and has its own error type.
func (a Assumptions) Validate() error {
	if a.Horizon <= 0 {
		return &InvalidAssumptionError{Reason: fmt.Sprintf("horizon must be positive, got %d", a.Horizon)}
	}
	if len(a.GrowthSchedule) > 0 && len(a.GrowthSchedule) != a.Horizon {
		return &InvalidAssumptionError{
			Reason: fmt.Sprintf("growth schedule has %d entries for a %d-year horizon", len(a.GrowthSchedule), a.Horizon),
		}
	}
	switch a.Policy {
	case PolicySalesToCapital:
		if a.SalesToCapitalRatio <= 0 {
			return &InvalidAssumptionError{
				Reason: fmt.Sprintf("sales-to-capital ratio must be positive, got %f", a.SalesToCapitalRatio),
			}
		}
	case PolicyReturnOnCapital:
		if a.ReturnOnCapital <= 0 {
			return &InvalidAssumptionError{
				Reason: fmt.Sprintf("assumed return on capital must be positive, got %f", a.ReturnOnCapital),
			}
		}
	default:
		return &InvalidAssumptionError{Reason: fmt.Sprintf("unknown reinvestment policy %q", a.Policy)}
	}
	return nil
}

// GrowthFor returns the growth rate for the i-th projection year
// (zero-based): the schedule entry when a schedule is set, otherwise the
// shared scalar rate.
func (a Assumptions) GrowthFor(i int) float64 {
	if len(a.GrowthSchedule) > 0 {
		return a.GrowthSchedule[i]
	}
	return a.GrowthRate
}
