// Command dcf values a company from the terminal: either live from SEC
// EDGAR by ticker, or offline from a YAML scenario file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/classify"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/edgar"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/market"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/sensitivity"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/valuation"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/logger"
)

type runFlags struct {
	growth         float64
	wacc           float64
	terminalGrowth float64
	horizon        int
	policy         string
	salesToCapital float64
	returnOnCap    float64
	sensitivity    bool
	marketConfig   string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.growth, "growth", 0.08, "annual revenue growth for the explicit horizon")
	cmd.Flags().Float64Var(&f.wacc, "wacc", 0, "discount rate; 0 derives it from CAPM")
	cmd.Flags().Float64Var(&f.terminalGrowth, "terminal-growth", 0.025, "perpetual growth beyond the horizon")
	cmd.Flags().IntVar(&f.horizon, "horizon", assumption.DefaultHorizon, "explicit projection years")
	cmd.Flags().StringVar(&f.policy, "policy", string(assumption.PolicySalesToCapital), "reinvestment policy: sales_to_capital or return_on_capital")
	cmd.Flags().Float64Var(&f.salesToCapital, "sales-to-capital", 2.5, "revenue generated per dollar of capital")
	cmd.Flags().Float64Var(&f.returnOnCap, "roc", assumption.DefaultReturnOnCapital, "return on capital for the return_on_capital policy")
	cmd.Flags().BoolVar(&f.sensitivity, "sensitivity", false, "print the WACC x growth sensitivity grid")
	cmd.Flags().StringVar(&f.marketConfig, "market-config", "config/market.hjson", "path to market constants file")
}

func (f *runFlags) assumptions() assumption.Assumptions {
	return assumption.Assumptions{
		GrowthRate:          f.growth,
		WACC:                f.wacc,
		TerminalGrowth:      f.terminalGrowth,
		Horizon:             f.horizon,
		Policy:              assumption.ReinvestmentPolicy(f.policy),
		SalesToCapitalRatio: f.salesToCapital,
		ReturnOnCapital:     f.returnOnCap,
	}.WithDefaults()
}

// bindEnvOverrides lets environment variables stand in for flags the caller
// did not pass: --terminal-growth is overridden by DCF_TERMINAL_GROWTH, and
// so on. An explicit flag always wins over the environment.
func bindEnvOverrides(flags *pflag.FlagSet) {
	viper.SetEnvPrefix("DCF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			flags.Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func main() {
	godotenv.Load()
	logger.Init()

	rootCmd := &cobra.Command{
		Use:           "dcf",
		Short:         "Two-stage FCFF valuation for US public companies",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			bindEnvOverrides(cmd.Flags())
		},
	}
	rootCmd.AddCommand(newValueCmd(), newScenarioCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newValueCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "value <ticker>",
		Short: "Fetch the latest 10-K from SEC EDGAR and value the company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := strings.ToUpper(args[0])

			md, err := market.Load(flags.marketConfig)
			if err != nil {
				fmt.Fprintf(os.Stderr, "using default market constants (%v)\n", err)
			}

			fetcher := edgar.NewFetcher(edgar.NewMemoryFactsCache())
			facts, err := fetcher.FetchBaseYearFacts(cmd.Context(), ticker)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", ticker, err)
			}

			if classify.Classify(facts) == classify.Financial {
				return fmt.Errorf("%s looks like a financial institution; FCFF valuation does not apply", ticker)
			}
			if facts.Beta == 0 {
				facts.Beta = md.DefaultBeta
			}

			base, err := baseyear.Normalize(facts)
			if err != nil {
				return err
			}
			return runAndRender(cmd.OutOrStdout(), ticker, base, flags.assumptions(), md, flags.sensitivity, nil)
		},
	}
	flags.register(cmd)
	return cmd
}

func newScenarioCmd() *cobra.Command {
	var withSensitivity bool
	var marketConfig string
	cmd := &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "Value a company from an offline scenario file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly 1 scenario file argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := assumption.LoadScenario(args[0])
			if err != nil {
				return err
			}

			md, err := market.Load(marketConfig)
			if err != nil {
				fmt.Fprintf(os.Stderr, "using default market constants (%v)\n", err)
			}

			base, err := s.BaseYear()
			if err != nil {
				return err
			}

			var grid *assumption.ScenarioGrid
			if s.Sensitivity != nil {
				grid = s.Sensitivity
			}
			name := s.Name
			if name == "" {
				name = s.Company.Ticker
			}
			return runAndRender(cmd.OutOrStdout(), name, base, s.ToAssumptions(), md, withSensitivity || grid != nil, grid)
		},
	}
	cmd.Flags().BoolVar(&withSensitivity, "sensitivity", false, "print the WACC x growth sensitivity grid")
	cmd.Flags().StringVar(&marketConfig, "market-config", "config/market.hjson", "path to market constants file")
	return cmd
}

func runAndRender(w io.Writer, label string, base *baseyear.BaseYearRecord, a assumption.Assumptions, md market.MarketData, withGrid bool, scenarioGrid *assumption.ScenarioGrid) error {
	rates := valuation.CalculateWACC(valuation.WACCInput{
		Beta:              base.Beta,
		RiskFreeRate:      md.RiskFreeRate,
		EquityRiskPremium: md.EquityRiskPremium,
		PreTaxCostOfDebt:  md.PreTaxCostOfDebt,
		TaxRate:           base.TaxRate,
	})
	if a.WACC == 0 {
		a.WACC = rates.WACC
	}

	result, err := valuation.RunValuation(base, a, rates.CostOfEquity)
	if err != nil {
		return err
	}

	renderHeader(w, label, base, a, rates)
	renderProjection(w, result.Rows)
	renderSummary(w, result)

	if withGrid {
		waccs, growths := sensitivity.DefaultAxes(a.WACC, a.TerminalGrowth)
		if scenarioGrid != nil && len(scenarioGrid.WACCValues) > 0 && len(scenarioGrid.GrowthValues) > 0 {
			waccs, growths = scenarioGrid.WACCValues, scenarioGrid.GrowthValues
		}
		grid, err := sensitivity.Build(base, a, waccs, growths)
		if err != nil {
			return err
		}
		renderSensitivity(w, grid)
	}
	return nil
}
