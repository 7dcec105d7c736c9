package main

import (
	"math"
	"testing"

	"github.com/spf13/pflag"
)

func TestEnvOverridesUnsetFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var wacc float64
	flags.Float64Var(&wacc, "wacc", 0, "")
	var marketConfig string
	flags.StringVar(&marketConfig, "market-config", "config/market.hjson", "")

	t.Setenv("DCF_WACC", "0.085")
	t.Setenv("DCF_MARKET_CONFIG", "alt/market.hjson")

	bindEnvOverrides(flags)

	if math.Abs(wacc-0.085) > 1e-9 {
		t.Errorf("Expected DCF_WACC to override wacc, got %f", wacc)
	}
	if marketConfig != "alt/market.hjson" {
		t.Errorf("Expected DCF_MARKET_CONFIG to override market-config, got %s", marketConfig)
	}
}

func TestExplicitFlagBeatsEnv(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var wacc float64
	flags.Float64Var(&wacc, "wacc", 0, "")
	if err := flags.Set("wacc", "0.10"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	t.Setenv("DCF_WACC", "0.085")
	bindEnvOverrides(flags)

	if math.Abs(wacc-0.10) > 1e-9 {
		t.Errorf("Expected explicit flag to win over env, got %f", wacc)
	}
}

func TestEnvLeavesUnrelatedFlagsAlone(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var growth float64
	flags.Float64Var(&growth, "growth", 0.08, "")

	bindEnvOverrides(flags)

	if math.Abs(growth-0.08) > 1e-9 {
		t.Errorf("Expected default to survive with no env set, got %f", growth)
	}
}
