package valuation

const (
	// DDMPerpetualGrowth is the fixed low perpetual dividend growth rate.
	DDMPerpetualGrowth = 0.02

	// PEMultiple is the conservative earnings multiple applied uniformly.
	PEMultiple = 15.0
)

// CrossCheckInput holds the base-year figures the point-estimate models
// share. Currency amounts in millions, shares in millions.
type CrossCheckInput struct {
	DividendsPaid float64
	NetIncome     float64
	Shares        float64
	CostOfEquity  float64
}

// DDMPrice values the stock as a perpetuity of dividends growing at the
// fixed low rate: DPS * (1+g) / (ke - g). Not applicable when ke does not
// exceed the growth rate or when shares are missing.
func DDMPrice(input CrossCheckInput) Metric {
	if input.Shares <= 0 || input.CostOfEquity <= DDMPerpetualGrowth {
		return NA()
	}
	dps := input.DividendsPaid / input.Shares
	return Some(dps * (1 + DDMPerpetualGrowth) / (input.CostOfEquity - DDMPerpetualGrowth))
}

// PEPrice values the stock at a flat conservative multiple of EPS. Not
// applicable for loss-making companies or a missing share count.
func PEPrice(input CrossCheckInput) Metric {
	if input.Shares <= 0 {
		return NA()
	}
	eps := input.NetIncome / input.Shares
	if eps <= 0 {
		return NA()
	}
	return Some(eps * PEMultiple)
}
