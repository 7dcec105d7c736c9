package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/projection"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/sensitivity"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/valuation"
)

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateRows = false
	return tw
}

func renderHeader(w io.Writer, label string, base *baseyear.BaseYearRecord, a assumption.Assumptions, rates valuation.WACCResult) {
	fmt.Fprintln(w, text.Bold.Sprint(label))
	tw := newTable(w)
	tw.AppendRows([]table.Row{
		{"Fiscal year", base.FiscalYear},
		{"Revenue ($M)", fmt.Sprintf("%.1f", base.Revenue)},
		{"EBIT ($M)", fmt.Sprintf("%.1f", base.EBIT)},
		{"Operating margin", fmt.Sprintf("%.1f%%", base.OperatingMargin*100)},
		{"Tax rate", fmt.Sprintf("%.1f%%", base.TaxRate*100)},
		{"Net debt ($M)", fmt.Sprintf("%.1f", base.NetDebt)},
		{"Shares (M)", fmt.Sprintf("%.1f", base.Shares)},
		{"WACC", fmt.Sprintf("%.2f%%", a.WACC*100)},
		{"Cost of equity", fmt.Sprintf("%.2f%%", rates.CostOfEquity*100)},
		{"Terminal growth", fmt.Sprintf("%.2f%%", a.TerminalGrowth*100)},
		{"Policy", string(a.Policy)},
	})
	tw.Render()
	fmt.Fprintln(w)
}

func renderProjection(w io.Writer, rows []projection.FCFFRow) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"YEAR", "REVENUE", "EBIT", "NOPAT", "REINVEST", "FCFF", "PV(FCFF)"})

	cfgs := make([]table.ColumnConfig, 7)
	for i := range cfgs {
		cfgs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignRight, AlignHeader: text.AlignRight}
	}
	tw.SetColumnConfigs(cfgs)

	for _, r := range rows {
		tw.AppendRow(table.Row{
			r.Year,
			fmt.Sprintf("%.1f", r.Revenue),
			fmt.Sprintf("%.1f", r.EBIT),
			fmt.Sprintf("%.1f", r.NOPAT),
			fmt.Sprintf("%.1f", r.Reinvestment),
			fmt.Sprintf("%.1f", r.FCFF),
			fmt.Sprintf("%.1f", r.PVFCFF),
		})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func renderSummary(w io.Writer, res *valuation.ValuationResult) {
	tw := newTable(w)
	tw.AppendRows([]table.Row{
		{"PV of explicit FCFF ($M)", fmt.Sprintf("%.1f", res.PVExplicit)},
		{"Terminal value ($M)", fmt.Sprintf("%.1f", res.TerminalValue)},
		{"PV of terminal value ($M)", fmt.Sprintf("%.1f", res.PVTerminal)},
		{"Enterprise value ($M)", fmt.Sprintf("%.1f", res.EnterpriseValue)},
		{"Equity value ($M)", fmt.Sprintf("%.1f", res.EquityValue)},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"DCF fair value / share", formatMetric(res.FairValuePerShare)},
		{"DDM cross-check / share", formatMetric(res.DDMPrice)},
		{"P/E cross-check / share", formatMetric(res.PEPrice)},
	})
	if res.CurrentPrice > 0 {
		tw.AppendRow(table.Row{"Current price", fmt.Sprintf("%.2f", res.CurrentPrice)})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func renderSensitivity(w io.Writer, grid *sensitivity.Grid) {
	fmt.Fprintln(w, text.Bold.Sprint("Enterprise value ($B) by WACC x terminal growth"))
	tw := newTable(w)

	hdr := table.Row{"WACC \\ g"}
	for _, g := range grid.GrowthValues {
		hdr = append(hdr, fmt.Sprintf("%.2f%%", g*100))
	}
	tw.AppendHeader(hdr)

	cfgs := make([]table.ColumnConfig, len(grid.GrowthValues)+1)
	for i := range cfgs {
		cfgs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignRight, AlignHeader: text.AlignRight}
	}
	tw.SetColumnConfigs(cfgs)

	for i, wacc := range grid.WACCValues {
		row := table.Row{fmt.Sprintf("%.2f%%", wacc*100)}
		for j := range grid.GrowthValues {
			row = append(row, formatMetric(grid.Cells[i][j]))
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

func formatMetric(m valuation.Metric) string {
	if !m.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", m.Value)
}
