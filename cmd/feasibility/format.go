package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dolceboy103/layoutgpt-backend/internal/feasibility"
)

func printResult(w io.Writer, r feasibility.Result) {
	title := "Feasibility Report"
	if r.Name != "" {
		title += ": " + r.Name
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "==================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Area")
	fmt.Fprintln(w, "----")
	fmt.Fprintf(w, "  Total land:           %s sqft\n", formatMoney(r.Area.TotalSqft))
	fmt.Fprintf(w, "  Usable (%.0f%%):        %s sqft\n", r.Area.UsablePercent, formatMoney(r.Area.UsableSqft))
	fmt.Fprintf(w, "  Plots:                %d x %d sqft\n", r.Area.Plots, r.Area.PlotSizeSqft)
	fmt.Fprintf(w, "  Sellable area:        %s sqft\n", formatMoney(r.Area.SellableSqft))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Costs")
	fmt.Fprintln(w, "-----")
	fmt.Fprintf(w, "  Land:                 %s\n", formatMoney(r.Costs.Land))
	fmt.Fprintf(w, "  Conversion:           %s\n", formatMoney(r.Costs.Conversion))
	fmt.Fprintf(w, "  Development:          %s\n", formatMoney(r.Costs.Development))
	fmt.Fprintf(w, "  Marketing:            %s\n", formatMoney(r.Costs.Marketing))
	fmt.Fprintf(w, "  Legal/approval:       %s\n", formatMoney(r.Costs.Legal))
	fmt.Fprintf(w, "  Total:                %s\n", formatMoney(r.Costs.Total))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Returns")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "  Revenue:              %s\n", formatMoney(r.Revenue.TotalRevenue))
	fmt.Fprintf(w, "  Net profit:           %s\n", formatMoney(r.Revenue.NetProfit))
	fmt.Fprintf(w, "  ROI:                  %.2f%%\n", r.Revenue.ROIPercent)
	fmt.Fprintf(w, "  Profit margin:        %.2f%%\n", r.Revenue.ProfitMarginPercent)
	fmt.Fprintf(w, "  Breakeven price:      %.0f /sqft\n", r.Breakeven.BreakevenPrice)
	fmt.Fprintf(w, "  Minimum price:        %.0f /sqft\n", r.Breakeven.MinimumSellingPrice)
	fmt.Fprintf(w, "  Payback:              %s\n", formatPayback(r.Breakeven))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "----")
	fmt.Fprintf(w, "  Grade:                %s\n", r.Risk.Grade)
	fmt.Fprintf(w, "  Risk level:           %s\n", r.Risk.Level)
	for _, s := range r.Risk.Sensitivity {
		fmt.Fprintf(w, "  Profit at -%.0f%% price: %s\n", s.Drop*100, formatMoney(s.NetProfit))
	}
}

func printComparison(w io.Writer, c feasibility.Comparison) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tPlots\tTotal cost\tRevenue\tNet profit\tROI\tGrade\tRisk\t")

	for i, o := range c.Outcomes {
		marker := ""
		if i == c.BestIndex {
			marker = "*"
		}
		if !o.OK() {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t-\t-\t-\t%s\n", o.ID, o.Name, o.Err)
			continue
		}
		r := o.Result
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%.2f%%\t%s\t%s\t%s\n",
			o.ID, o.Name, r.Area.Plots,
			formatMoney(r.Costs.Total), formatMoney(r.Revenue.TotalRevenue), formatMoney(r.Revenue.NetProfit),
			r.Revenue.ROIPercent, r.Risk.Grade, r.Risk.Level, marker)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	if best, ok := c.Best(); ok {
		fmt.Fprintf(w, "Best scenario: %s (%s), ROI %.2f%%\n", best.Name, best.ID, best.Result.Revenue.ROIPercent)
	} else {
		fmt.Fprintln(w, "No scenario could be evaluated.")
	}
}

func formatPayback(b feasibility.BreakevenAnalysis) string {
	months, err := b.Payback()
	if err != nil {
		return "never (no profit)"
	}
	return fmt.Sprintf("~%.0f months", months)
}

func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%s%.2fB", sign, v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%s%.2fM", sign, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s%.1fK", sign, v/1_000)
	}
	return fmt.Sprintf("%s%.0f", sign, v)
}
