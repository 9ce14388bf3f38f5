package report

import "github.com/dolceboy103/layoutgpt-backend/internal/feasibility"

// ScenarioResults is the condensed result of one scenario in a comparison.
type ScenarioResults struct {
	PlotsCount          int      `json:"plots_count"`
	SellableArea        float64  `json:"sellable_area"`
	TotalCost           float64  `json:"total_cost"`
	TotalRevenue        float64  `json:"total_revenue"`
	NetProfit           float64  `json:"net_profit"`
	ROIPercentage       float64  `json:"roi_percentage"`
	PaybackPeriodMonths *float64 `json:"payback_period_months"`
	InvestmentGrade     string   `json:"investment_grade"`
	RiskLevel           string   `json:"risk_level"`
}

// ScenarioView is one entry of a comparison. Failed scenarios carry Error and no Results.
type ScenarioView struct {
	ScenarioID string                    `json:"scenario_id"`
	Name       string                    `json:"name"`
	Parameters feasibility.ScenarioInput `json:"parameters"`
	Results    *ScenarioResults          `json:"results,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// ComparisonView is the document returned for a batch of scenarios.
type ComparisonView struct {
	Scenarios    []ScenarioView `json:"scenarios"`
	BestScenario *ScenarioView  `json:"best_scenario"`
}

// BuildComparison converts a comparison into its report form. Payback is
// rounded up to whole months.
func BuildComparison(c feasibility.Comparison) ComparisonView {
	view := ComparisonView{Scenarios: make([]ScenarioView, 0, len(c.Outcomes))}

	for _, o := range c.Outcomes {
		sv := ScenarioView{
			ScenarioID: o.ID,
			Name:       o.Name,
			Parameters: o.Input,
		}
		if o.OK() {
			sv.Parameters = o.Result.Input
			sv.Results = scenarioResults(o.Result)
		} else {
			sv.Error = o.Err.Error()
		}
		view.Scenarios = append(view.Scenarios, sv)
	}

	if c.BestIndex >= 0 && c.BestIndex < len(view.Scenarios) {
		best := view.Scenarios[c.BestIndex]
		view.BestScenario = &best
	}

	return view
}

func scenarioResults(r feasibility.Result) *ScenarioResults {
	var payback *float64
	if months, err := r.Breakeven.Payback(); err == nil {
		v := roundUp(months)
		payback = &v
	}

	return &ScenarioResults{
		PlotsCount:          r.Area.Plots,
		SellableArea:        r.Area.SellableSqft,
		TotalCost:           whole(r.Costs.Total),
		TotalRevenue:        whole(r.Revenue.TotalRevenue),
		NetProfit:           whole(r.Revenue.NetProfit),
		ROIPercentage:       percent(r.Revenue.ROIPercent),
		PaybackPeriodMonths: payback,
		InvestmentGrade:     string(r.Risk.Grade),
		RiskLevel:           string(r.Risk.Level),
	}
}
