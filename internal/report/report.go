// Package report turns engine results into the rounded JSON documents the
// ROI endpoints return.
package report

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/dolceboy103/layoutgpt-backend/internal/feasibility"
)

// InputParameters echoes the scenario after defaults are applied.
type InputParameters struct {
	LandCost        float64 `json:"land_cost"`
	ConversionCost  float64 `json:"conversion_cost"`
	DevelopmentCost float64 `json:"development_cost"`
	MarketRate      float64 `json:"market_rate"`
	LandAreaAcres   float64 `json:"land_area_acres"`
	PlotSizeSqft    int     `json:"plot_size_sqft"`
}

// AreaAnalysis is the rounded plot yield of a parcel.
type AreaAnalysis struct {
	TotalLandSqft    float64 `json:"total_land_sqft"`
	SellableAreaSqft float64 `json:"sellable_area_sqft"`
	UsablePercentage float64 `json:"usable_percentage"`
	NumberOfPlots    int     `json:"number_of_plots"`
	AreaPerPlot      int     `json:"area_per_plot"`
}

// CostBreakdown lists each cost component and the total, in whole currency units.
type CostBreakdown struct {
	LandCost          float64 `json:"land_cost"`
	ConversionCost    float64 `json:"conversion_cost"`
	DevelopmentCost   float64 `json:"development_cost"`
	MarketingCost     float64 `json:"marketing_cost"`
	LegalApprovalCost float64 `json:"legal_approval_cost"`
	TotalCost         float64 `json:"total_cost"`
}

// RevenueAnalysis carries revenue and profit figures with percentages to two decimals.
type RevenueAnalysis struct {
	SellingRatePerSqft     float64 `json:"selling_rate_per_sqft"`
	TotalRevenue           float64 `json:"total_revenue"`
	NetProfit              float64 `json:"net_profit"`
	ROIPercentage          float64 `json:"roi_percentage"`
	ProfitMarginPercentage float64 `json:"profit_margin_percentage"`
}

// BreakevenAnalysis reports PaybackPeriodMonths as null when the scenario never pays back.
type BreakevenAnalysis struct {
	BreakevenPricePerSqft float64  `json:"breakeven_price_per_sqft"`
	MarginAboveBreakeven  float64  `json:"margin_above_breakeven"`
	MinimumSellingPrice   float64  `json:"minimum_selling_price"`
	PaybackPeriodMonths   *float64 `json:"payback_period_months"`
}

// RiskMetrics holds the grade, risk level and net profit under each price drop.
type RiskMetrics struct {
	InvestmentGrade        string             `json:"investment_grade"`
	RiskLevel              string             `json:"risk_level"`
	SensitivityToPriceDrop map[string]float64 `json:"sensitivity_to_price_drop"`
}

// TimelineProjections is the indicative phase plan shown next to every calculation.
type TimelineProjections struct {
	LandAcquisition      string `json:"land_acquisition"`
	ConversionApproval   string `json:"conversion_approval"`
	DevelopmentPhase     string `json:"development_phase"`
	SalesMarketing       string `json:"sales_marketing"`
	TotalProjectDuration string `json:"total_project_duration"`
}

// KeyMetrics is the short summary repeated at the end of a calculation.
type KeyMetrics struct {
	SellableArea   float64 `json:"sellable_area"`
	TotalCost      float64 `json:"total_cost"`
	Revenue        float64 `json:"revenue"`
	ROIPercentage  float64 `json:"roi_percentage"`
	BreakevenPrice float64 `json:"breakeven_price"`
}

// Calculation is the document returned for a single scenario.
type Calculation struct {
	InputParameters     InputParameters     `json:"input_parameters"`
	AreaAnalysis        AreaAnalysis        `json:"area_analysis"`
	CostBreakdown       CostBreakdown       `json:"cost_breakdown"`
	RevenueAnalysis     RevenueAnalysis     `json:"revenue_analysis"`
	BreakevenAnalysis   BreakevenAnalysis   `json:"breakeven_analysis"`
	RiskMetrics         RiskMetrics         `json:"risk_metrics"`
	TimelineProjections TimelineProjections `json:"timeline_projections"`
	KeyMetrics          KeyMetrics          `json:"key_metrics"`
}

var defaultTimeline = TimelineProjections{
	LandAcquisition:      "1-2 months",
	ConversionApproval:   "8-12 months",
	DevelopmentPhase:     "12-18 months",
	SalesMarketing:       "18-24 months",
	TotalProjectDuration: "39-56 months",
}

// Build converts an engine result into its rounded report form.
func Build(r feasibility.Result) Calculation {
	in := r.Input

	var payback *float64
	if months, err := r.Breakeven.Payback(); err == nil {
		v := whole(months)
		payback = &v
	}

	sensitivity := make(map[string]float64, len(r.Risk.Sensitivity))
	for _, s := range r.Risk.Sensitivity {
		sensitivity[DropKey(s.Drop)] = whole(s.NetProfit)
	}

	roi := percent(r.Revenue.ROIPercent)

	return Calculation{
		InputParameters: InputParameters{
			LandCost:        in.LandCost,
			ConversionCost:  in.ConversionCost,
			DevelopmentCost: in.DevelopmentCost,
			MarketRate:      in.MarketRate,
			LandAreaAcres:   in.LandAreaAcres,
			PlotSizeSqft:    in.PlotSizeSqft,
		},
		AreaAnalysis: AreaAnalysis{
			TotalLandSqft:    whole(r.Area.TotalSqft),
			SellableAreaSqft: whole(r.Area.SellableSqft),
			UsablePercentage: whole(r.Area.UsablePercent),
			NumberOfPlots:    r.Area.Plots,
			AreaPerPlot:      r.Area.PlotSizeSqft,
		},
		CostBreakdown: CostBreakdown{
			LandCost:          r.Costs.Land,
			ConversionCost:    r.Costs.Conversion,
			DevelopmentCost:   r.Costs.Development,
			MarketingCost:     whole(r.Costs.Marketing),
			LegalApprovalCost: r.Costs.Legal,
			TotalCost:         whole(r.Costs.Total),
		},
		RevenueAnalysis: RevenueAnalysis{
			SellingRatePerSqft:     r.Revenue.SellingRate,
			TotalRevenue:           whole(r.Revenue.TotalRevenue),
			NetProfit:              whole(r.Revenue.NetProfit),
			ROIPercentage:          roi,
			ProfitMarginPercentage: percent(r.Revenue.ProfitMarginPercent),
		},
		BreakevenAnalysis: BreakevenAnalysis{
			BreakevenPricePerSqft: whole(r.Breakeven.BreakevenPrice),
			MarginAboveBreakeven:  whole(r.Breakeven.MarginAboveBreakeven),
			MinimumSellingPrice:   whole(r.Breakeven.MinimumSellingPrice),
			PaybackPeriodMonths:   payback,
		},
		RiskMetrics: RiskMetrics{
			InvestmentGrade:        string(r.Risk.Grade),
			RiskLevel:              string(r.Risk.Level),
			SensitivityToPriceDrop: sensitivity,
		},
		TimelineProjections: defaultTimeline,
		KeyMetrics: KeyMetrics{
			SellableArea:   whole(r.Area.SellableSqft),
			TotalCost:      whole(r.Costs.Total),
			Revenue:        whole(r.Revenue.TotalRevenue),
			ROIPercentage:  roi,
			BreakevenPrice: whole(r.Breakeven.BreakevenPrice),
		},
	}
}

// DropKey names a price drop the way the sensitivity map does, e.g. "10_percent_drop".
func DropKey(drop float64) string {
	return fmt.Sprintf("%d_percent_drop", int(math.Round(drop*100)))
}

func whole(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

func percent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func roundUp(v float64) float64 {
	return decimal.NewFromFloat(v).Ceil().InexactFloat64()
}
