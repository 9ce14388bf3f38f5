package feasibility

import (
	"fmt"
	"math"
)

// ScenarioInput describes one hypothetical land-development project.
// LandAreaAcres and PlotSizeSqft fall back to their defaults when left at zero.
type ScenarioInput struct {
	Name            string  `json:"name,omitempty" yaml:"name"`
	LandCost        float64 `json:"land_cost" yaml:"land_cost" validate:"finite,gt=0"`
	ConversionCost  float64 `json:"conversion_cost" yaml:"conversion_cost" validate:"finite,gt=0"`
	DevelopmentCost float64 `json:"development_cost" yaml:"development_cost" validate:"finite,gt=0"`
	MarketRate      float64 `json:"market_rate" yaml:"market_rate" validate:"finite,gt=0"`
	LandAreaAcres   float64 `json:"land_area_acres" yaml:"land_area_acres" validate:"finite,gt=0"`
	PlotSizeSqft    int     `json:"plot_size_sqft" yaml:"plot_size_sqft" validate:"gt=0"`
}

func (in ScenarioInput) withDefaults() ScenarioInput {
	if in.LandAreaAcres == 0 {
		in.LandAreaAcres = DefaultLandAreaAcres
	}
	if in.PlotSizeSqft == 0 {
		in.PlotSizeSqft = DefaultPlotSizeSqft
	}
	return in
}

// AreaAnalysis is the plot yield of a parcel.
type AreaAnalysis struct {
	TotalSqft     float64
	UsableSqft    float64
	UsablePercent float64
	Plots         int
	PlotSizeSqft  int
	// SellableSqft is plot-aligned: Plots * PlotSizeSqft.
	SellableSqft float64
}

// CostBreakdown lists every cost component and their sum.
type CostBreakdown struct {
	Land        float64
	Conversion  float64
	Development float64
	Marketing   float64
	Legal       float64
	Total       float64
}

// RevenueAnalysis holds the profitability figures of a scenario.
type RevenueAnalysis struct {
	SellingRate         float64
	TotalRevenue        float64
	NetProfit           float64
	ROIPercent          float64
	ProfitMarginPercent float64
}

// BreakevenAnalysis holds breakeven pricing and payback timing.
type BreakevenAnalysis struct {
	BreakevenPrice       float64
	MarginAboveBreakeven float64
	MinimumSellingPrice  float64
	// PaybackMonths is nil when the scenario never pays back.
	PaybackMonths *float64
}

// Payback returns the approximate payback period in months.
//
// The figure is total cost divided by an average monthly profit spread over
// the holding horizon. It is not a discounted cash-flow schedule.
func (b BreakevenAnalysis) Payback() (float64, error) {
	if b.PaybackMonths == nil {
		return 0, ErrNoPayback
	}
	return *b.PaybackMonths, nil
}

// Grade is the coarse investment grade of a scenario.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// RiskLevel buckets a scenario by ROI.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// PriceDropOutcome is the net profit when the selling price falls by Drop.
type PriceDropOutcome struct {
	Drop      float64
	NetProfit float64
}

// RiskMetrics classifies a scenario and stresses it against price drops.
type RiskMetrics struct {
	Grade       Grade
	Level       RiskLevel
	Sensitivity []PriceDropOutcome
}

// Result is the full evaluation of one scenario.
type Result struct {
	Name      string
	Input     ScenarioInput
	Area      AreaAnalysis
	Costs     CostBreakdown
	Revenue   RevenueAnalysis
	Breakeven BreakevenAnalysis
	Risk      RiskMetrics
}

// Engine evaluates scenarios under a fixed set of assumptions.
type Engine struct {
	a Assumptions
}

// New returns an engine bound to a copy of the given assumptions.
func New(a Assumptions) (*Engine, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Engine{a: a.clone()}, nil
}

// Default returns an engine using DefaultAssumptions.
func Default() *Engine {
	return &Engine{a: DefaultAssumptions()}
}

// Assumptions returns a copy of the engine's assumptions.
func (e *Engine) Assumptions() Assumptions {
	return e.a.clone()
}

// Evaluate runs the full pipeline for one scenario.
func (e *Engine) Evaluate(in ScenarioInput) (Result, error) {
	in = in.withDefaults()
	if err := validateInput(in); err != nil {
		return Result{}, err
	}

	area, err := e.areaYield(in.LandAreaAcres, in.PlotSizeSqft)
	if err != nil {
		return Result{}, err
	}

	costs := e.aggregateCosts(in, area.SellableSqft)

	revenue, err := profitability(in.MarketRate, area.SellableSqft, costs.Total)
	if err != nil {
		return Result{}, err
	}

	breakeven := e.breakeven(in.MarketRate, area.SellableSqft, costs.Total, revenue.NetProfit)
	revenue.ProfitMarginPercent = (in.MarketRate - breakeven.BreakevenPrice) / in.MarketRate * 100

	return Result{
		Name:      in.Name,
		Input:     in,
		Area:      area,
		Costs:     costs,
		Revenue:   revenue,
		Breakeven: breakeven,
		Risk:      e.classifyRisk(revenue, costs.Total),
	}, nil
}

func (e *Engine) areaYield(acres float64, plotSizeSqft int) (AreaAnalysis, error) {
	total := acres * e.a.SqftPerAcre
	usable := total * e.a.UsableRatio
	count := math.Floor(usable / float64(plotSizeSqft))
	if count >= math.MaxInt {
		return AreaAnalysis{}, &InputError{
			Field:  "land_area_acres",
			Value:  acres,
			Reason: fmt.Sprintf("yields more %d sqft plots than can be counted", plotSizeSqft),
		}
	}
	plots := int(count)
	if plots < 1 {
		return AreaAnalysis{}, fmt.Errorf("%w: %.4g acres (%.0f usable sqft) holds no %d sqft plot",
			ErrDegenerateScenario, acres, usable, plotSizeSqft)
	}

	return AreaAnalysis{
		TotalSqft:     total,
		UsableSqft:    usable,
		UsablePercent: e.a.UsableRatio * 100,
		Plots:         plots,
		PlotSizeSqft:  plotSizeSqft,
		SellableSqft:  float64(plots) * float64(plotSizeSqft),
	}, nil
}

func (e *Engine) aggregateCosts(in ScenarioInput, sellableSqft float64) CostBreakdown {
	marketing := sellableSqft * in.MarketRate * e.a.MarketingRate
	total := in.LandCost + in.ConversionCost + in.DevelopmentCost + marketing + e.a.LegalCost

	return CostBreakdown{
		Land:        in.LandCost,
		Conversion:  in.ConversionCost,
		Development: in.DevelopmentCost,
		Marketing:   marketing,
		Legal:       e.a.LegalCost,
		Total:       total,
	}
}

// profitability leaves ProfitMarginPercent unset; it depends on the breakeven price.
func profitability(rate, sellableSqft, totalCost float64) (RevenueAnalysis, error) {
	if totalCost == 0 {
		return RevenueAnalysis{}, ErrDivisionDegenerate
	}

	revenue := sellableSqft * rate
	netProfit := revenue - totalCost

	return RevenueAnalysis{
		SellingRate:  rate,
		TotalRevenue: revenue,
		NetProfit:    netProfit,
		ROIPercent:   netProfit / totalCost * 100,
	}, nil
}

func (e *Engine) breakeven(rate, sellableSqft, totalCost, netProfit float64) BreakevenAnalysis {
	price := totalCost / sellableSqft

	b := BreakevenAnalysis{
		BreakevenPrice:       price,
		MarginAboveBreakeven: rate - price,
		MinimumSellingPrice:  price * (1 + e.a.SafetyMargin),
	}
	if netProfit > 0 {
		months := totalCost / (netProfit / e.a.HoldingMonths)
		b.PaybackMonths = &months
	}
	return b
}

func (e *Engine) classifyRisk(rev RevenueAnalysis, totalCost float64) RiskMetrics {
	m := RiskMetrics{
		Grade: e.grade(rev.NetProfit, rev.ROIPercent),
		Level: e.riskLevel(rev.ROIPercent),
	}
	for _, drop := range e.a.PriceDrops {
		m.Sensitivity = append(m.Sensitivity, PriceDropOutcome{
			Drop:      drop,
			NetProfit: rev.TotalRevenue*(1-drop) - totalCost,
		})
	}
	return m
}

func (e *Engine) grade(netProfit, roi float64) Grade {
	switch {
	case netProfit <= 0:
		return GradeC
	case roi > e.a.GradeAMinROI:
		return GradeA
	default:
		return GradeB
	}
}

func (e *Engine) riskLevel(roi float64) RiskLevel {
	switch {
	case roi > e.a.LowRiskMinROI:
		return RiskLow
	case roi > e.a.MediumRiskMinROI:
		return RiskMedium
	default:
		return RiskHigh
	}
}
