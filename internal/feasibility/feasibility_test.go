package feasibility

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func referenceScenario() ScenarioInput {
	return ScenarioInput{
		LandCost:        5_000_000,
		ConversionCost:  1_250_000,
		DevelopmentCost: 1_500_000,
		MarketRate:      2800,
		LandAreaAcres:   1.0,
		PlotSizeSqft:    1200,
	}
}

func TestEvaluate_ReferenceScenario(t *testing.T) {
	result, err := Default().Evaluate(referenceScenario())
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	nearlyEqual(t, "totalSqft", result.Area.TotalSqft, 43560)
	nearlyEqual(t, "usableSqft", result.Area.UsableSqft, 28314)
	if result.Area.Plots != 23 {
		t.Fatalf("plots = %d, want 23", result.Area.Plots)
	}
	nearlyEqual(t, "sellableSqft", result.Area.SellableSqft, 27600)
	nearlyEqual(t, "usablePercent", result.Area.UsablePercent, 65)

	nearlyEqual(t, "marketing", result.Costs.Marketing, 3_864_000)
	nearlyEqual(t, "legal", result.Costs.Legal, 150_000)
	nearlyEqual(t, "totalCost", result.Costs.Total, 11_764_000)

	nearlyEqual(t, "revenue", result.Revenue.TotalRevenue, 77_280_000)
	nearlyEqual(t, "netProfit", result.Revenue.NetProfit, 65_516_000)
	nearlyEqual(t, "roi", result.Revenue.ROIPercent, 65_516_000.0/11_764_000.0*100)
	if math.Abs(result.Revenue.ROIPercent-556.9) > 0.05 {
		t.Fatalf("roi = %v, want about 556.9", result.Revenue.ROIPercent)
	}

	nearlyEqual(t, "breakevenPrice", result.Breakeven.BreakevenPrice, 11_764_000.0/27_600.0)
	nearlyEqual(t, "minimumSellingPrice", result.Breakeven.MinimumSellingPrice, 11_764_000.0/27_600.0*1.1)
	nearlyEqual(t, "marginAboveBreakeven", result.Breakeven.MarginAboveBreakeven, 2800-11_764_000.0/27_600.0)
	nearlyEqual(t, "profitMargin", result.Revenue.ProfitMarginPercent, (2800-11_764_000.0/27_600.0)/2800*100)

	payback, err := result.Breakeven.Payback()
	if err != nil {
		t.Fatalf("Payback returned error: %v", err)
	}
	nearlyEqual(t, "payback", payback, 11_764_000/(65_516_000.0/36))

	if result.Risk.Grade != GradeA {
		t.Fatalf("grade = %s, want A", result.Risk.Grade)
	}
	if result.Risk.Level != RiskLow {
		t.Fatalf("risk = %s, want Low", result.Risk.Level)
	}
	if len(result.Risk.Sensitivity) != 2 {
		t.Fatalf("expected 2 sensitivity outcomes, got %d", len(result.Risk.Sensitivity))
	}
	nearlyEqual(t, "10% drop", result.Risk.Sensitivity[0].NetProfit, 57_788_000)
	nearlyEqual(t, "20% drop", result.Risk.Sensitivity[1].NetProfit, 50_060_000)
}

func TestEvaluate_AppliesAreaDefaults(t *testing.T) {
	in := referenceScenario()
	in.LandAreaAcres = 0
	in.PlotSizeSqft = 0

	result, err := Default().Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.Input.LandAreaAcres != 1.0 || result.Input.PlotSizeSqft != 1200 {
		t.Fatalf("defaults not applied: %+v", result.Input)
	}
	if result.Area.Plots != 23 {
		t.Fatalf("plots = %d, want 23", result.Area.Plots)
	}
}

func TestEvaluate_DegenerateParcel(t *testing.T) {
	in := referenceScenario()
	in.LandAreaAcres = 0.001

	_, err := Default().Evaluate(in)
	if !errors.Is(err, ErrDegenerateScenario) {
		t.Fatalf("expected ErrDegenerateScenario, got %v", err)
	}
}

func TestEvaluate_PlotLargerThanParcel(t *testing.T) {
	in := referenceScenario()
	in.PlotSizeSqft = 30_000

	_, err := Default().Evaluate(in)
	if !errors.Is(err, ErrDegenerateScenario) {
		t.Fatalf("expected ErrDegenerateScenario, got %v", err)
	}
}

func TestEvaluate_HugeParcelKeepsPlotCountExact(t *testing.T) {
	acres := 1e12
	in := referenceScenario()
	in.LandAreaAcres = acres

	result, err := Default().Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	wantPlots := math.Floor(acres * 43560 * 0.65 / 1200)
	if float64(result.Area.Plots) != wantPlots {
		t.Fatalf("plots = %d, want %.0f", result.Area.Plots, wantPlots)
	}
	nearlyEqual(t, "sellableSqft", result.Area.SellableSqft, wantPlots*1200)
	if result.Area.SellableSqft <= 0 {
		t.Fatalf("sellableSqft = %v, want positive", result.Area.SellableSqft)
	}
}

func TestEvaluate_UncountablePlotYieldIsInvalid(t *testing.T) {
	for _, acres := range []float64{1e20, math.MaxFloat64} {
		in := referenceScenario()
		in.LandAreaAcres = acres

		_, err := Default().Evaluate(in)
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Fatalf("acres %g: expected *InputError, got %v", acres, err)
		}
		if !errors.Is(err, ErrInvalidInput) || inputErr.Field != "land_area_acres" {
			t.Fatalf("acres %g: got %v on field %q", acres, err, inputErr.Field)
		}
	}
}

func TestEvaluate_InvalidInputNamesField(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*ScenarioInput)
		field string
	}{
		{"missing land cost", func(in *ScenarioInput) { in.LandCost = 0 }, "land_cost"},
		{"negative conversion cost", func(in *ScenarioInput) { in.ConversionCost = -1 }, "conversion_cost"},
		{"missing development cost", func(in *ScenarioInput) { in.DevelopmentCost = 0 }, "development_cost"},
		{"nan market rate", func(in *ScenarioInput) { in.MarketRate = math.NaN() }, "market_rate"},
		{"infinite land cost", func(in *ScenarioInput) { in.LandCost = math.Inf(1) }, "land_cost"},
		{"negative area", func(in *ScenarioInput) { in.LandAreaAcres = -2 }, "land_area_acres"},
		{"negative plot size", func(in *ScenarioInput) { in.PlotSizeSqft = -1200 }, "plot_size_sqft"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := referenceScenario()
			tc.edit(&in)

			_, err := Default().Evaluate(in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InputError, got %T", err)
			}
			if inputErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", inputErr.Field, tc.field)
			}
		})
	}
}

func TestNewValidator_RegistersFinite(t *testing.T) {
	v := newValidator()
	if err := v.Var(2800.0, "finite"); err != nil {
		t.Fatalf("finite rejected 2800: %v", err)
	}
	if err := v.Var(math.Inf(-1), "finite"); err == nil {
		t.Fatalf("finite accepted -Inf")
	}

	in := referenceScenario()
	in.MarketRate = math.NaN()
	_, err := Default().Evaluate(in)
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Reason != "must be a finite number" {
		t.Fatalf("expected finite rule to reject NaN, got %v", err)
	}
}

func TestEvaluate_LossMakingScenarioHasNoPayback(t *testing.T) {
	in := referenceScenario()
	in.LandCost = 100_000_000

	result, err := Default().Evaluate(in)
	if err != nil {
		t.Fatalf("loss-making scenario should evaluate, got %v", err)
	}
	if result.Revenue.NetProfit >= 0 {
		t.Fatalf("expected negative net profit, got %v", result.Revenue.NetProfit)
	}
	if result.Risk.Grade != GradeC || result.Risk.Level != RiskHigh {
		t.Fatalf("grade/risk = %s/%s, want C/High", result.Risk.Grade, result.Risk.Level)
	}
	if _, err := result.Breakeven.Payback(); !errors.Is(err, ErrNoPayback) {
		t.Fatalf("expected ErrNoPayback, got %v", err)
	}
}

func TestEvaluate_GradeBMediumRisk(t *testing.T) {
	// Revenue 77.28M at 20% ROI needs a 64.4M total cost.
	in := referenceScenario()
	in.LandCost = 57_386_000
	in.ConversionCost = 1_500_000
	in.DevelopmentCost = 1_500_000

	result, err := Default().Evaluate(in)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	nearlyEqual(t, "roi", result.Revenue.ROIPercent, 20)
	if result.Risk.Grade != GradeB || result.Risk.Level != RiskMedium {
		t.Fatalf("grade/risk = %s/%s, want B/Medium", result.Risk.Grade, result.Risk.Level)
	}
}

func TestGradeAndRiskThresholds(t *testing.T) {
	e := Default()

	grades := []struct {
		netProfit, roi float64
		want           Grade
	}{
		{1, 25.01, GradeA},
		{1, 25, GradeB},
		{1, 0.5, GradeB},
		{0, 0, GradeC},
		{-10, -3, GradeC},
	}
	for _, tc := range grades {
		if got := e.grade(tc.netProfit, tc.roi); got != tc.want {
			t.Fatalf("grade(%v, %v) = %s, want %s", tc.netProfit, tc.roi, got, tc.want)
		}
	}

	levels := []struct {
		roi  float64
		want RiskLevel
	}{
		{30.01, RiskLow},
		{30, RiskMedium},
		{15.01, RiskMedium},
		{15, RiskHigh},
		{-40, RiskHigh},
	}
	for _, tc := range levels {
		if got := e.riskLevel(tc.roi); got != tc.want {
			t.Fatalf("riskLevel(%v) = %s, want %s", tc.roi, got, tc.want)
		}
	}
}

func TestEvaluate_Identities(t *testing.T) {
	inputs := []ScenarioInput{
		referenceScenario(),
		{LandCost: 2_000_000, ConversionCost: 400_000, DevelopmentCost: 900_000, MarketRate: 1500, LandAreaAcres: 2.5, PlotSizeSqft: 1500},
		{LandCost: 9_000_000, ConversionCost: 800_000, DevelopmentCost: 3_100_000, MarketRate: 900, LandAreaAcres: 0.75, PlotSizeSqft: 600},
		{LandCost: 40_000_000, ConversionCost: 5_000_000, DevelopmentCost: 12_000_000, MarketRate: 3500, LandAreaAcres: 10, PlotSizeSqft: 2400},
	}

	for i, in := range inputs {
		result, err := Default().Evaluate(in)
		if err != nil {
			t.Fatalf("scenario %d: Evaluate returned error: %v", i, err)
		}

		usable := in.LandAreaAcres * SqftPerAcre * UsableRatio
		wantPlots := int(math.Floor(usable / float64(in.PlotSizeSqft)))
		if result.Area.Plots != wantPlots {
			t.Fatalf("scenario %d: plots = %d, want %d", i, result.Area.Plots, wantPlots)
		}
		if result.Area.SellableSqft > usable {
			t.Fatalf("scenario %d: sellable %v exceeds usable %v", i, result.Area.SellableSqft, usable)
		}

		c := result.Costs
		nearlyEqual(t, "marketing", c.Marketing, result.Area.SellableSqft*in.MarketRate*MarketingRate)
		nearlyEqual(t, "total", c.Total, c.Land+c.Conversion+c.Development+c.Marketing+c.Legal)
		nearlyEqual(t, "netProfit", result.Revenue.NetProfit, result.Revenue.TotalRevenue-c.Total)
		nearlyEqual(t, "roi", result.Revenue.ROIPercent, result.Revenue.NetProfit/c.Total*100)
		nearlyEqual(t, "breakeven round trip", result.Breakeven.BreakevenPrice*result.Area.SellableSqft, c.Total)

		if (result.Risk.Grade == GradeA) != (result.Revenue.NetProfit > 0 && result.Revenue.ROIPercent > 25) {
			t.Fatalf("scenario %d: grade %s inconsistent with roi %v", i, result.Risk.Grade, result.Revenue.ROIPercent)
		}
		if (result.Risk.Grade == GradeC) != (result.Revenue.NetProfit <= 0) {
			t.Fatalf("scenario %d: grade %s inconsistent with profit %v", i, result.Risk.Grade, result.Revenue.NetProfit)
		}
	}
}

func TestEvaluate_ROIMonotonicInMarketRate(t *testing.T) {
	e := Default()
	in := referenceScenario()

	prev := math.Inf(-1)
	for rate := 100.0; rate <= 6000; rate += 100 {
		in.MarketRate = rate
		result, err := e.Evaluate(in)
		if err != nil {
			t.Fatalf("rate %v: Evaluate returned error: %v", rate, err)
		}
		if result.Revenue.ROIPercent < prev {
			t.Fatalf("roi decreased at rate %v: %v < %v", rate, result.Revenue.ROIPercent, prev)
		}
		prev = result.Revenue.ROIPercent
	}
}

func TestNew_InjectedAssumptions(t *testing.T) {
	a := DefaultAssumptions()
	a.UsableRatio = 1.0
	a.LegalCost = 0

	e, err := New(a)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := e.Evaluate(referenceScenario())
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if result.Area.Plots != 36 {
		t.Fatalf("plots = %d, want 36", result.Area.Plots)
	}
	nearlyEqual(t, "legal", result.Costs.Legal, 0)
}

func TestNew_RejectsInvalidAssumptions(t *testing.T) {
	cases := map[string]func(*Assumptions){
		"usable ratio above one":  func(a *Assumptions) { a.UsableRatio = 1.5 },
		"zero acre factor":        func(a *Assumptions) { a.SqftPerAcre = 0 },
		"zero horizon":            func(a *Assumptions) { a.HoldingMonths = 0 },
		"inverted risk bands":     func(a *Assumptions) { a.MediumRiskMinROI = 40 },
		"price drop of 100 pct":   func(a *Assumptions) { a.PriceDrops = []float64{1} },
		"marketing rate of 100 %": func(a *Assumptions) { a.MarketingRate = 1 },
	}

	for name, edit := range cases {
		t.Run(name, func(t *testing.T) {
			a := DefaultAssumptions()
			edit(&a)
			if _, err := New(a); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNew_CopiesPriceDrops(t *testing.T) {
	a := DefaultAssumptions()
	e, err := New(a)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	a.PriceDrops[0] = 0.5
	if got := e.Assumptions().PriceDrops[0]; got != 0.10 {
		t.Fatalf("engine assumptions mutated through caller slice: %v", got)
	}
}

func TestProfitability_ZeroCost(t *testing.T) {
	if _, err := profitability(2800, 27600, 0); !errors.Is(err, ErrDivisionDegenerate) {
		t.Fatalf("expected ErrDivisionDegenerate, got %v", err)
	}
}
