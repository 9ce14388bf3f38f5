package feasibility

import "fmt"

// Fixed business assumptions of the feasibility model. Areas are in square
// feet, money is in whatever currency the caller's costs and rates use.
const (
	SqftPerAcre      = 43560.0
	UsableRatio      = 0.65
	MarketingRate    = 0.05
	LegalCost        = 150000.0
	HoldingMonths    = 36.0
	SafetyMargin     = 0.10
	GradeAMinROI     = 25.0
	LowRiskMinROI    = 30.0
	MediumRiskMinROI = 15.0

	DefaultLandAreaAcres = 1.0
	DefaultPlotSizeSqft  = 1200
)

// Assumptions groups every fixed factor the engine applies to a scenario.
// Callers of the HTTP API cannot change them; tests inject their own.
type Assumptions struct {
	// SqftPerAcre converts acres to square feet.
	SqftPerAcre float64 `json:"sqft_per_acre" validate:"gt=0"`
	// UsableRatio is the share of raw land left after roads, setbacks and amenities.
	UsableRatio float64 `json:"usable_ratio" validate:"gt=0,lte=1"`
	// MarketingRate is the marketing allowance as a share of gross revenue.
	MarketingRate float64 `json:"marketing_rate" validate:"gte=0,lt=1"`
	// LegalCost is the flat legal and approval cost per project.
	LegalCost float64 `json:"legal_cost" validate:"gte=0"`
	// HoldingMonths is the project horizon used by the payback approximation.
	HoldingMonths float64 `json:"holding_months" validate:"gt=0"`
	// SafetyMargin is added on top of the breakeven price for the minimum selling price.
	SafetyMargin float64 `json:"safety_margin" validate:"gte=0"`

	GradeAMinROI     float64 `json:"grade_a_min_roi"`
	LowRiskMinROI    float64 `json:"low_risk_min_roi"`
	MediumRiskMinROI float64 `json:"medium_risk_min_roi" validate:"ltefield=LowRiskMinROI"`

	// PriceDrops are the selling-price reductions used for sensitivity, as fractions.
	PriceDrops []float64 `json:"price_drops" validate:"dive,gt=0,lt=1"`
}

// DefaultAssumptions returns the assumptions the service runs with.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		SqftPerAcre:      SqftPerAcre,
		UsableRatio:      UsableRatio,
		MarketingRate:    MarketingRate,
		LegalCost:        LegalCost,
		HoldingMonths:    HoldingMonths,
		SafetyMargin:     SafetyMargin,
		GradeAMinROI:     GradeAMinROI,
		LowRiskMinROI:    LowRiskMinROI,
		MediumRiskMinROI: MediumRiskMinROI,
		PriceDrops:       []float64{0.10, 0.20},
	}
}

// Validate reports whether the assumptions describe a usable model.
func (a Assumptions) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid assumptions: %w", err)
	}
	return nil
}

func (a Assumptions) clone() Assumptions {
	a.PriceDrops = append([]float64(nil), a.PriceDrops...)
	return a
}
