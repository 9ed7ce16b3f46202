package model

// Rent estimation method tags. MethodNone marks a listing no strategy could
// price.
const (
	MethodManualOverride = "manual_override"
	MethodRuleOfThumb    = "rule_of_thumb_per_bed"
	MethodRentToPrice    = "rent_to_price"
	MethodNone           = "none"
)

// EstimationResult is the outcome of the rent estimation chain.
type EstimationResult struct {
	Rent       *float64 // nil when no strategy produced a value
	Confidence float64  // 0.0 ~ 1.0
	Method     string
}

// UnderwritingResult holds the full metric set computed from a listing and
// its estimated rent. Ratio fields are nil when their denominator is zero or
// non-positive; they are never Inf or NaN.
type UnderwritingResult struct {
	ClosingCosts     float64
	Rehab            float64
	DownPayment      float64
	LoanAmount       float64
	PMIMonthly       float64
	PITIMonthly      float64
	TaxesMonthly     float64
	InsuranceMonthly float64
	HOAMonthly       float64
	Vacancy          float64
	Maintenance      float64
	Management       float64
	Capex            float64
	OpExMonthly      float64
	NOIMonthly       float64
	NOIAnnual        float64
	CashFlowAnnual   float64
	TotalCashIn      float64

	CapRate    *float64
	CashOnCash *float64
	DSCR       *float64
}

// ScreeningResult is the triage verdict for one listing.
type ScreeningResult struct {
	InBuyBox     bool
	MeetsTargets bool
	ManualCheck  bool
	// Reasons are accumulated in a fixed evaluation order so output is
	// reproducible run to run.
	Reasons []string
}

// Evaluation ties one listing to everything the pipeline computed for it.
// Underwriting is nil when rent estimation failed entirely.
type Evaluation struct {
	Listing      *Listing
	Estimate     EstimationResult
	Underwriting *UnderwritingResult
	Screening    ScreeningResult
}
