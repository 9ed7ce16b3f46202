package underwrite

import (
	"DealScout/internal/config"
	"DealScout/internal/finance"
	"DealScout/internal/model"
)

// Underwriter computes the full financial metric set for a listing at a
// given estimated rent. It is deterministic arithmetic over its inputs and
// holds no state beyond the read-only assumptions.
type Underwriter struct {
	u *config.Underwriting
}

// New creates an Underwriter bound to the underwriting config section.
func New(u *config.Underwriting) *Underwriter {
	return &Underwriter{u: u}
}

// Underwrite computes every metric from the listing and the estimated
// monthly rent. Callers must not invoke it when rent estimation failed; the
// pipeline skips this stage for rentless listings.
//
// NOI excludes debt service but includes taxes, insurance, HOA and the
// rent-proportional reserves as operating expenses — the standard
// real-estate definition.
func (w *Underwriter) Underwrite(l *model.Listing, estRent float64) *model.UnderwritingResult {
	u := w.u
	price := l.Price

	closingCosts := price * u.PurchaseCostsPct
	rehab := u.RehabBudget
	downPayment := price * u.DownPaymentPct
	loanAmount := price - downPayment

	var pmiMonthly float64
	if u.DownPaymentPct < u.PMIAppliesUnderDPPct {
		pmiMonthly = loanAmount * u.PMIMonthlyPctOfLoan
	}

	piti := finance.MonthlyPayment(loanAmount, u.InterestRateAnnual, u.LoanTermYears)

	taxesMonthly := price * u.AnnualPropertyTaxRate / 12.0
	if l.TaxesAnnual != nil {
		taxesMonthly = *l.TaxesAnnual / 12.0
	}
	insuranceMonthly := price * u.AnnualInsuranceRate / 12.0
	hoaMonthly := u.MonthlyHOA
	if l.HOAMonthly != nil {
		hoaMonthly = *l.HOAMonthly
	}

	vacancy := estRent * u.VacancyRate
	maintenance := estRent * u.MaintenanceRate
	management := estRent * u.ManagementRate
	capex := estRent * u.CapexRate

	opEx := taxesMonthly + insuranceMonthly + hoaMonthly + vacancy + maintenance + management + capex
	debtService := piti + pmiMonthly

	noiMonthly := estRent - (vacancy + taxesMonthly + insuranceMonthly + hoaMonthly + maintenance + management + capex)
	noiAnnual := noiMonthly * 12.0

	totalCashIn := downPayment + closingCosts + rehab
	cashFlowAnnual := (estRent - (opEx + debtService)) * 12.0

	return &model.UnderwritingResult{
		ClosingCosts:     closingCosts,
		Rehab:            rehab,
		DownPayment:      downPayment,
		LoanAmount:       loanAmount,
		PMIMonthly:       pmiMonthly,
		PITIMonthly:      piti,
		TaxesMonthly:     taxesMonthly,
		InsuranceMonthly: insuranceMonthly,
		HOAMonthly:       hoaMonthly,
		Vacancy:          vacancy,
		Maintenance:      maintenance,
		Management:       management,
		Capex:            capex,
		OpExMonthly:      opEx,
		NOIMonthly:       noiMonthly,
		NOIAnnual:        noiAnnual,
		CashFlowAnnual:   cashFlowAnnual,
		TotalCashIn:      totalCashIn,

		CapRate:    finance.Ratio(noiAnnual, price),
		CashOnCash: finance.Ratio(cashFlowAnnual, totalCashIn),
		DSCR:       finance.Ratio(noiMonthly, debtService),
	}
}
