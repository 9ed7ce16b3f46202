package finance

import "math"

// MonthlyPayment computes the fixed-rate amortized monthly payment for a
// loan. annualRate is a decimal (0.07 = 7%). years must be positive; the
// config layer validates that before any underwriting runs.
//
// With a zero rate the schedule degenerates to straight-line repayment.
func MonthlyPayment(principal, annualRate float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	r := annualRate / 12.0
	n := float64(years * 12)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * (r * growth) / (growth - 1)
}

// Ratio returns num/denom, or nil when denom is not strictly positive.
// Unknown ratios stay unknown; they never become Inf or NaN.
func Ratio(num, denom float64) *float64 {
	if denom <= 0 {
		return nil
	}
	v := num / denom
	return &v
}
