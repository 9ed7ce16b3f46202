package screen

import (
	"fmt"
	"math"
	"strings"

	"DealScout/internal/config"
	"DealScout/internal/model"
)

// Screener applies the hard buy-box gate and the soft manual-review
// heuristics.
type Screener struct {
	buyBox  *config.BuyBox
	rules   *config.ManualCheckRules
	targets *config.Targets
}

// New creates a Screener from the relevant config sections.
func New(buyBox *config.BuyBox, rules *config.ManualCheckRules, targets *config.Targets) *Screener {
	return &Screener{buyBox: buyBox, rules: rules, targets: targets}
}

// InBuyBox reports whether the listing clears every configured hard
// criterion. Checks run in a fixed order and short-circuit on the first
// failure. Unconfigured criteria pass. Missing numeric fields fail the
// minimum checks (missing data cannot satisfy a floor); max_year_built is a
// ceiling and lets an unknown year through on purpose, so incomplete
// listings are not punished for an upper bound.
func (s *Screener) InBuyBox(l *model.Listing) bool {
	bb := s.buyBox

	if len(bb.Markets) > 0 {
		cityState := strings.ToLower(strings.TrimSpace(l.City + ", " + l.State))
		found := false
		for _, m := range bb.Markets {
			if strings.ToLower(m) == cityState {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if l.Price > bb.MaxPrice {
		return false
	}
	if bb.MinBeds > 0 && (l.Beds == nil || *l.Beds < bb.MinBeds) {
		return false
	}
	if bb.MinSqft > 0 && (l.Sqft == nil || *l.Sqft < bb.MinSqft) {
		return false
	}
	if bb.MinLotSqft > 0 && (l.LotSqft == nil || *l.LotSqft < bb.MinLotSqft) {
		return false
	}
	if bb.MaxYearBuilt > 0 && l.YearBuilt != nil && *l.YearBuilt > bb.MaxYearBuilt {
		return false
	}
	if len(bb.PropertyTypes) > 0 && l.PropertyType != "" {
		found := false
		for _, pt := range bb.PropertyTypes {
			if pt == l.PropertyType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NeedsManualCheck accumulates human-readable reasons a listing deserves a
// second look. Reason order is fixed: cap-rate band, CoC band, low rent
// confidence, missing fields. The flag is true iff any reason fired.
//
// The near-target bands are symmetric: a deal sitting just above the floor
// is flagged the same as one just below it. uw may be nil when underwriting
// was skipped; the band checks then have nothing to compare and pass.
func (s *Screener) NeedsManualCheck(uw *model.UnderwritingResult, rentConf float64, l *model.Listing) (bool, []string) {
	var reasons []string

	nearCap := s.rules.NearCapTargetBps / 10000.0
	nearCoC := s.rules.NearCoCTargetBps / 10000.0

	if uw != nil && uw.CapRate != nil && math.Abs(*uw.CapRate-s.targets.MinCapRate) <= nearCap {
		reasons = append(reasons, fmt.Sprintf("cap near target (%.2f%% ~ %.2f%%)",
			*uw.CapRate*100, s.targets.MinCapRate*100))
	}
	if uw != nil && uw.CashOnCash != nil && math.Abs(*uw.CashOnCash-s.targets.MinCashOnCash) <= nearCoC {
		reasons = append(reasons, fmt.Sprintf("CoC near target (%.2f%% ~ %.2f%%)",
			*uw.CashOnCash*100, s.targets.MinCashOnCash*100))
	}
	if rentConf < s.rules.RentConfidenceThreshold {
		reasons = append(reasons, fmt.Sprintf("low rent confidence (%.2f)", rentConf))
	}
	if s.rules.MissingFieldsEnabled() {
		if l.Sqft == nil || l.YearBuilt == nil || l.LotSqft == nil {
			reasons = append(reasons, "missing key fields (sqft/year/lot)")
		}
	}

	return len(reasons) > 0, reasons
}

// MeetsTargets reports whether every metric is known and clears its floor.
// An unknown metric always fails; uw may be nil when underwriting was
// skipped.
func (s *Screener) MeetsTargets(uw *model.UnderwritingResult) bool {
	if uw == nil {
		return false
	}
	return uw.CapRate != nil && *uw.CapRate >= s.targets.MinCapRate &&
		uw.CashOnCash != nil && *uw.CashOnCash >= s.targets.MinCashOnCash &&
		uw.DSCR != nil && *uw.DSCR >= s.targets.MinDSCR
}
