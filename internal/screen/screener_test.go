package screen

import (
	"strings"
	"testing"

	"DealScout/internal/config"
	"DealScout/internal/model"
)

func testScreener() *Screener {
	return New(
		&config.BuyBox{
			Markets:       []string{"Cleveland, OH", "Toledo, OH"},
			MaxPrice:      250000,
			MinBeds:       3,
			MinSqft:       1000,
			MinLotSqft:    4000,
			MaxYearBuilt:  1980,
			PropertyTypes: []string{"single_family", "duplex"},
		},
		&config.ManualCheckRules{
			NearCapTargetBps:        50,
			NearCoCTargetBps:        100,
			RentConfidenceThreshold: 0.5,
		},
		&config.Targets{
			MinCapRate:    0.06,
			MinCashOnCash: 0.08,
			MinDSCR:       1.2,
		},
	)
}

func inBoxListing() *model.Listing {
	return &model.Listing{
		Address:      "12 Oak St",
		City:         "Cleveland",
		State:        "OH",
		Price:        180000,
		Beds:         model.Int(3),
		Sqft:         model.Int(1400),
		LotSqft:      model.Int(5000),
		YearBuilt:    model.Int(1955),
		PropertyType: "single_family",
	}
}

func TestInBuyBox_Accepts(t *testing.T) {
	if !testScreener().InBuyBox(inBoxListing()) {
		t.Error("listing satisfying every criterion should pass")
	}
}

func TestInBuyBox_PriceCeilingAlwaysApplies(t *testing.T) {
	l := inBoxListing()
	l.Price = 250001
	if testScreener().InBuyBox(l) {
		t.Error("price above max_price must fail regardless of other fields")
	}
}

func TestInBuyBox_MarketMatchIsCaseInsensitive(t *testing.T) {
	l := inBoxListing()
	l.City, l.State = "CLEVELAND", "oh"
	if !testScreener().InBuyBox(l) {
		t.Error("market match should ignore case")
	}

	l.City = "Columbus"
	if testScreener().InBuyBox(l) {
		t.Error("listing outside configured markets should fail")
	}
}

func TestInBuyBox_MissingNumericFieldsFailFloors(t *testing.T) {
	tests := []struct {
		name  string
		strip func(l *model.Listing)
	}{
		{"beds", func(l *model.Listing) { l.Beds = nil }},
		{"sqft", func(l *model.Listing) { l.Sqft = nil }},
		{"lot_sqft", func(l *model.Listing) { l.LotSqft = nil }},
	}
	for _, tt := range tests {
		l := inBoxListing()
		tt.strip(l)
		if testScreener().InBuyBox(l) {
			t.Errorf("missing %s cannot satisfy its minimum and should fail", tt.name)
		}
	}
}

func TestInBuyBox_MissingYearBuiltPassesCeiling(t *testing.T) {
	l := inBoxListing()
	l.YearBuilt = nil
	if !testScreener().InBuyBox(l) {
		t.Error("unknown year_built should not be excluded by max_year_built")
	}

	l.YearBuilt = model.Int(1995)
	if testScreener().InBuyBox(l) {
		t.Error("year_built above the ceiling should fail")
	}
}

func TestInBuyBox_UnknownPropertyTypePasses(t *testing.T) {
	l := inBoxListing()
	l.PropertyType = ""
	if !testScreener().InBuyBox(l) {
		t.Error("unknown property type should not fail the type filter")
	}

	l.PropertyType = "condo"
	if testScreener().InBuyBox(l) {
		t.Error("disallowed property type should fail")
	}
}

func TestInBuyBox_UnconfiguredCriteriaPass(t *testing.T) {
	s := New(&config.BuyBox{MaxPrice: 250000},
		&config.ManualCheckRules{}, &config.Targets{})
	l := &model.Listing{City: "Anywhere", State: "ZZ", Price: 100000}
	if !s.InBuyBox(l) {
		t.Error("with only max_price configured, any cheaper listing should pass")
	}
}

func TestNeedsManualCheck_NearTargetBandsAreSymmetric(t *testing.T) {
	s := testScreener()
	l := inBoxListing()

	// Band is 50bps around a 6% cap target: both 5.8% and 6.3% flag.
	for _, cap := range []float64{0.058, 0.063} {
		uw := &model.UnderwritingResult{CapRate: model.Float(cap), CashOnCash: model.Float(0.15)}
		flag, reasons := s.NeedsManualCheck(uw, 0.9, l)
		if !flag {
			t.Errorf("cap %.3f inside the band should flag", cap)
		}
		if len(reasons) != 1 || !strings.HasPrefix(reasons[0], "cap near target") {
			t.Errorf("expected a single cap reason, got %v", reasons)
		}
	}

	// Comfortably above: no flag.
	uw := &model.UnderwritingResult{CapRate: model.Float(0.09), CashOnCash: model.Float(0.15)}
	if flag, _ := s.NeedsManualCheck(uw, 0.9, l); flag {
		t.Error("cap well clear of the band should not flag")
	}
}

func TestNeedsManualCheck_ReasonOrderIsFixed(t *testing.T) {
	s := testScreener()
	l := inBoxListing()
	l.Sqft = nil // trips the missing-fields check

	uw := &model.UnderwritingResult{
		CapRate:    model.Float(0.061),
		CashOnCash: model.Float(0.085),
	}
	flag, reasons := s.NeedsManualCheck(uw, 0.45, l)
	if !flag {
		t.Fatal("expected manual check")
	}
	if len(reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %d: %v", len(reasons), reasons)
	}
	wantPrefix := []string{"cap near target", "CoC near target", "low rent confidence", "missing key fields"}
	for i, p := range wantPrefix {
		if !strings.HasPrefix(reasons[i], p) {
			t.Errorf("reason %d: expected prefix %q, got %q", i, p, reasons[i])
		}
	}
}

func TestNeedsManualCheck_MissingFieldsTrigger(t *testing.T) {
	s := testScreener()
	l := inBoxListing()
	l.Sqft, l.YearBuilt, l.LotSqft = nil, nil, nil

	flag, reasons := s.NeedsManualCheck(nil, 0.9, l)
	if !flag {
		t.Fatal("missing critical fields should flag")
	}
	if len(reasons) != 1 || reasons[0] != "missing key fields (sqft/year/lot)" {
		t.Errorf("unexpected reasons: %v", reasons)
	}

	// Disabled trigger suppresses the reason.
	off := false
	s.rules.MissingFieldsTrigger = &off
	if flag, _ := s.NeedsManualCheck(nil, 0.9, l); flag {
		t.Error("disabled missing_fields_trigger should not flag")
	}
}

func TestNeedsManualCheck_SkippedUnderwriting(t *testing.T) {
	s := testScreener()
	l := inBoxListing()

	// Rent estimation failed: no underwriting, confidence 0.
	flag, reasons := s.NeedsManualCheck(nil, 0.0, l)
	if !flag {
		t.Fatal("confidence 0 should flag")
	}
	if len(reasons) != 1 || !strings.HasPrefix(reasons[0], "low rent confidence") {
		t.Errorf("expected only the confidence reason, got %v", reasons)
	}
}

func TestMeetsTargets(t *testing.T) {
	s := testScreener()

	good := &model.UnderwritingResult{
		CapRate:    model.Float(0.07),
		CashOnCash: model.Float(0.10),
		DSCR:       model.Float(1.3),
	}
	if !s.MeetsTargets(good) {
		t.Error("all metrics above floors should meet targets")
	}

	// Any unknown metric fails.
	unknownDSCR := &model.UnderwritingResult{
		CapRate:    model.Float(0.07),
		CashOnCash: model.Float(0.10),
	}
	if s.MeetsTargets(unknownDSCR) {
		t.Error("unknown dscr must fail targets")
	}

	if s.MeetsTargets(nil) {
		t.Error("skipped underwriting must fail targets")
	}

	belowFloor := &model.UnderwritingResult{
		CapRate:    model.Float(0.05),
		CashOnCash: model.Float(0.10),
		DSCR:       model.Float(1.3),
	}
	if s.MeetsTargets(belowFloor) {
		t.Error("cap below floor must fail targets")
	}
}
