package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"DealScout/internal/model"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	run := &Run{
		ID:           uuid.NewString(),
		StartedAt:    time.Now(),
		InputPath:    "listings.csv",
		ListingCount: 2,
	}
	evals := []*model.Evaluation{
		{
			Listing:  &model.Listing{Address: "12 Oak St", City: "Cleveland", State: "OH", Price: 180000},
			Estimate: model.EstimationResult{Rent: model.Float(1800), Confidence: 0.6, Method: model.MethodRuleOfThumb},
			Underwriting: &model.UnderwritingResult{
				CapRate: model.Float(0.06), CashOnCash: model.Float(0.08), DSCR: model.Float(1.2),
			},
			Screening: model.ScreeningResult{InBuyBox: true, Reasons: []string{"low rent confidence (0.60)"}},
		},
		{
			// Rentless listing: NULLs all the way through the metrics.
			Listing:   &model.Listing{Address: "1 Nowhere Rd"},
			Estimate:  model.EstimationResult{Method: model.MethodNone},
			Screening: model.ScreeningResult{ManualCheck: true},
		},
	}

	if err := r.RecordRun(run, evals); err != nil {
		t.Fatalf("record run: %v", err)
	}

	var runs, rows int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if err := r.db.QueryRow("SELECT COUNT(*) FROM evaluations WHERE run_id = ?", run.ID).Scan(&rows); err != nil {
		t.Fatalf("count evaluations: %v", err)
	}
	if runs != 1 || rows != 2 {
		t.Errorf("expected 1 run and 2 evaluations, got %d and %d", runs, rows)
	}

	var capRate *float64
	if err := r.db.QueryRow("SELECT cap_rate FROM evaluations WHERE address = ?", "1 Nowhere Rd").Scan(&capRate); err != nil {
		t.Fatalf("select cap_rate: %v", err)
	}
	if capRate != nil {
		t.Errorf("rentless listing should store NULL cap_rate, got %v", *capRate)
	}
}
