package recorder

import (
	"time"

	"DealScout/internal/model"
)

// Run identifies one evaluation batch. Recording is write-only history:
// nothing is read back between runs.
type Run struct {
	ID           string
	StartedAt    time.Time
	InputPath    string
	ListingCount int
}

// Recorder persists evaluation history for later analysis.
type Recorder interface {
	RecordRun(run *Run, evals []*model.Evaluation) error
	Close() error
}

// Unknown ratio and rent fields are stored as SQL NULLs.
func capOf(e *model.Evaluation) *float64 {
	if e.Underwriting == nil {
		return nil
	}
	return e.Underwriting.CapRate
}

func cocOf(e *model.Evaluation) *float64 {
	if e.Underwriting == nil {
		return nil
	}
	return e.Underwriting.CashOnCash
}

func dscrOf(e *model.Evaluation) *float64 {
	if e.Underwriting == nil {
		return nil
	}
	return e.Underwriting.DSCR
}

func noiOf(e *model.Evaluation) *float64 {
	if e.Underwriting == nil {
		return nil
	}
	return &e.Underwriting.NOIAnnual
}

func cashFlowOf(e *model.Evaluation) *float64 {
	if e.Underwriting == nil {
		return nil
	}
	return &e.Underwriting.CashFlowAnnual
}

func cashInOf(e *model.Evaluation) *float64 {
	if e.Underwriting == nil {
		return nil
	}
	return &e.Underwriting.TotalCashIn
}
