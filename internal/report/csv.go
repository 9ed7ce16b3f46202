package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"DealScout/internal/model"
)

// resultColumns is the output contract, in order.
var resultColumns = []string{
	"address", "city", "state", "price", "beds", "baths", "sqft",
	"property_type", "est_rent", "rent_method", "rent_confidence",
	"cap_rate", "cash_on_cash", "dscr", "annual_noi", "annual_cash_flow",
	"total_cash_in", "in_buy_box", "meets_targets", "manual_check",
	"manual_reasons",
}

// WriteCSV writes the ranked evaluations to path, one row per listing.
// Intermediate directories are created automatically. Unknown values are
// written as empty cells, never as zeros.
func WriteCSV(path string, evals []*model.Evaluation) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultColumns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, e := range evals {
		if err := w.Write(resultRow(e)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func resultRow(e *model.Evaluation) []string {
	l := e.Listing
	uw := e.Underwriting
	s := e.Screening

	row := []string{
		l.Address,
		l.City,
		l.State,
		strconv.FormatFloat(l.Price, 'f', -1, 64),
		intCell(l.Beds),
		floatCell(l.Baths),
		intCell(l.Sqft),
		l.PropertyType,
		roundCell(e.Estimate.Rent, 0),
		e.Estimate.Method,
		strconv.FormatFloat(e.Estimate.Confidence, 'f', 2, 64),
	}

	if uw != nil {
		row = append(row,
			roundCell(uw.CapRate, 4),
			roundCell(uw.CashOnCash, 4),
			roundCell(uw.DSCR, 3),
			roundCell(&uw.NOIAnnual, 0),
			roundCell(&uw.CashFlowAnnual, 0),
			roundCell(&uw.TotalCashIn, 0),
		)
	} else {
		row = append(row, "", "", "", "", "", "")
	}

	row = append(row,
		strconv.FormatBool(s.InBuyBox),
		strconv.FormatBool(s.MeetsTargets),
		strconv.FormatBool(s.ManualCheck),
		strings.Join(s.Reasons, "; "),
	)
	return row
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// roundCell renders v rounded to the given number of decimals, or an empty
// cell for unknown values.
func roundCell(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	scale := math.Pow(10, float64(decimals))
	return strconv.FormatFloat(math.Round(*v*scale)/scale, 'f', -1, 64)
}
