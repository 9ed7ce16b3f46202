package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"DealScout/internal/model"
)

// WriteTable renders a console summary of the top candidates, one line per
// listing with the headline metrics.
func WriteTable(w io.Writer, evals []*model.Evaluation) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ADDRESS\tMARKET\tPRICE\tBEDS\tSQFT\tEST RENT\tCAP\tCOC\tDSCR\tBUY BOX\tTARGETS\tMANUAL")
	for _, e := range evals {
		l := e.Listing
		fmt.Fprintf(tw, "%s\t%s, %s\t$%s\t%s\t%s\t%s\t%s\t%s\t%s\t%v\t%v\t%v\n",
			l.Address, l.City, l.State,
			humanize.CommafWithDigits(l.Price, 0),
			tableInt(l.Beds),
			tableInt(l.Sqft),
			tableMoney(e.Estimate.Rent),
			tablePct(capOf(e)),
			tablePct(cocOf(e)),
			tableRatio(dscrOf(e)),
			e.Screening.InBuyBox,
			e.Screening.MeetsTargets,
			e.Screening.ManualCheck,
		)
	}
	tw.Flush()
}

// Summary returns a one-line batch digest for logging.
func Summary(evals []*model.Evaluation) string {
	var inBox, meets, manual int
	for _, e := range evals {
		if e.Screening.InBuyBox {
			inBox++
		}
		if e.Screening.MeetsTargets {
			meets++
		}
		if e.Screening.ManualCheck {
			manual++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d listings evaluated: %d in buy box, %d meet targets, %d flagged for review",
		len(evals), inBox, meets, manual)
	return b.String()
}

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

func tableInt(v *int) string {
	if v == nil {
		return "-"
	}
	return humanize.Comma(int64(*v))
}

func tableMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return "$" + humanize.CommafWithDigits(*v, 0)
}

func tablePct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func tableRatio(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
