package pipeline

import (
	"sort"

	"DealScout/internal/config"
	"DealScout/internal/model"
	"DealScout/internal/rent"
	"DealScout/internal/screen"
	"DealScout/internal/underwrite"
)

// Pipeline runs the full evaluation for a batch of listings: rent estimate,
// underwriting, screening, then ranking. Listings are independent of each
// other; the only shared state is the read-only configuration.
type Pipeline struct {
	cfg         *config.Config
	estimator   *rent.Estimator
	underwriter *underwrite.Underwriter
	screener    *screen.Screener
}

// New builds a Pipeline from a validated configuration.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		estimator:   rent.NewEstimator(&cfg.RentEstimation),
		underwriter: underwrite.New(&cfg.Underwriting),
		screener:    screen.New(&cfg.BuyBox, &cfg.ManualCheckRules, &cfg.Targets),
	}
}

// EvaluateListing runs one listing through the three stages. When rent
// estimation fails entirely, underwriting is skipped: the metrics stay
// unknown, meets_targets is false, and the manual check still runs with
// confidence 0.
func (p *Pipeline) EvaluateListing(l *model.Listing) *model.Evaluation {
	est := p.estimator.Estimate(l)

	var uw *model.UnderwritingResult
	if est.Rent != nil {
		uw = p.underwriter.Underwrite(l, *est.Rent)
	}

	manual, reasons := p.screener.NeedsManualCheck(uw, est.Confidence, l)

	return &model.Evaluation{
		Listing:      l,
		Estimate:     est,
		Underwriting: uw,
		Screening: model.ScreeningResult{
			InBuyBox:     p.screener.InBuyBox(l),
			MeetsTargets: p.screener.MeetsTargets(uw),
			ManualCheck:  manual,
			Reasons:      reasons,
		},
	}
}

// Run evaluates every listing and returns the full ranked result set.
// Results are written to an index-addressed slice, so worker count never
// changes the pre-rank order and ties rank identically on every run.
func (p *Pipeline) Run(listings []*model.Listing) []*model.Evaluation {
	evals := make([]*model.Evaluation, len(listings))

	if p.cfg.Outputs.Workers <= 1 {
		for i, l := range listings {
			evals[i] = p.EvaluateListing(l)
		}
	} else {
		pool := newWorkerPool(p.cfg.Outputs.Workers)
		for i, l := range listings {
			i, l := i, l
			pool.Submit(func() {
				evals[i] = p.EvaluateListing(l)
			})
		}
		pool.Wait()
	}

	Rank(evals)
	return evals
}

// Rank orders evaluations in place: target-meeters first, then cap rate
// descending, then cash-on-cash descending. Unknown ratios sort as zero.
// Equal keys preserve input order.
func Rank(evals []*model.Evaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		a, b := evals[i], evals[j]
		if a.Screening.MeetsTargets != b.Screening.MeetsTargets {
			return a.Screening.MeetsTargets
		}
		if ca, cb := rankValue(capOf(a)), rankValue(capOf(b)); ca != cb {
			return ca > cb
		}
		return rankValue(cocOf(a)) > rankValue(cocOf(b))
	})
}

// Top returns the first n evaluations, or all of them when fewer exist.
func Top(evals []*model.Evaluation, n int) []*model.Evaluation {
	if n < len(evals) {
		return evals[:n]
	}
	return evals
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

func rankValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
