package rent

import (
	"fmt"
	"strings"

	"DealScout/internal/config"
	"DealScout/internal/model"
)

// Confidence attached to each strategy's result.
const (
	confManualOverride = 0.9
	confRuleOfThumb    = 0.6
	confRentToPrice    = 0.45
)

// Estimator produces a rent estimate for a listing by walking the configured
// strategy chain in order and returning the first hit. Later strategies are
// never consulted once one succeeds; in particular, rent_to_price succeeds
// for every listing with a known price, which makes it a last-resort
// catch-all when placed at the end of the order.
type Estimator struct {
	cfg *config.RentEstimation
}

// NewEstimator creates an Estimator bound to the rent_estimation config
// section.
func NewEstimator(cfg *config.RentEstimation) *Estimator {
	return &Estimator{cfg: cfg}
}

// Estimate walks the strategy order and returns the first successful result.
// When every strategy falls through, the result carries a nil rent,
// confidence 0 and the "none" method tag.
func (e *Estimator) Estimate(l *model.Listing) model.EstimationResult {
	for _, method := range e.cfg.StrategyOrder {
		switch method {
		case "manual_override":
			if r, ok := e.manualOverride(l); ok {
				return r
			}
		case "rule_of_thumb":
			if r, ok := e.ruleOfThumb(l); ok {
				return r
			}
		case "rent_to_price":
			if r, ok := e.rentToPrice(l); ok {
				return r
			}
		}
	}
	return model.EstimationResult{Rent: nil, Confidence: 0.0, Method: model.MethodNone}
}

// manualOverride matches the listing's trimmed address against the override
// table. An empty address simply fails to match.
func (e *Estimator) manualOverride(l *model.Listing) (model.EstimationResult, bool) {
	addr := strings.TrimSpace(l.Address)
	rent, ok := e.cfg.ManualOverrides[addr]
	if !ok {
		return model.EstimationResult{}, false
	}
	return model.EstimationResult{
		Rent:       model.Float(rent),
		Confidence: confManualOverride,
		Method:     model.MethodManualOverride,
	}, true
}

// ruleOfThumb looks up a per-bed-count rent table. The table is keyed by the
// bed count rendered as a string, matching the config file shape.
func (e *Estimator) ruleOfThumb(l *model.Listing) (model.EstimationResult, bool) {
	if l.Beds == nil {
		return model.EstimationResult{}, false
	}
	rent, ok := e.cfg.RuleOfThumbPerBed[fmt.Sprintf("%d", *l.Beds)]
	if !ok {
		return model.EstimationResult{}, false
	}
	return model.EstimationResult{
		Rent:       model.Float(rent),
		Confidence: confRuleOfThumb,
		Method:     model.MethodRuleOfThumb,
	}, true
}

func (e *Estimator) rentToPrice(l *model.Listing) (model.EstimationResult, bool) {
	if l.Price == 0 {
		return model.EstimationResult{}, false
	}
	return model.EstimationResult{
		Rent:       model.Float(l.Price * e.cfg.RentToPriceRatio),
		Confidence: confRentToPrice,
		Method:     model.MethodRentToPrice,
	}, true
}
