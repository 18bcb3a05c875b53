package output

import (
	"fmt"
	"time"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/pkg/dateutil"
)

// Leader names the scenario with the best headline figure for one calculator.
type Leader struct {
	ScenarioName string
	Value        float64
	// Recommendation is set for buy vs rent leaders.
	Recommendation domain.Recommendation
}

// Highlights collects the per-calculator leaders of a comparison. Either may be nil.
type Highlights struct {
	BuyVsRent        *Leader
	CompoundInterest *Leader
}

// AnalyzeScenarios picks the buy vs rent scenario with the highest winning net worth and
// the growth scenario with the highest inflation-adjusted final value. Ties keep the
// earlier scenario.
func AnalyzeScenarios(results *domain.ScenarioComparison) Highlights {
	var h Highlights
	for _, sc := range results.Scenarios {
		switch {
		case sc.BuyVsRent != nil:
			r := sc.BuyVsRent
			value := r.RentingNetWorth
			if r.Recommendation == domain.RecommendBuy {
				value = r.BuyingNetWorth
			}
			if h.BuyVsRent == nil || value > h.BuyVsRent.Value {
				h.BuyVsRent = &Leader{ScenarioName: sc.Name, Value: value, Recommendation: r.Recommendation}
			}
		case sc.CompoundInterest != nil:
			value := sc.CompoundInterest.FinalRealValue
			if h.CompoundInterest == nil || value > h.CompoundInterest.Value {
				h.CompoundInterest = &Leader{ScenarioName: sc.Name, Value: value}
			}
		}
	}
	return h
}

// breakEvenLabel describes when buying overtakes renting.
func breakEvenLabel(be *domain.BreakEven) string {
	if be == nil {
		return "never within horizon"
	}
	return "year " + intToString(be.Year) + ", month " + intToString(be.Month)
}

// breakEvenDate is the first day of the month in which buying catches up, for a
// projection starting in the month of asOf.
func breakEvenDate(asOf time.Time, be *domain.BreakEven) time.Time {
	return dateutil.BeginningOfMonth(asOf).AddDate(be.Year-1, be.Month-1, 0)
}

// calendarLabel describes the break-even month on the calendar, or "" when there is none.
func calendarLabel(asOf time.Time, be *domain.BreakEven) string {
	if be == nil || asOf.IsZero() {
		return ""
	}
	when := breakEvenDate(asOf, be)
	return fmt.Sprintf("%s (%d months out)", when.Format("January 2006"), dateutil.MonthsBetween(dateutil.BeginningOfMonth(asOf), when))
}
