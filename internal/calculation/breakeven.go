package calculation

import (
	"math"

	"github.com/finfreedom/fincalc/internal/domain"
)

// FindBreakEven finds the first point at which buying net worth catches up with renting.
// baselineGap is the buying-minus-renting net worth on day zero, before any year elapses;
// it anchors the interpolation for year 1. Returns nil when renting stays ahead for the
// whole projection.
func FindBreakEven(baselineGap float64, years []domain.BuyVsRentYear) *domain.BreakEven {
	if len(years) == 0 {
		return nil
	}
	if baselineGap >= 0 {
		return &domain.BreakEven{Year: years[0].Year, Fraction: 0, Month: 1}
	}

	prevGap := baselineGap
	for _, y := range years {
		gap := y.NetWorthGap()
		if gap < 0 {
			prevGap = gap
			continue
		}

		// gap(t) = prevGap + t*(gap - prevGap); solve gap(t) = 0.
		t := 1.0
		if denom := gap - prevGap; denom != 0 {
			t = -prevGap / denom
		}
		t = math.Min(math.Max(t, 0), 1)

		month := int(math.Ceil(t * 12))
		if month < 1 {
			month = 1
		}
		if month > 12 {
			month = 12
		}
		return &domain.BreakEven{Year: y.Year, Fraction: t, Month: month}
	}
	return nil
}
