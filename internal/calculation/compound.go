package calculation

import (
	"math"

	"github.com/finfreedom/fincalc/internal/domain"
)

// ProjectCompoundInterest grows an initial lump sum plus monthly contributions at the
// chosen compounding frequency. Each period credits interest first, then the
// contribution. When inflation is enabled, real values are nominal values deflated by
// cumulative inflation at each year boundary.
//
// The reported inflation-adjusted return is the simple Fisher approximation
// (nominal − inflation), not the exact compound relation.
func ProjectCompoundInterest(in domain.CompoundInterestInputs) domain.CompoundInterestResult {
	periodsPerYear := in.CompoundingFrequency.PeriodsPerYear()
	ratePerPeriod := in.AnnualReturnPercent / 100 / float64(periodsPerYear)
	contributionPerPeriod := in.MonthlyContribution * float64(in.CompoundingFrequency.MonthsPerPeriod())
	inflation := in.InflationRatePercent / 100

	years := in.Years
	if years < 0 {
		years = 0
	}
	totalPeriods := years * periodsPerYear

	deflate := func(nominal float64, year int) float64 {
		if !in.IncludeInflation {
			return nominal
		}
		return nominal / math.Pow(1+inflation, float64(year))
	}

	nominal := in.InitialAmount
	contributed := in.InitialAmount
	breakdown := make([]domain.YearlyBreakdown, 0, years)

	for period := 1; period <= totalPeriods; period++ {
		nominal *= 1 + ratePerPeriod
		nominal += contributionPerPeriod
		contributed += contributionPerPeriod

		if period%periodsPerYear != 0 {
			continue
		}
		year := period / periodsPerYear
		realValue := deflate(nominal, year)
		breakdown = append(breakdown, domain.YearlyBreakdown{
			Year:             year,
			TotalContributed: contributed,
			NominalValue:     nominal,
			RealValue:        realValue,
			NominalInterest:  nominal - contributed,
			RealInterest:     realValue - contributed,
		})
	}

	finalReal := deflate(nominal, years)
	result := domain.CompoundInterestResult{
		TotalContributed:               contributed,
		FinalNominalValue:              nominal,
		FinalRealValue:                 finalReal,
		TotalNominalInterest:           nominal - contributed,
		TotalRealInterest:              finalReal - contributed,
		InflationAdjustedReturnPercent: in.AnnualReturnPercent,
		YearlyBreakdown:                breakdown,
	}
	if in.IncludeInflation {
		result.InflationAdjustedReturnPercent = in.AnnualReturnPercent - in.InflationRatePercent
		if nominal != 0 {
			result.PurchasingPowerLossPercent = (nominal - finalReal) / nominal * 100
		}
	}
	return result
}
