package calculation

import (
	"math"
	"testing"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCompoundInterest_MatchesAnnuityFutureValue(t *testing.T) {
	in := domain.CompoundInterestInputs{
		InitialAmount:        10000,
		MonthlyContribution:  500,
		AnnualReturnPercent:  7,
		Years:                30,
		CompoundingFrequency: domain.CompoundMonthly,
	}
	r := ProjectCompoundInterest(in)

	i := 0.07 / 12
	n := 360.0
	growth := math.Pow(1+i, n)
	want := 10000*growth + 500*(growth-1)/i

	assert.InEpsilon(t, want, r.FinalNominalValue, 1e-6)
	assert.InEpsilon(t, 190000.0, r.TotalContributed, 1e-12)
	assert.InEpsilon(t, 691150.4726415668, r.FinalNominalValue, 1e-9)
	assert.Equal(t, r.FinalNominalValue, r.FinalRealValue, "no inflation means real equals nominal")
	assert.InDelta(t, r.FinalNominalValue-r.TotalContributed, r.TotalNominalInterest, 1e-9)
	assert.Zero(t, r.PurchasingPowerLossPercent)
	assert.Equal(t, 7.0, r.InflationAdjustedReturnPercent)
}

func TestProjectCompoundInterest_LumpSum(t *testing.T) {
	for _, f := range []domain.CompoundingFrequency{domain.CompoundMonthly, domain.CompoundQuarterly, domain.CompoundAnnually} {
		t.Run(string(f), func(t *testing.T) {
			in := domain.CompoundInterestInputs{
				InitialAmount:        25000,
				AnnualReturnPercent:  6,
				Years:                20,
				CompoundingFrequency: f,
			}
			r := ProjectCompoundInterest(in)

			p := f.PeriodsPerYear()
			want := 25000 * math.Pow(1+0.06/float64(p), float64(20*p))
			assert.InEpsilon(t, want, r.FinalNominalValue, 1e-12)
			assert.Equal(t, 25000.0, r.TotalContributed)
		})
	}
}

func TestProjectCompoundInterest_Frequencies(t *testing.T) {
	in := domain.CompoundInterestInputs{
		InitialAmount:       10000,
		MonthlyContribution: 500,
		AnnualReturnPercent: 7,
		Years:               30,
	}
	tests := []struct {
		freq domain.CompoundingFrequency
		want float64
	}{
		{domain.CompoundMonthly, 691150.4726415668},
		{domain.CompoundQuarterly, 681836.1284282154},
		{domain.CompoundAnnually, 642887.2683690807},
	}
	for _, tt := range tests {
		in.CompoundingFrequency = tt.freq
		r := ProjectCompoundInterest(in)
		assert.InEpsilon(t, tt.want, r.FinalNominalValue, 1e-9, "frequency %s", tt.freq)
		// Contributions are the same total whatever the period length.
		assert.InDelta(t, 190000, r.TotalContributed, 1e-9)
	}
}

func TestProjectCompoundInterest_YearlyBreakdown(t *testing.T) {
	for _, years := range []int{1, 7, 40} {
		r := ProjectCompoundInterest(domain.CompoundInterestInputs{
			InitialAmount:        1000,
			MonthlyContribution:  100,
			AnnualReturnPercent:  5,
			Years:                years,
			CompoundingFrequency: domain.CompoundQuarterly,
		})
		require.Len(t, r.YearlyBreakdown, years)
		assert.Equal(t, 1, r.YearlyBreakdown[0].Year)
		assert.Equal(t, years, r.YearlyBreakdown[years-1].Year)
		for i, y := range r.YearlyBreakdown {
			assert.Equal(t, i+1, y.Year)
			assert.InDelta(t, 1000+1200*float64(i+1), y.TotalContributed, 1e-9)
		}
		assert.Equal(t, r.FinalNominalValue, r.YearlyBreakdown[years-1].NominalValue)
	}
}

func TestProjectCompoundInterest_Inflation(t *testing.T) {
	in := domain.CompoundInterestInputs{
		InitialAmount:        10000,
		MonthlyContribution:  500,
		AnnualReturnPercent:  7,
		Years:                30,
		CompoundingFrequency: domain.CompoundMonthly,
		IncludeInflation:     true,
		InflationRatePercent: 3,
	}
	r := ProjectCompoundInterest(in)

	assert.InEpsilon(t, 691150.4726415668, r.FinalNominalValue, 1e-9)
	assert.InEpsilon(t, r.FinalNominalValue/math.Pow(1.03, 30), r.FinalRealValue, 1e-12)
	assert.InEpsilon(t, 284744.8435614862, r.FinalRealValue, 1e-9)
	assert.Equal(t, 4.0, r.InflationAdjustedReturnPercent)
	assert.InEpsilon(t, (1-1/math.Pow(1.03, 30))*100, r.PurchasingPowerLossPercent, 1e-9)
	assert.InDelta(t, r.FinalRealValue-r.TotalContributed, r.TotalRealInterest, 1e-9)

	y10 := r.YearlyBreakdown[9]
	assert.InEpsilon(t, y10.NominalValue/math.Pow(1.03, 10), y10.RealValue, 1e-12)
	assert.Less(t, y10.RealInterest, y10.NominalInterest)
}

func TestProjectCompoundInterest_ZeroReturn(t *testing.T) {
	r := ProjectCompoundInterest(domain.CompoundInterestInputs{
		InitialAmount:        1000,
		MonthlyContribution:  50,
		Years:                10,
		CompoundingFrequency: domain.CompoundAnnually,
	})
	assert.InDelta(t, 7000, r.FinalNominalValue, 1e-9)
	assert.InDelta(t, 0, r.TotalNominalInterest, 1e-9)
}
