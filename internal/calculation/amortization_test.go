package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		want      float64
	}{
		{"30y at 6.5%", 320000, 6.5, 30, 2022.6176751774892},
		{"zero rate", 320000, 0, 30, 320000.0 / 360},
		{"zero principal", 0, 6.5, 15, 0},
		{"zero term", 100000, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MonthlyPayment(tt.principal, tt.rate, tt.term), 1e-6)
		})
	}
}

func TestMonthlyPayment_ZeroRateIsExact(t *testing.T) {
	got := MonthlyPayment(180000, 0, 15)
	assert.Equal(t, 1000.0, got)
	assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
}

// Discounting n equal payments at the monthly rate must give back the principal.
func TestMonthlyPayment_DiscountsToPrincipal(t *testing.T) {
	for _, c := range []struct {
		principal float64
		rate      float64
		term      int
	}{
		{250000, 3.25, 15},
		{320000, 6.5, 30},
		{50000, 12, 20},
	} {
		m := MonthlyPayment(c.principal, c.rate, c.term)
		r := c.rate / 100 / 12
		var pv float64
		for k := 1; k <= c.term*12; k++ {
			pv += m / math.Pow(1+r, float64(k))
		}
		assert.InEpsilon(t, c.principal, pv, 1e-9)
	}
}

func TestRemainingBalance(t *testing.T) {
	assert.Equal(t, 320000.0, RemainingBalance(320000, 6.5, 30, 0))
	assert.Equal(t, 0.0, RemainingBalance(320000, 6.5, 30, 360))
	assert.InDelta(t, 160000, RemainingBalance(320000, 0, 30, 180), 1e-6)

	prev := 320000.0
	for m := 12; m < 360; m += 12 {
		b := RemainingBalance(320000, 6.5, 30, m)
		assert.Less(t, b, prev, "balance must decline, month %d", m)
		prev = b
	}
}

func TestSchedule(t *testing.T) {
	sched := Schedule(320000, 6.5, 30)
	require.Len(t, sched, 30)

	var principal, interest float64
	for i, y := range sched {
		assert.Equal(t, i+1, y.Year)
		assert.InDelta(t, y.Payments, y.Principal+y.Interest, 1e-6)
		principal += y.Principal
		interest += y.Interest
	}
	assert.InDelta(t, 320000, principal, 1e-6)
	assert.InDelta(t, 0, sched[29].EndingBalance, 1e-9)
	// Early years are interest-heavy.
	assert.Greater(t, sched[0].Interest, sched[0].Principal)
	assert.Greater(t, sched[29].Principal, sched[29].Interest)
	assert.InDelta(t, 408142.36306389637, interest, 1e-4)

	assert.Nil(t, Schedule(1000, 5, 0))
}
