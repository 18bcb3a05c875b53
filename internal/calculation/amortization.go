package calculation

import "math"

const monthsPerYear = 12

// MonthlyPayment returns the fixed monthly payment that fully amortizes principal over
// termYears at annualRatePercent, using M = P·r·(1+r)^n / ((1+r)^n − 1) with r the monthly
// rate. A zero rate degenerates to straight-line repayment, M = P/n.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	n := float64(termYears * monthsPerYear)
	if n <= 0 {
		return 0
	}
	r := annualRatePercent / 100 / monthsPerYear
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// RemainingBalance returns the scheduled principal still owed after monthsPaid payments.
func RemainingBalance(principal, annualRatePercent float64, termYears, monthsPaid int) float64 {
	n := termYears * monthsPerYear
	if monthsPaid <= 0 {
		return principal
	}
	if monthsPaid >= n {
		return 0
	}
	payment := MonthlyPayment(principal, annualRatePercent, termYears)
	r := annualRatePercent / 100 / monthsPerYear
	if r == 0 {
		return principal - payment*float64(monthsPaid)
	}
	growth := math.Pow(1+r, float64(monthsPaid))
	balance := principal*growth - payment*(growth-1)/r
	if balance < 0 {
		return 0
	}
	return balance
}

// AmortizationYear splits one year of scheduled payments into principal and interest.
type AmortizationYear struct {
	Year          int     `json:"year"`
	Payments      float64 `json:"payments"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	EndingBalance float64 `json:"ending_balance"`
}

// Schedule returns the yearly amortization of a fixed-rate loan.
func Schedule(principal, annualRatePercent float64, termYears int) []AmortizationYear {
	if termYears <= 0 {
		return nil
	}
	yearly := MonthlyPayment(principal, annualRatePercent, termYears) * monthsPerYear
	schedule := make([]AmortizationYear, 0, termYears)
	start := principal
	for y := 1; y <= termYears; y++ {
		end := RemainingBalance(principal, annualRatePercent, termYears, y*monthsPerYear)
		paid := start - end
		schedule = append(schedule, AmortizationYear{
			Year:          y,
			Payments:      yearly,
			Principal:     paid,
			Interest:      yearly - paid,
			EndingBalance: end,
		})
		start = end
	}
	return schedule
}
