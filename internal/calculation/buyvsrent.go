package calculation

import (
	"math"

	"github.com/finfreedom/fincalc/internal/domain"
)

// AssessedValueGrowthRate is the annual growth of the taxable (assessed) home value.
// It is fixed and deliberately independent of market appreciation.
const AssessedValueGrowthRate = 0.02

// pmiEquityThreshold is the equity share of the purchase price at which PMI stops.
const pmiEquityThreshold = 0.20

// ProjectBuyVsRent simulates owning versus renting-and-investing year by year over the
// loan term and compares the final net worth of both scenarios.
//
// The caller must pass validated inputs; nothing here rejects values.
func ProjectBuyVsRent(in domain.BuyVsRentInputs) domain.BuyVsRentResult {
	years := in.LoanTermYears
	if years < 0 {
		years = 0
	}

	downPayment := in.DownPayment()
	loan := in.LoanAmount()
	closingBuy := in.ClosingCostsBuying()
	monthlyPayment := MonthlyPayment(loan, in.MortgageRatePercent, years)
	yearlyMortgage := monthlyPayment * monthsPerYear
	totalScheduled := yearlyMortgage * float64(years)

	appreciation := in.HomeAppreciationPercent / 100
	rentIncrease := in.RentIncreasePercent / 100
	investmentReturn := in.InvestmentReturnPercent / 100
	taxRate := in.PropertyTaxRatePercent / 100
	maintenanceRate := in.MaintenanceRatePercent / 100
	sellingRate := in.ClosingCostsSellingPercent / 100
	pmiPerYear := loan * in.PMIRatePercent / 100
	pmiEligible := in.DownPaymentPercent < pmiEquityThreshold*100

	marketValue := in.HomePrice
	assessedValue := in.HomePrice
	investment := downPayment + closingBuy
	yearlyRent := in.MonthlyRent * monthsPerYear

	var (
		totalPaidMortgage float64
		cumulativeBuying  = closingBuy
		cumulativeRenting float64
		recurringBuying   float64
		totalInterest     float64
		totalPMI          float64
	)

	rows := make([]domain.BuyVsRentYear, 0, years)
	for y := 1; y <= years; y++ {
		row := domain.BuyVsRentYear{Year: y}

		startBalance := RemainingBalance(loan, in.MortgageRatePercent, years, (y-1)*monthsPerYear)
		endBalance := RemainingBalance(loan, in.MortgageRatePercent, years, y*monthsPerYear)

		totalPaidMortgage += yearlyMortgage
		row.MortgagePaid = yearlyMortgage
		row.PrincipalPaid = startBalance - endBalance
		row.InterestPaid = yearlyMortgage - row.PrincipalPaid

		row.PropertyTax = assessedValue * taxRate
		row.Maintenance = marketValue * maintenanceRate
		row.HomeInsurance = in.HomeInsuranceAnnual
		row.HOAFees = in.HOAFeesMonthly * monthsPerYear
		// Equity is measured against the purchase price at the start of the year.
		if pmiEligible && in.HomePrice-startBalance < pmiEquityThreshold*in.HomePrice {
			row.PMI = pmiPerYear
		}
		row.BuyingCost = row.MortgagePaid + row.PropertyTax + row.HomeInsurance + row.Maintenance + row.HOAFees + row.PMI
		cumulativeBuying += row.BuyingCost
		recurringBuying += row.BuyingCost
		totalInterest += row.InterestPaid
		totalPMI += row.PMI

		marketValue *= 1 + appreciation
		assessedValue *= 1 + AssessedValueGrowthRate
		row.MarketValue = marketValue
		row.AssessedValue = assessedValue
		row.LoanBalance = endBalance
		row.HomeEquity = marketValue - (totalScheduled - totalPaidMortgage)

		if y > 1 {
			yearlyRent *= 1 + rentIncrease
		}
		row.RentCost = yearlyRent + in.RentersInsuranceMonthly*monthsPerYear
		cumulativeRenting += row.RentCost

		// Year 1 compounds only the capital a buyer would have sunk into the purchase.
		// A rent shortfall draws the portfolio down but never below zero.
		if y > 1 {
			row.InvestedSurplus = math.Max(row.BuyingCost-row.RentCost, -investment)
			investment += row.InvestedSurplus
		}
		investment *= 1 + investmentReturn
		row.InvestmentBalance = investment

		row.CumulativeBuyingCost = cumulativeBuying
		row.CumulativeRentingCost = cumulativeRenting
		row.BuyingNetWorth = row.HomeEquity - marketValue*sellingRate - cumulativeBuying
		row.RentingNetWorth = investment - cumulativeRenting

		rows = append(rows, row)
	}

	result := domain.BuyVsRentResult{
		BuyingTotalCost:          downPayment + cumulativeBuying,
		RentingTotalCost:         cumulativeRenting,
		BuyingMonthlyLoanPayment: monthlyPayment,
		MonthlyRent:              in.MonthlyRent,
		HomeMarketValueAtHorizon: marketValue,
		InvestmentValueIfRenting: investment,
		HorizonYears:             years,
		LoanAmount:               loan,
		DownPayment:              downPayment,
		ClosingCostsBuying:       closingBuy,
		SellingCosts:             marketValue * sellingRate,
		TotalInterestPaid:        totalInterest,
		TotalPMIPaid:             totalPMI,
		Years:                    rows,
	}
	if months := float64(years * monthsPerYear); months > 0 {
		result.BuyingAverageMonthlyPayment = recurringBuying / months
		result.AverageRentPaid = cumulativeRenting / months
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		result.BuyingNetWorth = last.BuyingNetWorth
		result.RentingNetWorth = last.RentingNetWorth
	} else {
		result.BuyingNetWorth = in.HomePrice - marketValue*sellingRate - closingBuy
		result.RentingNetWorth = investment
	}
	result.Recommendation, result.Savings = Compare(result.BuyingNetWorth, result.RentingNetWorth)

	baselineGap := (in.HomePrice - totalScheduled - in.HomePrice*sellingRate - closingBuy) - (downPayment + closingBuy)
	result.BreakEven = FindBreakEven(baselineGap, rows)
	return result
}

// Compare recommends buying only when it ends strictly ahead; ties favor renting.
// savings is the absolute net worth difference.
func Compare(buyingNetWorth, rentingNetWorth float64) (domain.Recommendation, float64) {
	diff := buyingNetWorth - rentingNetWorth
	if diff > 0 {
		return domain.RecommendBuy, diff
	}
	return domain.RecommendRent, math.Abs(diff)
}
