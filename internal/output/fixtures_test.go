package output

import (
	"time"

	"github.com/finfreedom/fincalc/internal/domain"
)

func buildTestComparison() *domain.ScenarioComparison {
	return &domain.ScenarioComparison{
		AsOf:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Assumptions: []string{"Equal net worth favors renting"},
		Scenarios: []domain.ScenarioResult{
			{
				Name:           "Starter Home",
				CalculatorType: domain.CalculatorBuyVsRent,
				BuyVsRent: &domain.BuyVsRentResult{
					HorizonYears:             2,
					BuyingNetWorth:           -1000.4,
					RentingNetWorth:          2500.6,
					Savings:                  3501,
					BuyingMonthlyLoanPayment: 1200,
					Recommendation:           domain.RecommendRent,
					Years: []domain.BuyVsRentYear{
						{Year: 1, BuyingCost: 30000, BuyingNetWorth: -9000, RentCost: 24000, RentingNetWorth: 1000},
						{Year: 2, BuyingCost: 20000, BuyingNetWorth: -1000.4, RentCost: 24720, RentingNetWorth: 2500.6},
					},
				},
			},
			{
				Name:           "Index Fund",
				CalculatorType: domain.CalculatorCompoundInterest,
				CompoundInterest: &domain.CompoundInterestResult{
					TotalContributed:     22000,
					FinalNominalValue:    23500.456,
					FinalRealValue:       22150.25,
					TotalNominalInterest: 1500.456,
					YearlyBreakdown: []domain.YearlyBreakdown{
						{Year: 1, TotalContributed: 16000, NominalValue: 16600, RealValue: 16100},
						{Year: 2, TotalContributed: 22000, NominalValue: 23500.456, RealValue: 22150.25},
					},
				},
			},
			{
				Name:           "City Condo",
				CalculatorType: domain.CalculatorBuyVsRent,
				BuyVsRent: &domain.BuyVsRentResult{
					HorizonYears:             2,
					BuyingNetWorth:           50000,
					RentingNetWorth:          40000,
					Savings:                  10000,
					BuyingMonthlyLoanPayment: 1500,
					Recommendation:           domain.RecommendBuy,
					BreakEven:                &domain.BreakEven{Year: 2, Fraction: 0.5, Month: 6},
					Years: []domain.BuyVsRentYear{
						{Year: 1, BuyingNetWorth: 30000, RentingNetWorth: 35000},
						{Year: 2, BuyingNetWorth: 50000, RentingNetWorth: 40000},
					},
				},
			},
		},
	}
}
