package calculation

import (
	"fmt"

	"github.com/finfreedom/fincalc/internal/domain"
)

// Assumptions lists the modeling conventions baked into the engine, rendered in reports.
func Assumptions() []string {
	return []string{
		fmt.Sprintf("Assessed (taxable) home value grows %.0f%% per year regardless of market appreciation", AssessedValueGrowthRate*100),
		fmt.Sprintf("PMI applies while down payment plus repaid principal is below %.0f%% of the purchase price", pmiEquityThreshold*100),
		"Buy vs rent horizon equals the loan term",
		"Renter invests the down payment and buying closing costs, then each year's cost difference from year 2",
		"Equal net worth favors renting",
		"Inflation-adjusted return uses the approximation nominal minus inflation",
	}
}

// summarize logs the headline figures of a buy vs rent projection.
func (ce *CalculationEngine) summarize(in domain.BuyVsRentInputs, r domain.BuyVsRentResult) {
	ce.Logger.Debugf("BUY VS RENT PROJECTION (%d years)", r.HorizonYears)
	ce.Logger.Debugf("  Home price:            $%.2f (down %.1f%%, loan $%.2f)", in.HomePrice, in.DownPaymentPercent, r.LoanAmount)
	ce.Logger.Debugf("  Monthly loan payment:  $%.2f", r.BuyingMonthlyLoanPayment)
	ce.Logger.Debugf("  Buying net worth:      $%.2f", r.BuyingNetWorth)
	ce.Logger.Debugf("  Renting net worth:     $%.2f", r.RentingNetWorth)
	ce.Logger.Debugf("  Recommendation:        %s (by $%.2f)", r.Recommendation, r.Savings)
	if r.BreakEven != nil {
		ce.Logger.Debugf("  Break-even:            year %d month %d", r.BreakEven.Year, r.BreakEven.Month)
	}
}
