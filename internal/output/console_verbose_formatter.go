package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/pkg/dateutil"
)

// ConsoleVerboseFormatter renders the detailed console report with yearly tables.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED BUY VS RENT AND COMPOUND GROWTH ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if !results.AsOf.IsZero() {
		fmt.Fprintf(&buf, "Prepared: %s\n", results.AsOf.Format("2006-01-02"))
	}
	fmt.Fprintln(&buf)
	if len(results.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range results.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	for i, sc := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		switch {
		case sc.BuyVsRent != nil:
			writeBuyVsRent(&buf, results.AsOf, sc.BuyVsRentInputs, sc.BuyVsRent)
		case sc.CompoundInterest != nil:
			writeCompound(&buf, results.AsOf, sc.CompoundInputs, sc.CompoundInterest)
		}
		fmt.Fprintln(&buf)
	}

	h := AnalyzeScenarios(results)
	if h.BuyVsRent != nil {
		fmt.Fprintf(&buf, "BEST HOUSING OUTCOME: %s (%s, net worth %s)\n", h.BuyVsRent.ScenarioName,
			strings.ToUpper(string(h.BuyVsRent.Recommendation)), FormatCurrency(h.BuyVsRent.Value))
	}
	if h.CompoundInterest != nil {
		fmt.Fprintf(&buf, "BEST GROWTH OUTCOME: %s (real value %s)\n", h.CompoundInterest.ScenarioName, FormatCurrency(h.CompoundInterest.Value))
	}
	return buf.Bytes(), nil
}

func writeBuyVsRent(w io.Writer, asOf time.Time, in *domain.BuyVsRentInputs, r *domain.BuyVsRentResult) {
	if in != nil {
		fmt.Fprintln(w, "INPUTS:")
		fmt.Fprintf(w, "  Home Price:             %s (%.1f%% down)\n", FormatCurrency(in.HomePrice), in.DownPaymentPercent)
		fmt.Fprintf(w, "  Mortgage:               %.3f%% over %d years\n", in.MortgageRatePercent, in.LoanTermYears)
		fmt.Fprintf(w, "  Monthly Rent:           %s (+%.1f%%/yr)\n", FormatCurrency(in.MonthlyRent), in.RentIncreasePercent)
		fmt.Fprintf(w, "  Appreciation / Return:  %.1f%% / %.1f%%\n", in.HomeAppreciationPercent, in.InvestmentReturnPercent)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "BUYING:")
	fmt.Fprintf(w, "  Loan Amount:            %s\n", FormatCurrency(r.LoanAmount))
	fmt.Fprintf(w, "  Monthly Loan Payment:   %s\n", FormatCurrency(r.BuyingMonthlyLoanPayment))
	fmt.Fprintf(w, "  Avg Monthly Cost:       %s\n", FormatCurrency(r.BuyingAverageMonthlyPayment))
	fmt.Fprintf(w, "  Total Interest:         %s\n", FormatCurrency(r.TotalInterestPaid))
	fmt.Fprintf(w, "  Total PMI:              %s\n", FormatCurrency(r.TotalPMIPaid))
	fmt.Fprintf(w, "  Total Cost:             %s\n", FormatCurrency(r.BuyingTotalCost))
	fmt.Fprintf(w, "  Home Value at Horizon:  %s\n", FormatCurrency(r.HomeMarketValueAtHorizon))
	fmt.Fprintf(w, "  Net Worth:              %s\n", FormatCurrency(r.BuyingNetWorth))
	fmt.Fprintln(w, "RENTING:")
	fmt.Fprintf(w, "  Avg Monthly Rent:       %s\n", FormatCurrency(r.AverageRentPaid))
	fmt.Fprintf(w, "  Total Cost:             %s\n", FormatCurrency(r.RentingTotalCost))
	fmt.Fprintf(w, "  Investment at Horizon:  %s\n", FormatCurrency(r.InvestmentValueIfRenting))
	fmt.Fprintf(w, "  Net Worth:              %s\n", FormatCurrency(r.RentingNetWorth))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "RECOMMENDATION: %s by %s (break-even: %s)\n", strings.ToUpper(string(r.Recommendation)),
		FormatCurrency(r.Savings), breakEvenLabel(r.BreakEven))
	if label := calendarLabel(asOf, r.BreakEven); label != "" {
		fmt.Fprintf(w, "BREAK-EVEN DATE: %s\n", label)
	}
	if !asOf.IsZero() {
		fmt.Fprintf(w, "HORIZON ENDS: %s\n", dateutil.HorizonDate(asOf, r.HorizonYears).Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-5s %-6s %15s %15s %15s %15s\n", "Year", "Cal", "Buying Cost", "Buying NW", "Rent Cost", "Renting NW")
	fmt.Fprintln(w, strings.Repeat("-", 76))
	for _, y := range r.Years {
		fmt.Fprintf(w, "%-5d %-6s %15s %15s %15s %15s\n", y.Year, calendarYear(asOf, y.Year), FormatDollars(y.BuyingCost), FormatDollars(y.BuyingNetWorth),
			FormatDollars(y.RentCost), FormatDollars(y.RentingNetWorth))
	}
}

func writeCompound(w io.Writer, asOf time.Time, in *domain.CompoundInterestInputs, r *domain.CompoundInterestResult) {
	if in != nil {
		fmt.Fprintln(w, "INPUTS:")
		fmt.Fprintf(w, "  Initial Amount:         %s\n", FormatCurrency(in.InitialAmount))
		fmt.Fprintf(w, "  Monthly Contribution:   %s\n", FormatCurrency(in.MonthlyContribution))
		fmt.Fprintf(w, "  Annual Return:          %.2f%% compounded %s\n", in.AnnualReturnPercent, in.CompoundingFrequency)
		if in.IncludeInflation {
			fmt.Fprintf(w, "  Inflation:              %.2f%%\n", in.InflationRatePercent)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "RESULTS:")
	fmt.Fprintf(w, "  Total Contributed:      %s\n", FormatCurrency(r.TotalContributed))
	fmt.Fprintf(w, "  Final Value:            %s\n", FormatCurrency(r.FinalNominalValue))
	fmt.Fprintf(w, "  Total Interest:         %s\n", FormatCurrency(r.TotalNominalInterest))
	fmt.Fprintf(w, "  Final Real Value:       %s\n", FormatCurrency(r.FinalRealValue))
	fmt.Fprintf(w, "  Real Interest:          %s\n", FormatCurrency(r.TotalRealInterest))
	fmt.Fprintf(w, "  Purchasing Power Loss:  %s\n", FormatPercentage(r.PurchasingPowerLossPercent))
	fmt.Fprintf(w, "  Inflation-Adj. Return:  %s\n", FormatPercentage(r.InflationAdjustedReturnPercent))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-5s %-6s %15s %15s %15s\n", "Year", "Cal", "Contributed", "Nominal", "Real")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, y := range r.YearlyBreakdown {
		fmt.Fprintf(w, "%-5d %-6s %15s %15s %15s\n", y.Year, calendarYear(asOf, y.Year), FormatDollars(y.TotalContributed), FormatDollars(y.NominalValue), FormatDollars(y.RealValue))
	}
}

func calendarYear(asOf time.Time, year int) string {
	if asOf.IsZero() {
		return "-"
	}
	return intToString(dateutil.CalendarYear(asOf, year))
}
