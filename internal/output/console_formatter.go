package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/finfreedom/fincalc/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console-lite" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range sortedScenarios(results) {
		switch {
		case sc.BuyVsRent != nil:
			r := sc.BuyVsRent
			fmt.Fprintf(&buf, "%s [buy-vs-rent, %d years]: %s wins by %s\n",
				sc.Name, r.HorizonYears, strings.ToUpper(string(r.Recommendation)), FormatDollars(r.Savings))
			fmt.Fprintf(&buf, "  Buying=%s Renting=%s Payment=%s/mo BreakEven=%s\n",
				FormatDollars(r.BuyingNetWorth), FormatDollars(r.RentingNetWorth),
				FormatCurrency(r.BuyingMonthlyLoanPayment), breakEvenLabel(r.BreakEven))
		case sc.CompoundInterest != nil:
			r := sc.CompoundInterest
			fmt.Fprintf(&buf, "%s [compound-interest, %d years]: Final=%s Real=%s\n",
				sc.Name, len(r.YearlyBreakdown), FormatDollars(r.FinalNominalValue), FormatDollars(r.FinalRealValue))
			fmt.Fprintf(&buf, "  Contributed=%s Interest=%s\n",
				FormatDollars(r.TotalContributed), FormatDollars(r.TotalNominalInterest))
		}
	}

	h := AnalyzeScenarios(results)
	if h.BuyVsRent != nil || h.CompoundInterest != nil {
		fmt.Fprintln(&buf)
	}
	if h.BuyVsRent != nil {
		fmt.Fprintf(&buf, "Best housing outcome: %s (%s, %s)\n", h.BuyVsRent.ScenarioName, h.BuyVsRent.Recommendation, FormatDollars(h.BuyVsRent.Value))
	}
	if h.CompoundInterest != nil {
		fmt.Fprintf(&buf, "Best growth outcome: %s (%s real)\n", h.CompoundInterest.ScenarioName, FormatDollars(h.CompoundInterest.Value))
	}
	return buf.Bytes(), nil
}
