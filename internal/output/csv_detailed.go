package output

import (
	"bytes"
	"encoding/csv"

	"github.com/finfreedom/fincalc/internal/domain"
)

// CSVDetailedExporter provides one row per scenario and projection year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Calculator", "Year",
		"BuyingCost", "PMI", "HomeEquity", "BuyingNetWorth", "RentCost", "InvestmentBalance", "RentingNetWorth", "BuyingAhead",
		"TotalContributed", "NominalValue", "RealValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		switch {
		case sc.BuyVsRent != nil:
			for _, y := range sc.BuyVsRent.Years {
				row := []string{sc.Name, string(sc.CalculatorType), intToString(y.Year),
					csvAmount(y.BuyingCost), csvAmount(y.PMI), csvAmount(y.HomeEquity), csvAmount(y.BuyingNetWorth),
					csvAmount(y.RentCost), csvAmount(y.InvestmentBalance), csvAmount(y.RentingNetWorth),
					boolToString(y.BuyingNetWorth > y.RentingNetWorth), "", "", ""}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		case sc.CompoundInterest != nil:
			for _, y := range sc.CompoundInterest.YearlyBreakdown {
				row := []string{sc.Name, string(sc.CalculatorType), intToString(y.Year),
					"", "", "", "", "", "", "", "",
					csvAmount(y.TotalContributed), csvAmount(y.NominalValue), csvAmount(y.RealValue)}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
