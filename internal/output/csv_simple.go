package output

import (
	"bytes"
	"encoding/csv"

	"github.com/finfreedom/fincalc/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
// Columns that do not apply to a scenario's calculator are left empty.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Calculator", "Years", "Recommendation", "BuyingNetWorth", "RentingNetWorth", "Savings",
		"BreakEvenYear", "BreakEvenMonth", "TotalContributed", "FinalNominalValue", "FinalRealValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		row := make([]string, len(header))
		row[0] = sc.Name
		row[1] = string(sc.CalculatorType)
		switch {
		case sc.BuyVsRent != nil:
			r := sc.BuyVsRent
			row[2] = intToString(r.HorizonYears)
			row[3] = string(r.Recommendation)
			row[4] = csvAmount(r.BuyingNetWorth)
			row[5] = csvAmount(r.RentingNetWorth)
			row[6] = csvAmount(r.Savings)
			if r.BreakEven != nil {
				row[7] = intToString(r.BreakEven.Year)
				row[8] = intToString(r.BreakEven.Month)
			}
		case sc.CompoundInterest != nil:
			r := sc.CompoundInterest
			row[2] = intToString(len(r.YearlyBreakdown))
			row[9] = csvAmount(r.TotalContributed)
			row[10] = csvAmount(r.FinalNominalValue)
			row[11] = csvAmount(r.FinalRealValue)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
