package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/finfreedom/fincalc/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":      FormatCurrency,
	"dollars":   FormatDollars,
	"pct":       FormatPercentage,
	"upper":     func(r domain.Recommendation) string { return strings.ToUpper(string(r)) },
	"breakEven": breakEvenLabel,
	"json": func(v any) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the per-scenario data embedded for the client-side chart.
type chartSeries struct {
	Name   string    `json:"name"`
	Labels []int     `json:"labels"`
	LabelA string    `json:"labelA"`
	LabelB string    `json:"labelB"`
	A      []float64 `json:"a"`
	B      []float64 `json:"b"`
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var charts []chartSeries
	for _, sc := range results.Scenarios {
		s := chartSeries{Name: sc.Name}
		switch {
		case sc.BuyVsRent != nil:
			s.LabelA, s.LabelB = "Buying net worth", "Renting net worth"
			for _, y := range sc.BuyVsRent.Years {
				s.Labels = append(s.Labels, y.Year)
				s.A = append(s.A, y.BuyingNetWorth)
				s.B = append(s.B, y.RentingNetWorth)
			}
		case sc.CompoundInterest != nil:
			s.LabelA, s.LabelB = "Nominal value", "Real value"
			for _, y := range sc.CompoundInterest.YearlyBreakdown {
				s.Labels = append(s.Labels, y.Year)
				s.A = append(s.A, y.NominalValue)
				s.B = append(s.B, y.RealValue)
			}
		}
		charts = append(charts, s)
	}

	data := struct {
		*domain.ScenarioComparison
		Highlights Highlights
		Charts     []chartSeries
	}{results, AnalyzeScenarios(results), charts}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
