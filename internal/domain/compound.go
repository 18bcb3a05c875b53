package domain

import (
	"fmt"
	"strings"
)

// CompoundingFrequency controls how often interest is credited.
type CompoundingFrequency string

const (
	CompoundMonthly   CompoundingFrequency = "monthly"
	CompoundQuarterly CompoundingFrequency = "quarterly"
	CompoundAnnually  CompoundingFrequency = "annually"
)

// PeriodsPerYear returns the number of compounding periods in a year.
func (f CompoundingFrequency) PeriodsPerYear() int {
	switch f {
	case CompoundMonthly:
		return 12
	case CompoundQuarterly:
		return 4
	default:
		return 1
	}
}

// MonthsPerPeriod returns how many monthly contributions fall into one period.
func (f CompoundingFrequency) MonthsPerPeriod() int {
	return 12 / f.PeriodsPerYear()
}

// Valid reports whether f is one of the supported frequencies.
func (f CompoundingFrequency) Valid() bool {
	switch f {
	case CompoundMonthly, CompoundQuarterly, CompoundAnnually:
		return true
	}
	return false
}

// ParseCompoundingFrequency maps user input (including short forms) to a frequency.
func ParseCompoundingFrequency(s string) (CompoundingFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "m", "12":
		return CompoundMonthly, nil
	case "quarterly", "quarter", "q", "4":
		return CompoundQuarterly, nil
	case "annually", "annual", "yearly", "a", "y", "1":
		return CompoundAnnually, nil
	}
	return "", fmt.Errorf("unknown compounding frequency %q", s)
}

// UnmarshalText normalizes spellings such as "Monthly" or "q" when decoding JSON and YAML.
// Unrecognized values are kept as given so validation can report them.
func (f *CompoundingFrequency) UnmarshalText(text []byte) error {
	if parsed, err := ParseCompoundingFrequency(string(text)); err == nil {
		*f = parsed
		return nil
	}
	*f = CompoundingFrequency(text)
	return nil
}

// CompoundInterestInputs holds the parameters of a compound growth projection.
type CompoundInterestInputs struct {
	InitialAmount        float64              `yaml:"initial_amount" json:"initialAmount"`
	MonthlyContribution  float64              `yaml:"monthly_contribution" json:"monthlyContribution"`
	AnnualReturnPercent  float64              `yaml:"annual_return_percent" json:"annualReturnPercent"`
	Years                int                  `yaml:"years" json:"years"`
	CompoundingFrequency CompoundingFrequency `yaml:"compounding_frequency" json:"compoundingFrequency"`
	IncludeInflation     bool                 `yaml:"include_inflation" json:"includeInflation"`
	InflationRatePercent float64              `yaml:"inflation_rate_percent" json:"inflationRatePercent"`
}

// YearlyBreakdown is a snapshot of a compound growth projection at a year boundary.
type YearlyBreakdown struct {
	Year             int     `json:"year"`
	TotalContributed float64 `json:"totalContributed"`
	NominalValue     float64 `json:"nominalValue"`
	RealValue        float64 `json:"realValue"`
	NominalInterest  float64 `json:"nominalInterest"`
	RealInterest     float64 `json:"realInterest"`
}

// CompoundInterestResult is the outcome of a compound growth projection. Values are unrounded.
type CompoundInterestResult struct {
	TotalContributed               float64           `json:"totalContributed"`
	FinalNominalValue              float64           `json:"finalNominalValue"`
	FinalRealValue                 float64           `json:"finalRealValue"`
	TotalNominalInterest           float64           `json:"totalNominalInterest"`
	TotalRealInterest              float64           `json:"totalRealInterest"`
	PurchasingPowerLossPercent     float64           `json:"purchasingPowerLossPercent"`
	InflationAdjustedReturnPercent float64           `json:"inflationAdjustedReturnPercent"`
	YearlyBreakdown                []YearlyBreakdown `json:"yearlyBreakdown"`
}
