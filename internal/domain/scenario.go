package domain

import "time"

// Scenario is one named calculator run in a scenario file. Exactly one of the
// input blocks is set.
type Scenario struct {
	Name             string                  `yaml:"name" json:"name"`
	BuyVsRent        *BuyVsRentInputs        `yaml:"buy_vs_rent,omitempty" json:"buyVsRent,omitempty"`
	CompoundInterest *CompoundInterestInputs `yaml:"compound_interest,omitempty" json:"compoundInterest,omitempty"`
}

// CalculatorType returns which calculator the scenario targets.
func (s Scenario) CalculatorType() CalculatorType {
	if s.BuyVsRent != nil {
		return CalculatorBuyVsRent
	}
	return CalculatorCompoundInterest
}

// Configuration is the top level of a scenario file.
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// ScenarioResult pairs a scenario with its computed outcome.
type ScenarioResult struct {
	Name             string                  `json:"name"`
	CalculatorType   CalculatorType          `json:"calculatorType"`
	BuyVsRentInputs  *BuyVsRentInputs        `json:"buyVsRentInputs,omitempty"`
	BuyVsRent        *BuyVsRentResult        `json:"buyVsRent,omitempty"`
	CompoundInputs   *CompoundInterestInputs `json:"compoundInterestInputs,omitempty"`
	CompoundInterest *CompoundInterestResult `json:"compoundInterest,omitempty"`
}

// ScenarioComparison is the full result set of a scenario file run.
type ScenarioComparison struct {
	AsOf        time.Time        `json:"asOf"`
	Scenarios   []ScenarioResult `json:"scenarios"`
	Assumptions []string         `json:"assumptions"`
}
