package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/finfreedom/fincalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput marks a calculator input that failed validation.
var ErrInvalidInput = errors.New("invalid input")

// MaxCompoundYears bounds compound projections.
const MaxCompoundYears = 100

// ValidLoanTerms are the supported mortgage terms in years.
var ValidLoanTerms = []int{15, 20, 30}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario file (YAML; JSON is valid YAML)
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios provided", ErrInvalidInput)
	}

	for i := range config.Scenarios {
		if err := ip.validateScenario(&config.Scenarios[i]); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("%w: scenario name cannot be empty", ErrInvalidInput)
	}
	switch {
	case scenario.BuyVsRent != nil && scenario.CompoundInterest != nil:
		return fmt.Errorf("%w: scenario %q must set only one of buy_vs_rent or compound_interest", ErrInvalidInput, scenario.Name)
	case scenario.BuyVsRent != nil:
		return ValidateBuyVsRent(scenario.BuyVsRent)
	case scenario.CompoundInterest != nil:
		if scenario.CompoundInterest.CompoundingFrequency == "" {
			scenario.CompoundInterest.CompoundingFrequency = domain.CompoundMonthly
		}
		return ValidateCompoundInterest(scenario.CompoundInterest)
	default:
		return fmt.Errorf("%w: scenario %q has no calculator inputs", ErrInvalidInput, scenario.Name)
	}
}

// ValidateBuyVsRent checks the ranges the projection engine relies on.
func ValidateBuyVsRent(in *domain.BuyVsRentInputs) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"home price", in.HomePrice},
		{"down payment percent", in.DownPaymentPercent},
		{"mortgage rate", in.MortgageRatePercent},
		{"closing costs (buying)", in.ClosingCostsBuyingPercent},
		{"closing costs (selling)", in.ClosingCostsSellingPercent},
		{"property tax rate", in.PropertyTaxRatePercent},
		{"PMI rate", in.PMIRatePercent},
		{"home insurance", in.HomeInsuranceAnnual},
		{"HOA fees", in.HOAFeesMonthly},
		{"maintenance rate", in.MaintenanceRatePercent},
		{"monthly rent", in.MonthlyRent},
		{"renters insurance", in.RentersInsuranceMonthly},
		{"home appreciation", in.HomeAppreciationPercent},
		{"rent increase", in.RentIncreasePercent},
		{"investment return", in.InvestmentReturnPercent},
	}
	for _, f := range fields {
		if err := nonNegative(f.name, f.value); err != nil {
			return err
		}
	}

	if in.HomePrice == 0 {
		return fmt.Errorf("%w: home price must be positive", ErrInvalidInput)
	}
	if in.DownPaymentPercent > 100 {
		return fmt.Errorf("%w: down payment percent cannot exceed 100, got %v", ErrInvalidInput, in.DownPaymentPercent)
	}
	if !validLoanTerm(in.LoanTermYears) {
		return fmt.Errorf("%w: loan term must be one of %v years, got %d", ErrInvalidInput, ValidLoanTerms, in.LoanTermYears)
	}
	return nil
}

// ValidateCompoundInterest checks the ranges the compound projector relies on.
func ValidateCompoundInterest(in *domain.CompoundInterestInputs) error {
	if err := nonNegative("initial amount", in.InitialAmount); err != nil {
		return err
	}
	if err := nonNegative("monthly contribution", in.MonthlyContribution); err != nil {
		return err
	}
	if err := finite("annual return", in.AnnualReturnPercent); err != nil {
		return err
	}
	if in.AnnualReturnPercent <= -100 {
		return fmt.Errorf("%w: annual return must be greater than -100%%, got %v", ErrInvalidInput, in.AnnualReturnPercent)
	}
	if in.Years < 1 || in.Years > MaxCompoundYears {
		return fmt.Errorf("%w: years must be between 1 and %d, got %d", ErrInvalidInput, MaxCompoundYears, in.Years)
	}
	if !in.CompoundingFrequency.Valid() {
		return fmt.Errorf("%w: invalid compounding frequency %q", ErrInvalidInput, in.CompoundingFrequency)
	}
	if in.IncludeInflation {
		if err := nonNegative("inflation rate", in.InflationRatePercent); err != nil {
			return err
		}
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, name)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if err := finite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %v", ErrInvalidInput, name, v)
	}
	return nil
}

func validLoanTerm(years int) bool {
	for _, t := range ValidLoanTerms {
		if years == t {
			return true
		}
	}
	return false
}

// DefaultBuyVsRentInputs returns the starting values offered to new users.
func DefaultBuyVsRentInputs() domain.BuyVsRentInputs {
	return domain.BuyVsRentInputs{
		HomePrice:               400000,
		DownPaymentPercent:      20,
		MortgageRatePercent:     6.5,
		LoanTermYears:           30,
		PropertyTaxRatePercent:  1,
		PMIRatePercent:          1,
		HomeInsuranceAnnual:     1800,
		MaintenanceRatePercent:  1,
		MonthlyRent:             2000,
		RentersInsuranceMonthly: 20,
		HomeAppreciationPercent: 3,
		RentIncreasePercent:     3,
		InvestmentReturnPercent: 7,
	}
}

// DefaultCompoundInterestInputs returns the starting values offered to new users.
func DefaultCompoundInterestInputs() domain.CompoundInterestInputs {
	return domain.CompoundInterestInputs{
		InitialAmount:        10000,
		MonthlyContribution:  500,
		AnnualReturnPercent:  7,
		Years:                30,
		CompoundingFrequency: domain.CompoundMonthly,
		InflationRatePercent: 3,
	}
}

// CreateExampleConfiguration creates an example configuration for testing
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	starter := DefaultBuyVsRentInputs()

	expensive := DefaultBuyVsRentInputs()
	expensive.HomePrice = 750000
	expensive.DownPaymentPercent = 10
	expensive.ClosingCostsBuyingPercent = 3
	expensive.ClosingCostsSellingPercent = 6
	expensive.HOAFeesMonthly = 350
	expensive.MonthlyRent = 3200

	shortTerm := DefaultBuyVsRentInputs()
	shortTerm.LoanTermYears = 15
	shortTerm.MortgageRatePercent = 5.75

	index := DefaultCompoundInterestInputs()

	adjusted := DefaultCompoundInterestInputs()
	adjusted.IncludeInflation = true
	adjusted.CompoundingFrequency = domain.CompoundQuarterly

	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Starter Home", BuyVsRent: &starter},
			{Name: "City Condo, 10% Down", BuyVsRent: &expensive},
			{Name: "15-Year Mortgage", BuyVsRent: &shortTerm},
			{Name: "Index Fund", CompoundInterest: &index},
			{Name: "Index Fund, Inflation Adjusted", CompoundInterest: &adjusted},
		},
	}
}
