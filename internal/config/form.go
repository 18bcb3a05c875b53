package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/finfreedom/fincalc/internal/domain"
)

// formReader pulls numeric fields out of submitted form values. Empty or missing
// fields fall back to the supplied default; anything else must parse.
type formReader struct {
	values url.Values
	err    error
}

func (f *formReader) number(key string, def float64) float64 {
	raw := strings.TrimSpace(f.values.Get(key))
	if raw == "" || f.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		f.err = fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidInput, key, raw)
		return def
	}
	return v
}

func (f *formReader) integer(key string, def int) int {
	raw := strings.TrimSpace(f.values.Get(key))
	if raw == "" || f.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f.err = fmt.Errorf("%w: %s must be a whole number, got %q", ErrInvalidInput, key, raw)
		return def
	}
	return v
}

func (f *formReader) flag(key string) bool {
	switch strings.ToLower(strings.TrimSpace(f.values.Get(key))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// ParseBuyVsRentForm builds validated buy vs rent inputs from form values keyed by the
// JSON field names.
func ParseBuyVsRentForm(values url.Values) (domain.BuyVsRentInputs, error) {
	def := DefaultBuyVsRentInputs()
	f := &formReader{values: values}
	in := domain.BuyVsRentInputs{
		HomePrice:                  f.number("homePrice", def.HomePrice),
		DownPaymentPercent:         f.number("downPaymentPercent", def.DownPaymentPercent),
		MortgageRatePercent:        f.number("mortgageRatePercent", def.MortgageRatePercent),
		LoanTermYears:              f.integer("loanTermYears", def.LoanTermYears),
		ClosingCostsBuyingPercent:  f.number("closingCostsBuyingPercent", def.ClosingCostsBuyingPercent),
		ClosingCostsSellingPercent: f.number("closingCostsSellingPercent", def.ClosingCostsSellingPercent),
		PropertyTaxRatePercent:     f.number("propertyTaxRatePercent", def.PropertyTaxRatePercent),
		PMIRatePercent:             f.number("pmiRatePercent", def.PMIRatePercent),
		HomeInsuranceAnnual:        f.number("homeInsuranceAnnual", def.HomeInsuranceAnnual),
		HOAFeesMonthly:             f.number("hoaFeesMonthly", def.HOAFeesMonthly),
		MaintenanceRatePercent:     f.number("maintenanceRatePercent", def.MaintenanceRatePercent),
		MonthlyRent:                f.number("monthlyRent", def.MonthlyRent),
		RentersInsuranceMonthly:    f.number("rentersInsuranceMonthly", def.RentersInsuranceMonthly),
		HomeAppreciationPercent:    f.number("homeAppreciationPercent", def.HomeAppreciationPercent),
		RentIncreasePercent:        f.number("rentIncreasePercent", def.RentIncreasePercent),
		InvestmentReturnPercent:    f.number("investmentReturnPercent", def.InvestmentReturnPercent),
	}
	if f.err != nil {
		return domain.BuyVsRentInputs{}, f.err
	}
	if err := ValidateBuyVsRent(&in); err != nil {
		return domain.BuyVsRentInputs{}, err
	}
	return in, nil
}

// ParseCompoundInterestForm builds validated compound interest inputs from form values.
func ParseCompoundInterestForm(values url.Values) (domain.CompoundInterestInputs, error) {
	def := DefaultCompoundInterestInputs()
	f := &formReader{values: values}
	in := domain.CompoundInterestInputs{
		InitialAmount:        f.number("initialAmount", def.InitialAmount),
		MonthlyContribution:  f.number("monthlyContribution", def.MonthlyContribution),
		AnnualReturnPercent:  f.number("annualReturnPercent", def.AnnualReturnPercent),
		Years:                f.integer("years", def.Years),
		CompoundingFrequency: def.CompoundingFrequency,
		IncludeInflation:     f.flag("includeInflation"),
		InflationRatePercent: f.number("inflationRatePercent", def.InflationRatePercent),
	}
	if f.err != nil {
		return domain.CompoundInterestInputs{}, f.err
	}
	if raw := strings.TrimSpace(values.Get("compoundingFrequency")); raw != "" {
		freq, err := domain.ParseCompoundingFrequency(raw)
		if err != nil {
			return domain.CompoundInterestInputs{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.CompoundingFrequency = freq
	}
	if err := ValidateCompoundInterest(&in); err != nil {
		return domain.CompoundInterestInputs{}, err
	}
	return in, nil
}
