package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/finfreedom/fincalc/internal/domain"
)

// ErrNoCalculator is returned for a scenario that names no calculator inputs.
var ErrNoCalculator = errors.New("scenario has no calculator inputs")

// CalculationEngine runs projections for scenario files, the CLI and the HTTP API.
// The projections themselves are pure; the engine only adds logging and batching.
type CalculationEngine struct {
	Debug  bool // Log per-projection breakdowns at debug level
	Logger Logger
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// BuyVsRent runs a buy vs rent projection.
func (ce *CalculationEngine) BuyVsRent(in domain.BuyVsRentInputs) domain.BuyVsRentResult {
	result := ProjectBuyVsRent(in)
	if ce.Debug {
		ce.summarize(in, result)
	}
	return result
}

// CompoundInterest runs a compound growth projection.
func (ce *CalculationEngine) CompoundInterest(in domain.CompoundInterestInputs) domain.CompoundInterestResult {
	result := ProjectCompoundInterest(in)
	if ce.Debug {
		ce.Logger.Debugf("COMPOUND INTEREST PROJECTION (%d years, %s)", in.Years, in.CompoundingFrequency)
		ce.Logger.Debugf("  Contributed:   $%.2f", result.TotalContributed)
		ce.Logger.Debugf("  Nominal value: $%.2f", result.FinalNominalValue)
		ce.Logger.Debugf("  Real value:    $%.2f", result.FinalRealValue)
	}
	return result
}

// RunScenario calculates a single named scenario.
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := &domain.ScenarioResult{Name: scenario.Name}
	switch {
	case scenario.BuyVsRent != nil:
		r := ce.BuyVsRent(*scenario.BuyVsRent)
		out.CalculatorType = domain.CalculatorBuyVsRent
		out.BuyVsRentInputs = scenario.BuyVsRent
		out.BuyVsRent = &r
	case scenario.CompoundInterest != nil:
		r := ce.CompoundInterest(*scenario.CompoundInterest)
		out.CalculatorType = domain.CalculatorCompoundInterest
		out.CompoundInputs = scenario.CompoundInterest
		out.CompoundInterest = &r
	default:
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, ErrNoCalculator)
	}
	return out, nil
}

// RunScenarios runs all scenarios of a configuration in file order.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	results := make([]domain.ScenarioResult, 0, len(config.Scenarios))
	for i := range config.Scenarios {
		r, err := ce.RunScenario(ctx, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		results = append(results, *r)
	}
	ce.Logger.Infof("ran %d scenarios", len(results))

	return &domain.ScenarioComparison{
		AsOf:        nowFunc(),
		Scenarios:   results,
		Assumptions: Assumptions(),
	}, nil
}
