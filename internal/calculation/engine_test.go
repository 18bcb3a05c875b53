package calculation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	debug []string
	info  []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func TestRunScenarios(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	bvr := referenceInputs()
	config := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "Starter home", BuyVsRent: &bvr},
		{Name: "Index fund", CompoundInterest: &domain.CompoundInterestInputs{
			InitialAmount:        10000,
			MonthlyContribution:  500,
			AnnualReturnPercent:  7,
			Years:                30,
			CompoundingFrequency: domain.CompoundMonthly,
		}},
	}}

	engine := NewCalculationEngine()
	comparison, err := engine.RunScenarios(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, fixed, comparison.AsOf)
	assert.NotEmpty(t, comparison.Assumptions)
	require.Len(t, comparison.Scenarios, 2)

	home := comparison.Scenarios[0]
	assert.Equal(t, "Starter home", home.Name)
	assert.Equal(t, domain.CalculatorBuyVsRent, home.CalculatorType)
	require.NotNil(t, home.BuyVsRent)
	assert.Equal(t, ProjectBuyVsRent(bvr), *home.BuyVsRent)
	assert.Nil(t, home.CompoundInterest)

	fund := comparison.Scenarios[1]
	assert.Equal(t, domain.CalculatorCompoundInterest, fund.CalculatorType)
	require.NotNil(t, fund.CompoundInterest)
	assert.InEpsilon(t, 691150.4726415668, fund.CompoundInterest.FinalNominalValue, 1e-9)
}

func TestRunScenario_Errors(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunScenario(context.Background(), &domain.Scenario{Name: "empty"})
	assert.ErrorIs(t, err, ErrNoCalculator)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bvr := referenceInputs()
	_, err = engine.RunScenario(ctx, &domain.Scenario{Name: "cancelled", BuyVsRent: &bvr})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineDebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	log := &recordingLogger{}
	engine.SetLogger(log)

	engine.BuyVsRent(referenceInputs())
	assert.Empty(t, log.debug, "debug output is opt-in")

	engine.Debug = true
	engine.BuyVsRent(referenceInputs())
	require.NotEmpty(t, log.debug)
	assert.Contains(t, log.debug[0], "BUY VS RENT PROJECTION (30 years)")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
