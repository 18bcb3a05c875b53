package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finfreedom/fincalc/internal/calculation"
	"github.com/finfreedom/fincalc/internal/config"
	"github.com/finfreedom/fincalc/internal/domain"
)

func TestEndToEndCalculation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Scenarios, 3)

	engine := calculation.NewCalculationEngine()
	results, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results.Scenarios, 3)
	assert.NotEmpty(t, results.Assumptions)

	reference := results.Scenarios[0]
	require.NotNil(t, reference.BuyVsRent)
	assert.Equal(t, domain.RecommendRent, reference.BuyVsRent.Recommendation)
	assert.InEpsilon(t, 298997.7051475891, reference.BuyVsRent.RentingNetWorth, 1e-9)
	assert.InEpsilon(t, -372113.01705927786, reference.BuyVsRent.BuyingNetWorth, 1e-9)

	expensive := results.Scenarios[1]
	require.NotNil(t, expensive.BuyVsRent)
	assert.Equal(t, domain.RecommendBuy, expensive.BuyVsRent.Recommendation)
	require.NotNil(t, expensive.BuyVsRent.BreakEven)
	assert.Equal(t, 6, expensive.BuyVsRent.BreakEven.Year)

	fund := results.Scenarios[2]
	require.NotNil(t, fund.CompoundInterest)
	assert.Equal(t, domain.CalculatorCompoundInterest, fund.CalculatorType)
	assert.InEpsilon(t, 691150.4726415668, fund.CompoundInterest.FinalNominalValue, 1e-9)
	assert.Equal(t, fund.CompoundInterest.FinalNominalValue, fund.CompoundInterest.FinalRealValue, "inflation is off")
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	cfg.Scenarios[0].BuyVsRent.LoanTermYears = 25
	assert.ErrorIs(t, parser.ValidateConfiguration(cfg), config.ErrInvalidInput)
}

func TestExampleConfigurationRuns(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(cfg))

	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, results.Scenarios, len(cfg.Scenarios))
}
