package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finfreedom/fincalc/internal/calculation"
	"github.com/finfreedom/fincalc/internal/config"
	"github.com/finfreedom/fincalc/internal/output"
)

func TestOutputGeneration(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, format := range []string{"console", "console-lite", "json", "csv", "detailed-csv", "html"} {
		paths, err := output.GenerateReport(results, format, dir)
		require.NoError(t, err, format)
		require.Len(t, paths, 1)

		data, err := os.ReadFile(paths[0])
		require.NoError(t, err)
		assert.Contains(t, string(data), "Expensive Rental Market", format)
	}
}

func TestSaveConfiguration_WritesLoadableFile(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "copy.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, out))

	reloaded, err := parser.LoadFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
