package domain

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCompoundingFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want CompoundingFrequency
	}{
		{"monthly", CompoundMonthly},
		{"Monthly", CompoundMonthly},
		{" QUARTERLY ", CompoundQuarterly},
		{"q", CompoundQuarterly},
		{"Yearly", CompoundAnnually},
		{"1", CompoundAnnually},
	}
	for _, tt := range tests {
		got, err := ParseCompoundingFrequency(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCompoundingFrequency("weekly")
	assert.ErrorContains(t, err, "unknown compounding frequency")
}

func TestCompoundingFrequencyDecoding(t *testing.T) {
	var in CompoundInterestInputs
	require.NoError(t, json.Unmarshal([]byte(`{"years": 5, "compoundingFrequency": "Monthly"}`), &in))
	assert.Equal(t, CompoundMonthly, in.CompoundingFrequency)

	require.NoError(t, yaml.Unmarshal([]byte("compounding_frequency: Quarterly\n"), &in))
	assert.Equal(t, CompoundQuarterly, in.CompoundingFrequency)

	// Unknown spellings survive decoding and fail validation later.
	require.NoError(t, json.Unmarshal([]byte(`{"compoundingFrequency": "weekly"}`), &in))
	assert.Equal(t, CompoundingFrequency("weekly"), in.CompoundingFrequency)
	assert.False(t, in.CompoundingFrequency.Valid())
}
