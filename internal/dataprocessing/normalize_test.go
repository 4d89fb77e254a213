package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbamcli/pkg/contracts/domain"
)

func record(code string, values map[domain.Indicator]float64) domain.CountryRecord {
	return domain.CountryRecord{Code: code, Name: code, Indicators: values}
}

func TestNormalizeMinZeroMaxOne(t *testing.T) {
	records := []domain.CountryRecord{
		record("A", map[domain.Indicator]float64{"X": 10, "Y": -3}),
		record("B", map[domain.Indicator]float64{"X": 20, "Y": 0}),
		record("C", map[domain.Indicator]float64{"X": 40, "Y": 9}),
	}
	indicators := []domain.Indicator{"X", "Y"}

	out, constants, err := testProcessor().Normalize(records, indicators)
	require.NoError(t, err)
	assert.Empty(t, constants)

	for _, ind := range indicators {
		min, max := math.Inf(1), math.Inf(-1)
		for _, rec := range out {
			v := rec.Indicators[ind]
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		assert.InDelta(t, 0, min, 1e-12)
		assert.InDelta(t, 1, max, 1e-12)
	}

	// Spot-check the interpolation: X=20 over [10,40] is 1/3.
	assert.InDelta(t, 1.0/3, out[1].Indicators["X"], 1e-12)

	// Inputs must not be mutated.
	assert.InDelta(t, 10, records[0].Indicators["X"], 1e-12)
}

func TestNormalizeConstantColumnReported(t *testing.T) {
	records := []domain.CountryRecord{
		record("A", map[domain.Indicator]float64{"X": 7}),
		record("B", map[domain.Indicator]float64{"X": 7}),
	}

	out, constants, err := testProcessor().Normalize(records, []domain.Indicator{"X"})
	require.NoError(t, err)
	require.Len(t, constants, 1)
	assert.Equal(t, "X", constants[0].Indicator)
	assert.InDelta(t, 7, constants[0].Value, 1e-12)

	for _, rec := range out {
		assert.Zero(t, rec.Indicators["X"])
	}
}

func TestNormalizeMissingIndicatorFails(t *testing.T) {
	records := []domain.CountryRecord{
		record("A", map[domain.Indicator]float64{"X": 1}),
		record("B", map[domain.Indicator]float64{}),
	}

	_, _, err := testProcessor().Normalize(records, []domain.Indicator{"X"})
	assert.Error(t, err)
}

func TestAddComplements(t *testing.T) {
	records := []domain.CountryRecord{
		record("A", map[domain.Indicator]float64{
			domain.IndicatorSPIScore:  0.25,
			domain.IndicatorPatPerCap: 1.0,
		}),
	}

	out := testProcessor().AddComplements(records)
	assert.InDelta(t, 0.75, out[0].Indicators[domain.IndicatorSPIScoreCompl], 1e-12)
	assert.InDelta(t, 0.0, out[0].Indicators[domain.IndicatorPatPerCapCompl], 1e-12)

	// Source record untouched.
	_, ok := records[0].Indicators[domain.IndicatorSPIScoreCompl]
	assert.False(t, ok)
}
