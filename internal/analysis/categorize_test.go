package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbamcli/internal/config"
	"cbamcli/pkg/contracts/domain"
)

func resultsWithScores(scores ...float64) []domain.RiskResult {
	out := make([]domain.RiskResult, len(scores))
	for i, s := range scores {
		out[i] = domain.RiskResult{Code: string(rune('A' + i)), Score: s}
	}
	return out
}

func TestCategorizeFixed(t *testing.T) {
	cfg := config.CategoryConfig{
		Mode:   "fixed",
		Cuts:   []float64{0.33, 0.66},
		Labels: []string{"Low", "Medium", "High"},
	}
	results := resultsWithScores(0.1, 0.33, 0.5, 0.9)

	out, err := testAnalyzer().Categorize(results, cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, out[0].Category)
	assert.Equal(t, domain.RiskLow, out[1].Category) // boundary is inclusive
	assert.Equal(t, domain.RiskMedium, out[2].Category)
	assert.Equal(t, domain.RiskHigh, out[3].Category)

	// Inputs not mutated.
	assert.Empty(t, results[0].Category)
}

func TestCategorizeQuantile(t *testing.T) {
	cfg := config.CategoryConfig{
		Mode:   "quantile",
		Cuts:   []float64{0.33, 0.66},
		Labels: []string{"Low", "Medium", "High"},
	}
	// Scores 0.0 .. 0.9: the 0.33/0.66 quantiles split the set roughly
	// in thirds regardless of absolute scale.
	results := resultsWithScores(0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9)

	out, err := testAnalyzer().Categorize(results, cfg)
	require.NoError(t, err)

	counts := map[domain.RiskCategory]int{}
	for _, r := range out {
		counts[r.Category]++
	}
	assert.Equal(t, 3, counts[domain.RiskLow])
	assert.Equal(t, 3, counts[domain.RiskMedium])
	assert.Equal(t, 4, counts[domain.RiskHigh])
}

func TestCategorizeNaNIsUnknown(t *testing.T) {
	cfg := config.CategoryConfig{
		Mode:   "fixed",
		Cuts:   []float64{0.5},
		Labels: []string{"Low", "High"},
	}
	results := resultsWithScores(math.NaN())

	out, err := testAnalyzer().Categorize(results, cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskUnknown, out[0].Category)
}

func TestCategorizeValidation(t *testing.T) {
	results := resultsWithScores(0.5)

	_, err := testAnalyzer().Categorize(results, config.CategoryConfig{
		Mode:   "fixed",
		Cuts:   []float64{0.5},
		Labels: []string{"OnlyOne"},
	})
	assert.Error(t, err)

	_, err = testAnalyzer().Categorize(results, config.CategoryConfig{
		Mode:   "sideways",
		Cuts:   []float64{0.5},
		Labels: []string{"Low", "High"},
	})
	assert.Error(t, err)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1, quantile(sorted, 0), 1e-12)
	assert.InDelta(t, 3, quantile(sorted, 0.5), 1e-12)
	assert.InDelta(t, 5, quantile(sorted, 1), 1e-12)
	assert.InDelta(t, 2, quantile(sorted, 0.25), 1e-12)
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
}
