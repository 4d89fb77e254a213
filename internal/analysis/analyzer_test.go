package analysis

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cbamcli/internal/errors"
	"cbamcli/pkg/contracts/domain"
)

func testAnalyzer() *Analyzer {
	return New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func record(code string, values map[domain.Indicator]float64) domain.CountryRecord {
	return domain.CountryRecord{Code: code, Name: code, Indicators: values}
}

func TestWeightedIndexIsDotProduct(t *testing.T) {
	records := []domain.CountryRecord{
		record("IDN", map[domain.Indicator]float64{"A": 0.5, "B": 1.0}),
	}
	scenario := domain.WeightScenario{
		Name: "test",
		Weights: []domain.IndicatorWeight{
			{Indicator: "A", Weight: 0.3},
			{Indicator: "B", Weight: 0.7},
		},
	}

	results, err := testAnalyzer().WeightedIndex(records, scenario)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.85, results[0].Score, 1e-12)
	assert.Equal(t, domain.Indicator("B"), results[0].DominantFactor)
	assert.Equal(t, "test", results[0].Scenario)
}

func TestWeightedIndexNormalizesProportions(t *testing.T) {
	records := []domain.CountryRecord{
		record("IDN", map[domain.Indicator]float64{"A": 1.0, "B": 1.0}),
	}
	// Raw weights sum to 0.996, as in the published equal_weights set.
	scenario := domain.WeightScenario{
		Name: "equal-ish",
		Weights: []domain.IndicatorWeight{
			{Indicator: "A", Weight: 0.498},
			{Indicator: "B", Weight: 0.498},
		},
	}

	results, err := testAnalyzer().WeightedIndex(records, scenario)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, results[0].Score, 1e-12)
}

func TestWeightedIndexUnknownIndicator(t *testing.T) {
	records := []domain.CountryRecord{
		record("IDN", map[domain.Indicator]float64{"A": 0.5}),
	}
	scenario := domain.WeightScenario{
		Name: "broken",
		Weights: []domain.IndicatorWeight{
			{Indicator: "A", Weight: 0.5},
			{Indicator: "Bogus", Weight: 0.5},
		},
	}

	_, err := testAnalyzer().WeightedIndex(records, scenario)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnknownIndicator, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Bogus")
}

func TestDominantFactorTieBreak(t *testing.T) {
	// Both indicators contribute exactly 0.25; the first declared wins.
	records := []domain.CountryRecord{
		record("IDN", map[domain.Indicator]float64{"First": 0.5, "Second": 0.5}),
	}
	scenario := domain.WeightScenario{
		Name: "tie",
		Weights: []domain.IndicatorWeight{
			{Indicator: "First", Weight: 0.5},
			{Indicator: "Second", Weight: 0.5},
		},
	}

	results, err := testAnalyzer().WeightedIndex(records, scenario)
	require.NoError(t, err)
	assert.Equal(t, domain.Indicator("First"), results[0].DominantFactor)

	// Reversing the declaration order flips the winner.
	scenario.Weights[0], scenario.Weights[1] = scenario.Weights[1], scenario.Weights[0]
	results, err = testAnalyzer().WeightedIndex(records, scenario)
	require.NoError(t, err)
	assert.Equal(t, domain.Indicator("Second"), results[0].DominantFactor)
}

func TestWeightedIndexRejectsInvalidScenario(t *testing.T) {
	records := []domain.CountryRecord{
		record("IDN", map[domain.Indicator]float64{"A": 0.5}),
	}

	tests := []struct {
		name     string
		scenario domain.WeightScenario
	}{
		{"no weights", domain.WeightScenario{Name: "empty"}},
		{"negative weight", domain.WeightScenario{
			Name:    "neg",
			Weights: []domain.IndicatorWeight{{Indicator: "A", Weight: -0.1}},
		}},
		{"duplicate indicator", domain.WeightScenario{
			Name: "dup",
			Weights: []domain.IndicatorWeight{
				{Indicator: "A", Weight: 0.5},
				{Indicator: "A", Weight: 0.5},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testAnalyzer().WeightedIndex(records, tt.scenario)
			assert.Error(t, err)
		})
	}
}

func sensitivityFixture() ([]domain.CountryRecord, []domain.WeightScenario) {
	records := []domain.CountryRecord{
		record("IDN", map[domain.Indicator]float64{"A": 0.2, "B": 0.9}),
		record("VNM", map[domain.Indicator]float64{"A": 0.8, "B": 0.1}),
		record("THA", map[domain.Indicator]float64{"A": 0.5, "B": 0.5}),
	}
	scenarios := []domain.WeightScenario{
		{Name: "s1", Weights: []domain.IndicatorWeight{{Indicator: "A", Weight: 0.7}, {Indicator: "B", Weight: 0.3}}},
		{Name: "s2", Weights: []domain.IndicatorWeight{{Indicator: "A", Weight: 0.3}, {Indicator: "B", Weight: 0.7}}},
		{Name: "s3", Weights: []domain.IndicatorWeight{{Indicator: "B", Weight: 1.0}}},
	}
	return records, scenarios
}

func TestRunSensitivityOrderInvariant(t *testing.T) {
	records, scenarios := sensitivityFixture()
	an := testAnalyzer()

	forward, err := an.RunSensitivity(context.Background(), records, scenarios, false)
	require.NoError(t, err)

	permuted := []domain.WeightScenario{scenarios[2], scenarios[0], scenarios[1]}
	backward, err := an.RunSensitivity(context.Background(), records, permuted, false)
	require.NoError(t, err)

	assert.Equal(t, forward, backward)
}

func TestRunSensitivityParallelMatchesSequential(t *testing.T) {
	records, scenarios := sensitivityFixture()
	an := testAnalyzer()

	sequential, err := an.RunSensitivity(context.Background(), records, scenarios, false)
	require.NoError(t, err)
	parallel, err := an.RunSensitivity(context.Background(), records, scenarios, true)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestRunSensitivityPropagatesError(t *testing.T) {
	records, scenarios := sensitivityFixture()
	scenarios = append(scenarios, domain.WeightScenario{
		Name:    "bad",
		Weights: []domain.IndicatorWeight{{Indicator: "Nope", Weight: 1}},
	})

	_, err := testAnalyzer().RunSensitivity(context.Background(), records, scenarios, false)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnknownIndicator, apperrors.CodeOf(err))
}
