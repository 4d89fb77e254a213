package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbamcli/pkg/contracts/domain"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultDataDir, cfg.Paths.DataDir)
	assert.Equal(t, "inner", cfg.Analysis.JoinPolicy)
	assert.Len(t, cfg.Analysis.Scenarios, 6)

	baseline, ok := cfg.Scenario("baseline")
	require.True(t, ok)
	assert.Equal(t, domain.IndicatorExpCBAMPerGDP, baseline.Weights[0].Indicator)
	assert.InDelta(t, 0.30, baseline.Weights[0].Weight, 1e-12)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScenarioName, cfg.Analysis.DefaultScenario)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
paths:
  data_dir: /srv/cbam/data
analysis:
  join_policy: outer
  aliases:
    VN: VNM
    "Korea, Rep.": KOR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/cbam/data", cfg.Paths.DataDir)
	assert.Equal(t, "outer", cfg.Analysis.JoinPolicy)
	assert.Equal(t, "VNM", cfg.ResolveAlias("VN"))
	assert.Equal(t, "KOR", cfg.ResolveAlias("Korea, Rep."))
	assert.Equal(t, "IDN", cfg.ResolveAlias("IDN")) // passthrough
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644))

	t.Setenv("CBAM_LOGGING_LEVEL", "debug")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad join policy", func(c *Config) { c.Analysis.JoinPolicy = "cross" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"label count mismatch", func(c *Config) { c.Analysis.Categories.Labels = []string{"Low"} }},
		{"unsorted cuts", func(c *Config) { c.Analysis.Categories.Cuts = []float64{0.66, 0.33} }},
		{"quantile cut out of range", func(c *Config) { c.Analysis.Categories.Cuts = []float64{0.33, 1.5} }},
		{"no scenarios", func(c *Config) { c.Analysis.Scenarios = nil }},
		{"unknown default scenario", func(c *Config) { c.Analysis.DefaultScenario = "ghost" }},
		{"duplicate scenario name", func(c *Config) {
			c.Analysis.Scenarios = append(c.Analysis.Scenarios, c.Analysis.Scenarios[0])
		}},
		{"negative weight", func(c *Config) { c.Analysis.Scenarios[0].Weights[0].Weight = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestScenarioWeightsNormalize(t *testing.T) {
	// The published equal_weights scenario sums to 0.996; normalization
	// must preserve its equal proportions.
	cfg := Default()
	equal, ok := cfg.Scenario("equal_weights")
	require.True(t, ok)

	norm := equal.Normalized()
	var sum float64
	for _, w := range norm.Weights {
		assert.InDelta(t, 1.0/6, w.Weight, 1e-9)
		sum += w.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestDatasetConstants(t *testing.T) {
	assert.Len(t, DatasetOrder, 8)
	for _, key := range DatasetOrder {
		assert.Contains(t, DatasetFiles, key)
		assert.Contains(t, RequiredColumns, key)
		assert.Contains(t, IdentifierColumn, key)
	}
}
