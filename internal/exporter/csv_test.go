package exporter

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbamcli/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVWithBOM(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, testLogger())

	err := w.WriteCSV("out.csv", WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	rows := readCSV(t, filepath.Join(dir, "out.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func exportFixture() ([]domain.CountryRecord, []domain.RiskResult, []domain.Indicator) {
	indicators := []domain.Indicator{"X", "Y"}
	records := []domain.CountryRecord{
		{Code: "IDN", Name: "Indonesia", Indicators: map[domain.Indicator]float64{"X": 1.0, "Y": 0.5}},
		{Code: "VNM", Name: "Vietnam", Indicators: map[domain.Indicator]float64{"X": 0.0, "Y": 0.25}},
	}
	results := []domain.RiskResult{
		{Code: "IDN", Name: "Indonesia", Score: 0.75, Rank: 1, Category: domain.RiskHigh, DominantFactor: "X"},
		{Code: "VNM", Name: "Vietnam", Score: 0.125, Rank: 2, Category: domain.RiskLow, DominantFactor: "Y"},
	}
	return records, results, indicators
}

func TestWriteRiskResults(t *testing.T) {
	dir := t.TempDir()
	records, results, indicators := exportFixture()

	err := NewCSVWriter(dir, testLogger()).WriteRiskResults("risk.csv", records, results, indicators)
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(dir, "risk.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Country Code", "Country Name", "X", "Y", "RiskIndex", "Rank", "RiskCategory", "DominantFactor"}, rows[0])
	assert.Equal(t, []string{"IDN", "Indonesia", "1.000000", "0.500000", "0.750000", "1", "High", "X"}, rows[1])
	assert.Equal(t, []string{"VNM", "Vietnam", "0.000000", "0.250000", "0.125000", "2", "Low", "Y"}, rows[2])
}

func TestWriteRiskResultsUnmatchedRecord(t *testing.T) {
	dir := t.TempDir()
	_, results, indicators := exportFixture()

	err := NewCSVWriter(dir, testLogger()).WriteRiskResults("risk.csv", nil, results, indicators)
	assert.Error(t, err)
}

func TestWriteSensitivity(t *testing.T) {
	dir := t.TempDir()
	byScenario := map[string][]domain.RiskResult{
		"baseline": {
			{Code: "IDN", Name: "Indonesia", Score: 0.8},
			{Code: "VNM", Name: "Vietnam", Score: 0.2},
		},
		"equal_weights": {
			{Code: "IDN", Name: "Indonesia", Score: 0.6},
			{Code: "VNM", Name: "Vietnam", Score: 0.4},
		},
	}

	err := NewCSVWriter(dir, testLogger()).WriteSensitivity("sens.csv", byScenario, []string{"baseline", "equal_weights"})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(dir, "sens.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Country Code", "Country Name", "Index_baseline", "Index_equal_weights"}, rows[0])
	assert.Equal(t, []string{"IDN", "Indonesia", "0.800000", "0.600000"}, rows[1])
	assert.Equal(t, []string{"VNM", "Vietnam", "0.200000", "0.400000"}, rows[2])
}

func TestWriteSensitivityMissingScenario(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, testLogger())

	err := w.WriteSensitivity("sens.csv", map[string][]domain.RiskResult{}, []string{"baseline"})
	assert.Error(t, err)

	err = w.WriteSensitivity("sens.csv", nil, nil)
	assert.Error(t, err)
}
