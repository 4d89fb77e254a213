package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"cbamcli/pkg/contracts/domain"
)

// CSVWriter writes result tables under a single output directory.
type CSVWriter struct {
	outDir string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at outDir.
func NewCSVWriter(outDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outDir: outDir, logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // add UTF-8 BOM so Excel detects the encoding
}

// WriteCSV writes one table to filename inside the output directory.
func (w *CSVWriter) WriteCSV(filename string, options WriteOptions) error {
	fullPath := filepath.Join(w.outDir, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	w.logger.Info("wrote CSV file",
		slog.String("path", fullPath),
		slog.Int("rows", len(options.Records)))
	return writer.Error()
}

// riskResultHeaders builds the column set of the main results table.
func riskResultHeaders(indicators []domain.Indicator) []string {
	headers := []string{"Country Code", "Country Name"}
	for _, ind := range indicators {
		headers = append(headers, string(ind))
	}
	return append(headers, "RiskIndex", "Rank", "RiskCategory", "DominantFactor")
}

// WriteRiskResults writes the main results table: one row per country
// with its normalized indicators, default-scenario index, rank,
// category, and dominant factor. Row order follows results (ranked).
func (w *CSVWriter) WriteRiskResults(filename string, records []domain.CountryRecord, results []domain.RiskResult, indicators []domain.Indicator) error {
	byCode := make(map[string]domain.CountryRecord, len(records))
	for _, rec := range records {
		byCode[rec.Code] = rec
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rec, ok := byCode[r.Code]
		if !ok {
			return fmt.Errorf("result %s has no matching record", r.Code)
		}
		row := []string{r.Code, r.Name}
		for _, ind := range indicators {
			row = append(row, formatFloat(rec.Indicators[ind]))
		}
		row = append(row,
			formatFloat(r.Score),
			strconv.Itoa(r.Rank),
			string(r.Category),
			string(r.DominantFactor),
		)
		rows = append(rows, row)
	}

	return w.WriteCSV(filename, WriteOptions{
		Headers:   riskResultHeaders(indicators),
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteSensitivity writes the scenario comparison table: one row per
// country, one Index_<scenario> column per scenario. Countries appear
// in the order of the first scenario's results.
func (w *CSVWriter) WriteSensitivity(filename string, byScenario map[string][]domain.RiskResult, scenarioOrder []string) error {
	if len(scenarioOrder) == 0 {
		return fmt.Errorf("no scenarios to export")
	}
	first, ok := byScenario[scenarioOrder[0]]
	if !ok {
		return fmt.Errorf("scenario %q missing from results", scenarioOrder[0])
	}

	scores := make(map[string]map[string]float64, len(scenarioOrder))
	for name, results := range byScenario {
		m := make(map[string]float64, len(results))
		for _, r := range results {
			m[r.Code] = r.Score
		}
		scores[name] = m
	}

	headers := []string{"Country Code", "Country Name"}
	for _, name := range scenarioOrder {
		headers = append(headers, "Index_"+name)
	}

	rows := make([][]string, 0, len(first))
	for _, r := range first {
		row := []string{r.Code, r.Name}
		for _, name := range scenarioOrder {
			score, ok := scores[name][r.Code]
			if !ok {
				return fmt.Errorf("scenario %q has no result for %s", name, r.Code)
			}
			row = append(row, formatFloat(score))
		}
		rows = append(rows, row)
	}

	return w.WriteCSV(filename, WriteOptions{
		Headers:   headers,
		Records:   rows,
		BOMPrefix: true,
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
