package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"cbamcli/internal/config"
	"cbamcli/pkg/contracts/domain"
)

// ExcelWriter writes the combined analysis workbook.
type ExcelWriter struct {
	outDir string
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer rooted at outDir.
func NewExcelWriter(outDir string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{outDir: outDir, logger: logger}
}

const (
	sheetRiskAnalysis = "Risk Analysis"
	sheetSensitivity  = "Sensitivity"
	sheetMetadata     = "Metadata"
)

// WriteWorkbook writes one workbook holding the main results table, the
// sensitivity matrix, and run metadata. Returns the run ID stamped into
// the metadata sheet.
func (w *ExcelWriter) WriteWorkbook(filename string, records []domain.CountryRecord, results []domain.RiskResult, indicators []domain.Indicator, byScenario map[string][]domain.RiskResult, scenarioOrder []string) (string, error) {
	runID := uuid.New().String()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetRiskAnalysis)
	if err := w.writeRiskSheet(f, records, results, indicators); err != nil {
		return "", err
	}

	if _, err := f.NewSheet(sheetSensitivity); err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	if err := w.writeSensitivitySheet(f, byScenario, scenarioOrder); err != nil {
		return "", err
	}

	if _, err := f.NewSheet(sheetMetadata); err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	w.writeMetadataSheet(f, runID, scenarioOrder, len(results))

	fullPath := filepath.Join(w.outDir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("wrote Excel workbook",
		slog.String("path", fullPath),
		slog.String("run_id", runID))
	return runID, nil
}

func (w *ExcelWriter) writeRiskSheet(f *excelize.File, records []domain.CountryRecord, results []domain.RiskResult, indicators []domain.Indicator) error {
	byCode := make(map[string]domain.CountryRecord, len(records))
	for _, rec := range records {
		byCode[rec.Code] = rec
	}

	headers := riskResultHeaders(indicators)
	for col, h := range headers {
		if err := setCell(f, sheetRiskAnalysis, col, 0, h); err != nil {
			return err
		}
	}
	for i, r := range results {
		rec, ok := byCode[r.Code]
		if !ok {
			return fmt.Errorf("result %s has no matching record", r.Code)
		}
		values := []interface{}{r.Code, r.Name}
		for _, ind := range indicators {
			values = append(values, rec.Indicators[ind])
		}
		values = append(values, r.Score, r.Rank, string(r.Category), string(r.DominantFactor))
		for col, v := range values {
			if err := setCell(f, sheetRiskAnalysis, col, i+1, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ExcelWriter) writeSensitivitySheet(f *excelize.File, byScenario map[string][]domain.RiskResult, scenarioOrder []string) error {
	if len(scenarioOrder) == 0 {
		return fmt.Errorf("no scenarios to export")
	}
	first, ok := byScenario[scenarioOrder[0]]
	if !ok {
		return fmt.Errorf("scenario %q missing from results", scenarioOrder[0])
	}

	headers := []string{"Country Code", "Country Name"}
	for _, name := range scenarioOrder {
		headers = append(headers, "Index_"+name)
	}
	for col, h := range headers {
		if err := setCell(f, sheetSensitivity, col, 0, h); err != nil {
			return err
		}
	}

	scores := make(map[string]map[string]float64, len(scenarioOrder))
	for name, results := range byScenario {
		m := make(map[string]float64, len(results))
		for _, r := range results {
			m[r.Code] = r.Score
		}
		scores[name] = m
	}

	for i, r := range first {
		values := []interface{}{r.Code, r.Name}
		for _, name := range scenarioOrder {
			values = append(values, scores[name][r.Code])
		}
		for col, v := range values {
			if err := setCell(f, sheetSensitivity, col, i+1, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ExcelWriter) writeMetadataSheet(f *excelize.File, runID string, scenarioOrder []string, countries int) {
	rows := [][]interface{}{
		{"Application", config.AppName},
		{"Version", config.AppVersion},
		{"Run ID", runID},
		{"Generated At", time.Now().UTC().Format(time.RFC3339)},
		{"Countries", countries},
		{"Scenarios", len(scenarioOrder)},
	}
	for i, row := range rows {
		for col, v := range row {
			// Metadata cells are best-effort; coordinate errors cannot
			// occur for this fixed 2-column layout.
			_ = setCell(f, sheetMetadata, col, i, v)
		}
	}
}

// setCell writes value at zero-based (col, row) on sheet.
func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}
	return f.SetCellValue(sheet, cell, value)
}
