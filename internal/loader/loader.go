// Package loader reads the eight input CSV datasets and enforces their
// schema contract before any processing happens. A missing file or
// column is fatal: the pipeline has no fallback data.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cbamcli/internal/config"
	apperrors "cbamcli/internal/errors"
	"cbamcli/pkg/contracts/domain"
)

// Loader reads datasets from a single data directory.
type Loader struct {
	dataDir string
	logger  *slog.Logger
}

// New creates a Loader over dataDir. The directory must exist.
func New(dataDir string, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory not found: %s", dataDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path is not a directory: %s", dataDir)
	}
	return &Loader{dataDir: dataDir, logger: logger}, nil
}

// Load reads one dataset by key, validates its required columns, and
// checks that the country identifier is unique across rows.
func (l *Loader) Load(ctx context.Context, key string) (*domain.Table, error) {
	filename, ok := config.DatasetFiles[key]
	if !ok {
		return nil, fmt.Errorf("unknown dataset key %q", key)
	}
	path := filepath.Join(l.dataDir, filename)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewMissingFile(key, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows tolerated; validated per column access

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewSchema(key, fmt.Sprintf("malformed CSV: %v", err))
	}
	if len(records) == 0 {
		return nil, apperrors.NewSchema(key, "file is empty")
	}

	table := &domain.Table{
		Name:    key,
		Headers: normalizeHeaders(records[0]),
	}
	for _, row := range records[1:] {
		if isBlank(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	if err := l.validate(table); err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "loaded dataset",
		slog.String("dataset", key),
		slog.String("file", filename),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Headers)))
	return table, nil
}

// LoadAll reads every configured dataset in canonical order. The first
// failure aborts the run.
func (l *Loader) LoadAll(ctx context.Context) (map[string]*domain.Table, error) {
	tables := make(map[string]*domain.Table, len(config.DatasetOrder))
	for _, key := range config.DatasetOrder {
		table, err := l.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		tables[key] = table
	}
	l.logger.InfoContext(ctx, "all datasets loaded", slog.Int("count", len(tables)))
	return tables, nil
}

func (l *Loader) validate(table *domain.Table) error {
	var missing []string
	for _, col := range config.RequiredColumns[table.Name] {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewMissingColumns(table.Name, missing)
	}

	// Country identifiers must be unique pre-merge.
	idCol := config.IdentifierColumn[table.Name]
	seen := make(map[string]int, table.Len())
	for i := range table.Rows {
		id, ok := table.Cell(i, idCol)
		if !ok || strings.TrimSpace(id) == "" {
			return apperrors.NewSchema(table.Name, fmt.Sprintf("row %d has empty %s", i+1, idCol))
		}
		id = strings.TrimSpace(id)
		if prev, dup := seen[id]; dup {
			return apperrors.NewSchema(table.Name, fmt.Sprintf("duplicate country identifier %q (rows %d and %d)", id, prev, i+1))
		}
		seen[id] = i + 1
	}
	return nil
}

// normalizeHeaders trims whitespace and strips a UTF-8 BOM the way
// spreadsheet exports commonly prepend one.
func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
