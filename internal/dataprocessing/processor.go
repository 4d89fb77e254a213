package dataprocessing

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cbamcli/internal/config"
	apperrors "cbamcli/internal/errors"
	"cbamcli/pkg/contracts/domain"
)

// Processor cleans raw tables into typed records. All methods are pure
// with respect to their inputs; the only side effect is logging.
type Processor struct {
	logger *slog.Logger
}

// New creates a Processor.
func New(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// missingMarkers are the cell values treated as "no data". Rows carrying
// one in a numeric column are dropped with a warning; anything else
// non-numeric is a fatal data quality error.
var missingMarkers = map[string]bool{
	"":    true,
	"..":  true,
	"...": true,
	"N/A": true,
	"NA":  true,
}

// thousandsGrouped matches numbers whose commas separate groups of
// exactly three digits, the only comma usage accepted as a separator.
var thousandsGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseNumeric coerces a cell to float64. row is 1-based over data rows.
// The bool result is false for missing-value markers.
func (p *Processor) parseNumeric(dataset, column string, row int, raw string) (float64, bool, error) {
	s := strings.TrimSpace(raw)
	if missingMarkers[s] {
		return 0, false, nil
	}
	// Spreadsheet exports frequently carry thousands separators. Only a
	// well-formed grouping is stripped; a decimal comma ("1,5") must not
	// silently become a different number.
	if strings.Contains(s, ",") {
		if !thousandsGrouped.MatchString(s) {
			return 0, false, apperrors.NewDataQuality(dataset, column, row, fmt.Errorf("%q is not numeric", raw))
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, apperrors.NewDataQuality(dataset, column, row, fmt.Errorf("%q is not numeric", raw))
	}
	return v, true, nil
}

func (p *Processor) dropRow(dataset, column string, row int) {
	p.logger.Warn("dropping row with missing value",
		slog.String("dataset", dataset),
		slog.String("column", column),
		slog.Int("row", row))
}

// prepareTradeValues extracts country code and export value from a UN
// Comtrade table, converting USD to USD millions. Positive values are
// required: a zero or negative export value cannot feed the exposure
// ratios.
func (p *Processor) prepareTradeValues(t *domain.Table) ([]TradeValue, error) {
	out := make([]TradeValue, 0, t.Len())
	for i := range t.Rows {
		row := i + 1
		code, _ := t.Cell(i, config.ColReporterISO)
		raw, _ := t.Cell(i, config.ColPrimaryValue)
		v, ok, err := p.parseNumeric(t.Name, config.ColPrimaryValue, row, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.dropRow(t.Name, config.ColPrimaryValue, row)
			continue
		}
		if v <= 0 {
			return nil, apperrors.NewDataQuality(t.Name, config.ColPrimaryValue, row, fmt.Errorf("export value must be positive, got %g", v))
		}
		out = append(out, TradeValue{Code: strings.TrimSpace(code), ValueMillions: v / config.ToMillions})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ValueMillions > out[b].ValueMillions })
	p.logger.Info("prepared trade values", slog.String("dataset", t.Name), slog.Int("rows", len(out)))
	return out, nil
}

// PrepareCBAMExports cleans the CBAM-goods export dataset.
func (p *Processor) PrepareCBAMExports(t *domain.Table) ([]TradeValue, error) {
	return p.prepareTradeValues(t)
}

// PrepareTotalExports cleans the total exports dataset.
func (p *Processor) PrepareTotalExports(t *domain.Table) ([]TradeValue, error) {
	return p.prepareTradeValues(t)
}

// PrepareGDP cleans the GDP dataset. GDP is a divisor downstream, so a
// non-positive value is a data quality failure, not a droppable row.
func (p *Processor) PrepareGDP(t *domain.Table) ([]GDPRecord, error) {
	out := make([]GDPRecord, 0, t.Len())
	for i := range t.Rows {
		row := i + 1
		code, _ := t.Cell(i, config.ColCountryCode)
		raw, _ := t.Cell(i, config.ColGDP2019)
		v, ok, err := p.parseNumeric(t.Name, config.ColGDP2019, row, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.dropRow(t.Name, config.ColGDP2019, row)
			continue
		}
		if v <= 0 {
			return nil, apperrors.NewDataQuality(t.Name, config.ColGDP2019, row, fmt.Errorf("GDP must be positive, got %g", v))
		}
		out = append(out, GDPRecord{Code: strings.TrimSpace(code), GDPMillions: v})
	}
	p.logger.Info("prepared GDP", slog.Int("rows", len(out)))
	return out, nil
}

// PrepareCarbonIntensity cleans the carbon intensity dataset and sorts
// by intensity descending, matching the source presentation.
func (p *Processor) PrepareCarbonIntensity(t *domain.Table) ([]CarbonRecord, error) {
	out := make([]CarbonRecord, 0, t.Len())
	for i := range t.Rows {
		row := i + 1
		code, _ := t.Cell(i, config.ColCountryCode)
		name, _ := t.Cell(i, config.ColCountryName)
		raw, _ := t.Cell(i, config.ColCarbonIntensity)
		v, ok, err := p.parseNumeric(t.Name, config.ColCarbonIntensity, row, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.dropRow(t.Name, config.ColCarbonIntensity, row)
			continue
		}
		out = append(out, CarbonRecord{
			Code:      strings.TrimSpace(code),
			Name:      strings.TrimSpace(name),
			Intensity: v,
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Intensity > out[b].Intensity })
	p.logger.Info("prepared carbon intensity", slog.Int("rows", len(out)))
	return out, nil
}

// PrepareSPI cleans the Statistical Performance Indicator dataset.
func (p *Processor) PrepareSPI(t *domain.Table) ([]SPIRecord, error) {
	out := make([]SPIRecord, 0, t.Len())
	for i := range t.Rows {
		row := i + 1
		code, _ := t.Cell(i, config.ColCountryCode)
		raw, _ := t.Cell(i, config.ColYear2019)
		v, ok, err := p.parseNumeric(t.Name, config.ColYear2019, row, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.dropRow(t.Name, config.ColYear2019, row)
			continue
		}
		out = append(out, SPIRecord{Code: strings.TrimSpace(code), Score: v})
	}
	p.logger.Info("prepared SPI", slog.Int("rows", len(out)))
	return out, nil
}

// PreparePatents sums yearly patent application counts over the
// configured year range. Missing year cells count as zero applications;
// a country with no year columns at all is a schema problem.
func (p *Processor) PreparePatents(t *domain.Table) ([]PatentRecord, error) {
	var yearCols []string
	for y := config.PatentYearFirst; y <= config.PatentYearLast; y++ {
		col := strconv.Itoa(y)
		if t.HasColumn(col) {
			yearCols = append(yearCols, col)
		}
	}
	if len(yearCols) == 0 {
		return nil, apperrors.NewSchema(t.Name, fmt.Sprintf("no year columns in range %d-%d", config.PatentYearFirst, config.PatentYearLast))
	}

	out := make([]PatentRecord, 0, t.Len())
	for i := range t.Rows {
		row := i + 1
		code, _ := t.Cell(i, config.ColOfficeCode)
		name, _ := t.Cell(i, config.ColOffice)
		var total float64
		for _, col := range yearCols {
			raw, _ := t.Cell(i, col)
			v, ok, err := p.parseNumeric(t.Name, col, row, raw)
			if err != nil {
				return nil, err
			}
			if ok {
				total += v
			}
		}
		out = append(out, PatentRecord{
			Code:  strings.TrimSpace(code),
			Name:  strings.TrimSpace(name),
			Total: total,
		})
	}
	p.logger.Info("prepared patents",
		slog.Int("rows", len(out)),
		slog.Int("year_columns", len(yearCols)))
	return out, nil
}

// PreparePopulation cleans the population dataset, converting to
// hundreds of thousands. Population is a divisor downstream.
func (p *Processor) PreparePopulation(t *domain.Table) ([]PopulationRecord, error) {
	out := make([]PopulationRecord, 0, t.Len())
	for i := range t.Rows {
		row := i + 1
		code, _ := t.Cell(i, config.ColCountryCode)
		raw, _ := t.Cell(i, config.ColYear2019)
		v, ok, err := p.parseNumeric(t.Name, config.ColYear2019, row, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.dropRow(t.Name, config.ColYear2019, row)
			continue
		}
		if v <= 0 {
			return nil, apperrors.NewDataQuality(t.Name, config.ColYear2019, row, fmt.Errorf("population must be positive, got %g", v))
		}
		out = append(out, PopulationRecord{Code: strings.TrimSpace(code), HundredThousands: v / config.ToHundredThousands})
	}
	p.logger.Info("prepared population", slog.Int("rows", len(out)))
	return out, nil
}

// PrepareTradeElasticity cleans the trade elasticity dataset.
func (p *Processor) PrepareTradeElasticity(t *domain.Table) ([]ElasticityRecord, error) {
	out := make([]ElasticityRecord, 0, t.Len())
	for i := range t.Rows {
		row := i + 1
		code, _ := t.Cell(i, config.ColCountryCode)
		raw, _ := t.Cell(i, config.ColTradeElasticity)
		v, ok, err := p.parseNumeric(t.Name, config.ColTradeElasticity, row, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.dropRow(t.Name, config.ColTradeElasticity, row)
			continue
		}
		out = append(out, ElasticityRecord{Code: strings.TrimSpace(code), Elasticity: v})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Elasticity > out[b].Elasticity })
	p.logger.Info("prepared trade elasticity", slog.Int("rows", len(out)))
	return out, nil
}

// PrepareAll cleans every raw table into the typed bundle the merge
// consumes.
func (p *Processor) PrepareAll(tables map[string]*domain.Table) (CleanDatasets, error) {
	var clean CleanDatasets
	var err error

	if clean.CBAMExports, err = p.PrepareCBAMExports(tables[config.DatasetCBAMExports]); err != nil {
		return CleanDatasets{}, err
	}
	if clean.TotalExports, err = p.PrepareTotalExports(tables[config.DatasetTotalExports]); err != nil {
		return CleanDatasets{}, err
	}
	if clean.GDP, err = p.PrepareGDP(tables[config.DatasetGDP]); err != nil {
		return CleanDatasets{}, err
	}
	if clean.CarbonIntensity, err = p.PrepareCarbonIntensity(tables[config.DatasetCarbonIntensity]); err != nil {
		return CleanDatasets{}, err
	}
	if clean.SPI, err = p.PrepareSPI(tables[config.DatasetSPI]); err != nil {
		return CleanDatasets{}, err
	}
	if clean.Patents, err = p.PreparePatents(tables[config.DatasetPatents]); err != nil {
		return CleanDatasets{}, err
	}
	if clean.Population, err = p.PreparePopulation(tables[config.DatasetPopulation]); err != nil {
		return CleanDatasets{}, err
	}
	if clean.TradeElasticity, err = p.PrepareTradeElasticity(tables[config.DatasetTradeElasticity]); err != nil {
		return CleanDatasets{}, err
	}
	return clean, nil
}
