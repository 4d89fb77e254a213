package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"

	apperrors "cbamcli/internal/errors"
	"cbamcli/pkg/contracts/domain"
)

// Normalize rescales each indicator column to [0,1] via
// (x-min)/(max-min) and returns new records; inputs are not mutated.
// A constant column (max == min) is defined as all zeros and reported
// through the ConstantColumn notices rather than dividing by zero.
func (p *Processor) Normalize(records []domain.CountryRecord, indicators []domain.Indicator) ([]domain.CountryRecord, []apperrors.ConstantColumn, error) {
	out := make([]domain.CountryRecord, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	if len(out) == 0 {
		return out, nil, nil
	}

	var constants []apperrors.ConstantColumn
	for _, ind := range indicators {
		min, max := math.Inf(1), math.Inf(-1)
		for _, rec := range out {
			v, ok := rec.Indicators[ind]
			if !ok {
				return nil, nil, fmt.Errorf("record %s missing indicator %s; merge must run first", rec.Code, ind)
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}

		if max == min {
			constants = append(constants, apperrors.ConstantColumn{
				Indicator: string(ind),
				Value:     min,
				Rows:      len(out),
			})
			for i := range out {
				out[i].Indicators[ind] = 0
			}
			p.logger.Warn("constant indicator column normalized to zero",
				slog.String("indicator", string(ind)),
				slog.Float64("value", min))
			continue
		}

		span := max - min
		for i := range out {
			out[i].Indicators[ind] = (out[i].Indicators[ind] - min) / span
		}
	}

	p.logger.Info("normalized indicators",
		slog.Int("indicators", len(indicators)),
		slog.Int("countries", len(out)),
		slog.Int("constant_columns", len(constants)))
	return out, constants, nil
}

// AddComplements adds the 1-x companion for each complement-source
// indicator. It expects normalized values; the complements feed the
// weight scenarios directly.
func (p *Processor) AddComplements(records []domain.CountryRecord) []domain.CountryRecord {
	out := make([]domain.CountryRecord, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
		for _, src := range domain.ComplementSources {
			if v, ok := out[i].Indicators[src]; ok {
				out[i].Indicators[src.Compl()] = 1 - v
			}
		}
	}
	return out
}
