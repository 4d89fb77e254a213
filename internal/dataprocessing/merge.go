package dataprocessing

import (
	"fmt"
	"log/slog"

	"cbamcli/internal/config"
	apperrors "cbamcli/internal/errors"
	"cbamcli/pkg/contracts/domain"
)

// JoinPolicy controls what happens to a country missing an indicator.
type JoinPolicy string

const (
	// JoinInner drops countries missing any indicator (listed, not silent).
	JoinInner JoinPolicy = "inner"
	// JoinOuter keeps them, imputing each missing indicator with the
	// mean of the observed values for that indicator.
	JoinOuter JoinPolicy = "outer"
)

// MergeResult is the comprehensive table plus everything the merge had
// to decide along the way.
type MergeResult struct {
	Records    []domain.CountryRecord
	Mismatches []apperrors.CountryMismatch
	// Dropped lists spine countries removed under the inner policy,
	// with the indicators they were missing.
	Dropped map[string][]domain.Indicator
	// Imputed lists indicators filled with the column mean under the
	// outer policy, per country code.
	Imputed map[string][]domain.Indicator
}

// BuildComprehensive joins the cleaned datasets into one table keyed by
// ISO3 code. The carbon intensity table is the spine: it fixes the
// country set and the row order, so the result does not depend on the
// order the other datasets are indexed in.
//
// Derived indicators:
//
//	ExpCBAMperGDP = CBAM exports (millions) / GDP (millions)
//	PctExpCBAM    = CBAM exports (millions) / total exports (millions)
//	PatPerCap     = total patents / population (hundreds of thousands)
func (p *Processor) BuildComprehensive(clean CleanDatasets, resolve func(string) string, policy JoinPolicy) (*MergeResult, error) {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	if policy != JoinInner && policy != JoinOuter {
		return nil, fmt.Errorf("unknown join policy %q", policy)
	}

	res := &MergeResult{
		Dropped: map[string][]domain.Indicator{},
		Imputed: map[string][]domain.Indicator{},
	}

	// Alias resolution can only be applied here, after the loader's
	// per-table uniqueness check, so a table carrying both an alias and
	// its canonical code ("VN" and "VNM") collides only now. That is a
	// schema violation: letting the later row win would silently decide
	// which source value survives.
	spine := make(map[string]bool, len(clean.CarbonIntensity))
	spineOrigin := make(map[string]string, len(clean.CarbonIntensity))
	for _, c := range clean.CarbonIntensity {
		resolved := resolve(c.Code)
		if prev, dup := spineOrigin[resolved]; dup {
			return nil, apperrors.NewSchema(config.DatasetCarbonIntensity,
				fmt.Sprintf("identifiers %q and %q both resolve to country code %s", prev, c.Code, resolved))
		}
		spineOrigin[resolved] = c.Code
		spine[resolved] = true
	}

	// Index every non-spine source by resolved code, collecting rows
	// that point at no spine country and rejecting identifiers that
	// collide after resolution.
	origins := make(map[string]string)
	index := func(dataset, code, name string, dest map[string]float64, value float64) error {
		resolved := resolve(code)
		if !spine[resolved] {
			res.Mismatches = append(res.Mismatches, apperrors.CountryMismatch{
				Dataset:    dataset,
				Identifier: code,
				Name:       name,
			})
			return nil
		}
		key := dataset + ":" + resolved
		if prev, dup := origins[key]; dup {
			return apperrors.NewSchema(dataset,
				fmt.Sprintf("identifiers %q and %q both resolve to country code %s", prev, code, resolved))
		}
		origins[key] = code
		dest[resolved] = value
		return nil
	}

	cbam := make(map[string]float64, len(clean.CBAMExports))
	for _, r := range clean.CBAMExports {
		if err := index(config.DatasetCBAMExports, r.Code, "", cbam, r.ValueMillions); err != nil {
			return nil, err
		}
	}
	totals := make(map[string]float64, len(clean.TotalExports))
	for _, r := range clean.TotalExports {
		if err := index(config.DatasetTotalExports, r.Code, "", totals, r.ValueMillions); err != nil {
			return nil, err
		}
	}
	gdp := make(map[string]float64, len(clean.GDP))
	for _, r := range clean.GDP {
		if err := index(config.DatasetGDP, r.Code, "", gdp, r.GDPMillions); err != nil {
			return nil, err
		}
	}
	spi := make(map[string]float64, len(clean.SPI))
	for _, r := range clean.SPI {
		if err := index(config.DatasetSPI, r.Code, "", spi, r.Score); err != nil {
			return nil, err
		}
	}
	patents := make(map[string]float64, len(clean.Patents))
	for _, r := range clean.Patents {
		if err := index(config.DatasetPatents, r.Code, r.Name, patents, r.Total); err != nil {
			return nil, err
		}
	}
	population := make(map[string]float64, len(clean.Population))
	for _, r := range clean.Population {
		if err := index(config.DatasetPopulation, r.Code, "", population, r.HundredThousands); err != nil {
			return nil, err
		}
	}
	elasticity := make(map[string]float64, len(clean.TradeElasticity))
	for _, r := range clean.TradeElasticity {
		if err := index(config.DatasetTradeElasticity, r.Code, "", elasticity, r.Elasticity); err != nil {
			return nil, err
		}
	}

	// Assemble one record per spine country with whatever indicators
	// its sources provide.
	for _, c := range clean.CarbonIntensity {
		code := resolve(c.Code)
		rec := domain.CountryRecord{
			Code:       code,
			Name:       c.Name,
			Indicators: map[domain.Indicator]float64{domain.IndicatorCarbonIntensity: c.Intensity},
		}
		if v, gdpV := cbam[code], gdp[code]; hasBoth(cbam, gdp, code) && gdpV != 0 {
			rec.Indicators[domain.IndicatorExpCBAMPerGDP] = v / gdpV
		}
		if v, totV := cbam[code], totals[code]; hasBoth(cbam, totals, code) && totV != 0 {
			rec.Indicators[domain.IndicatorPctExpCBAM] = v / totV
		}
		if v, ok := spi[code]; ok {
			rec.Indicators[domain.IndicatorSPIScore] = v
		}
		if pat, popV := patents[code], population[code]; hasBoth(patents, population, code) && popV != 0 {
			rec.Indicators[domain.IndicatorPatPerCap] = pat / popV
		}
		if v, ok := elasticity[code]; ok {
			rec.Indicators[domain.IndicatorTradeElast] = v
		}
		res.Records = append(res.Records, rec)
	}

	if err := p.applyJoinPolicy(res, policy); err != nil {
		return nil, err
	}

	p.logger.Info("comprehensive table built",
		slog.Int("countries", len(res.Records)),
		slog.Int("mismatches", len(res.Mismatches)),
		slog.Int("dropped", len(res.Dropped)),
		slog.Int("imputed", len(res.Imputed)),
		slog.String("policy", string(policy)))
	if len(res.Mismatches) > 0 {
		p.logger.Warn("unmatched countries; extend the alias configuration to resolve",
			slog.String("mismatches", apperrors.FormatMismatches(res.Mismatches)))
	}
	return res, nil
}

func hasBoth(a, b map[string]float64, code string) bool {
	_, okA := a[code]
	_, okB := b[code]
	return okA && okB
}

// applyJoinPolicy enforces the completeness invariant: after it runs,
// every record carries every analysis indicator.
func (p *Processor) applyJoinPolicy(res *MergeResult, policy JoinPolicy) error {
	switch policy {
	case JoinInner:
		kept := res.Records[:0]
		for _, rec := range res.Records {
			missing := missingIndicators(rec)
			if len(missing) == 0 {
				kept = append(kept, rec)
				continue
			}
			res.Dropped[rec.Code] = missing
			p.logger.Warn("dropping country missing indicators",
				slog.String("country", rec.Code),
				slog.Any("missing", missing))
		}
		res.Records = kept

	case JoinOuter:
		means := make(map[domain.Indicator]float64, len(domain.AnalysisIndicators))
		for _, ind := range domain.AnalysisIndicators {
			var sum float64
			var n int
			for _, rec := range res.Records {
				if v, ok := rec.Indicators[ind]; ok {
					sum += v
					n++
				}
			}
			if n == 0 {
				return fmt.Errorf("indicator %s has no observed values to impute from", ind)
			}
			means[ind] = sum / float64(n)
		}
		for i := range res.Records {
			missing := missingIndicators(res.Records[i])
			for _, ind := range missing {
				res.Records[i].Indicators[ind] = means[ind]
			}
			if len(missing) > 0 {
				res.Imputed[res.Records[i].Code] = missing
				p.logger.Warn("imputed missing indicators with column mean",
					slog.String("country", res.Records[i].Code),
					slog.Any("indicators", missing))
			}
		}
	}
	return nil
}

func missingIndicators(rec domain.CountryRecord) []domain.Indicator {
	var missing []domain.Indicator
	for _, ind := range domain.AnalysisIndicators {
		if _, ok := rec.Indicators[ind]; !ok {
			missing = append(missing, ind)
		}
	}
	return missing
}
