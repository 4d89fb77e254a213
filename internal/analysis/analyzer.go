package analysis

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "cbamcli/internal/errors"
	"cbamcli/pkg/contracts/domain"
)

// Analyzer computes risk indices over the normalized table.
type Analyzer struct {
	logger *slog.Logger
}

// New creates an Analyzer.
func New(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// WeightedIndex computes one RiskResult per country: the dot product of
// the country's normalized indicator vector with the scenario's weight
// vector. Weights are treated as relative proportions and rescaled to
// sum to 1 before the product. Every indicator the scenario references
// must be present on every record, otherwise the scenario is
// misconfigured and the run fails with an UNKNOWN_INDICATOR error.
//
// The result preserves input record order. The dominant factor is the
// indicator with the largest weighted contribution; ties go to the
// indicator declared first in the scenario.
func (a *Analyzer) WeightedIndex(records []domain.CountryRecord, scenario domain.WeightScenario) ([]domain.RiskResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, apperrors.NewConfig("invalid weight scenario", err)
	}
	norm := scenario.Normalized()

	// Validate the full indicator set up front so a bad scenario fails
	// before producing partial results.
	for _, rec := range records {
		for _, w := range norm.Weights {
			if _, ok := rec.Indicators[w.Indicator]; !ok {
				return nil, apperrors.NewUnknownIndicator(scenario.Name, string(w.Indicator))
			}
		}
	}

	results := make([]domain.RiskResult, 0, len(records))
	for _, rec := range records {
		result := domain.RiskResult{
			Code:          rec.Code,
			Name:          rec.Name,
			Scenario:      scenario.Name,
			Contributions: make([]domain.Contribution, 0, len(norm.Weights)),
		}
		var dominant domain.Indicator
		best := -1.0
		for _, w := range norm.Weights {
			value := rec.Indicators[w.Indicator]
			weighted := w.Weight * value
			result.Score += weighted
			result.Contributions = append(result.Contributions, domain.Contribution{
				Indicator: w.Indicator,
				Weight:    w.Weight,
				Value:     value,
				Weighted:  weighted,
			})
			// Strict > keeps the earliest-declared indicator on ties.
			if weighted > best {
				best = weighted
				dominant = w.Indicator
			}
		}
		result.DominantFactor = dominant
		results = append(results, result)
	}

	a.logger.Info("computed weighted index",
		slog.String("scenario", scenario.Name),
		slog.Int("countries", len(results)),
		slog.Int("components", len(norm.Weights)))
	return results, nil
}

// RunSensitivity evaluates every scenario against the same normalized
// table. Scenario runs are independent, so the per-scenario results are
// identical regardless of execution order; parallel only changes wall
// time.
func (a *Analyzer) RunSensitivity(ctx context.Context, records []domain.CountryRecord, scenarios []domain.WeightScenario, parallel bool) (map[string][]domain.RiskResult, error) {
	out := make(map[string][]domain.RiskResult, len(scenarios))

	if !parallel {
		for _, scenario := range scenarios {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results, err := a.WeightedIndex(records, scenario)
			if err != nil {
				return nil, err
			}
			out[scenario.Name] = results
		}
	} else {
		var mu sync.Mutex
		g, _ := errgroup.WithContext(ctx)
		for _, scenario := range scenarios {
			scenario := scenario
			g.Go(func() error {
				results, err := a.WeightedIndex(records, scenario)
				if err != nil {
					return err
				}
				mu.Lock()
				out[scenario.Name] = results
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	a.logger.InfoContext(ctx, "sensitivity analysis completed",
		slog.Int("scenarios", len(scenarios)),
		slog.Bool("parallel", parallel))
	return out, nil
}
