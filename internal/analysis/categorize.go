package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"cbamcli/internal/config"
	"cbamcli/pkg/contracts/domain"
)

// Categorize assigns a risk tier to each result according to the
// configured thresholds and returns a new slice; inputs are not
// mutated. In quantile mode the cut points are quantiles of the
// observed score distribution, so categories adapt per scenario; in
// fixed mode they are absolute score cut points.
func (a *Analyzer) Categorize(results []domain.RiskResult, cfg config.CategoryConfig) ([]domain.RiskResult, error) {
	if len(cfg.Labels) != len(cfg.Cuts)+1 {
		return nil, fmt.Errorf("categorize: need %d labels for %d cuts, got %d", len(cfg.Cuts)+1, len(cfg.Cuts), len(cfg.Labels))
	}

	thresholds := make([]float64, len(cfg.Cuts))
	switch cfg.Mode {
	case "fixed":
		copy(thresholds, cfg.Cuts)
	case "quantile":
		scores := make([]float64, len(results))
		for i, r := range results {
			scores[i] = r.Score
		}
		sort.Float64s(scores)
		for i, q := range cfg.Cuts {
			thresholds[i] = quantile(scores, q)
		}
	default:
		return nil, fmt.Errorf("categorize: unknown mode %q", cfg.Mode)
	}

	out := make([]domain.RiskResult, len(results))
	for i, r := range results {
		out[i] = r
		out[i].Category = assign(r.Score, thresholds, cfg.Labels)
	}

	a.logger.Info("categorized risk results",
		slog.String("mode", cfg.Mode),
		slog.Any("thresholds", thresholds))
	return out, nil
}

func assign(score float64, thresholds []float64, labels []string) domain.RiskCategory {
	if math.IsNaN(score) {
		return domain.RiskUnknown
	}
	for i, t := range thresholds {
		if score <= t {
			return domain.RiskCategory(labels[i])
		}
	}
	return domain.RiskCategory(labels[len(labels)-1])
}

// quantile returns the linearly interpolated q-quantile of sorted.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
