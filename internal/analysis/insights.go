package analysis

import (
	"fmt"
	"math"
	"sort"

	"cbamcli/pkg/contracts/domain"
)

// RankCountries returns a copy of results sorted by score descending
// (highest risk first) with 1-based ranks assigned.
func (a *Analyzer) RankCountries(results []domain.RiskResult) []domain.RiskResult {
	out := make([]domain.RiskResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Stats summarizes one scenario's score distribution.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SummaryStats computes descriptive statistics over the risk scores.
func (a *Analyzer) SummaryStats(results []domain.RiskResult) Stats {
	n := len(results)
	if n == 0 {
		return Stats{}
	}
	scores := make([]float64, n)
	var sum float64
	for i, r := range results {
		scores[i] = r.Score
		sum += r.Score
	}
	sort.Float64s(scores)

	mean := sum / float64(n)
	var sq float64
	for _, s := range scores {
		d := s - mean
		sq += d * d
	}
	var std float64
	if n > 1 {
		std = math.Sqrt(sq / float64(n-1))
	}
	return Stats{
		Count:  n,
		Mean:   mean,
		Median: quantile(scores, 0.5),
		StdDev: std,
		Min:    scores[0],
		Max:    scores[n-1],
	}
}

// ScenarioRanks is one country's rank under each scenario, plus the
// average used to order the comparison table.
type ScenarioRanks struct {
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Ranks   map[string]int `json:"ranks"`
	AvgRank float64        `json:"avg_rank"`
}

// CompareScenarios builds a cross-scenario ranking comparison: each
// country's rank under every scenario and the average rank, ordered by
// average (most at-risk first), truncated to topN (0 means all).
func (a *Analyzer) CompareScenarios(byScenario map[string][]domain.RiskResult, topN int) []ScenarioRanks {
	rows := map[string]*ScenarioRanks{}
	var order []string

	for name, results := range byScenario {
		ranked := a.RankCountries(results)
		for _, r := range ranked {
			row, ok := rows[r.Code]
			if !ok {
				row = &ScenarioRanks{Code: r.Code, Name: r.Name, Ranks: map[string]int{}}
				rows[r.Code] = row
				order = append(order, r.Code)
			}
			row.Ranks[name] = r.Rank
		}
	}

	out := make([]ScenarioRanks, 0, len(order))
	for _, code := range order {
		row := rows[code]
		var sum float64
		for _, rank := range row.Ranks {
			sum += float64(rank)
		}
		if len(row.Ranks) > 0 {
			row.AvgRank = sum / float64(len(row.Ranks))
		}
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvgRank != out[j].AvgRank {
			return out[i].AvgRank < out[j].AvgRank
		}
		return out[i].Code < out[j].Code
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// RiskDrivers returns a country's contributions sorted by weighted
// value descending, the per-country view of what drives its score.
func (a *Analyzer) RiskDrivers(results []domain.RiskResult, code string) ([]domain.Contribution, error) {
	for _, r := range results {
		if r.Code == code {
			drivers := make([]domain.Contribution, len(r.Contributions))
			copy(drivers, r.Contributions)
			sort.SliceStable(drivers, func(i, j int) bool { return drivers[i].Weighted > drivers[j].Weighted })
			return drivers, nil
		}
	}
	return nil, fmt.Errorf("country not found: %s", code)
}

// CorrelationMatrix computes pairwise Pearson correlations between the
// given indicator columns. The matrix is indexed in indicator order.
func (a *Analyzer) CorrelationMatrix(records []domain.CountryRecord, indicators []domain.Indicator) ([][]float64, error) {
	cols := make([][]float64, len(indicators))
	for i, ind := range indicators {
		cols[i] = make([]float64, len(records))
		for j, rec := range records {
			v, ok := rec.Indicators[ind]
			if !ok {
				return nil, fmt.Errorf("record %s missing indicator %s", rec.Code, ind)
			}
			cols[i][j] = v
		}
	}

	matrix := make([][]float64, len(indicators))
	for i := range indicators {
		matrix[i] = make([]float64, len(indicators))
		for j := range indicators {
			matrix[i][j] = pearson(cols[i], cols[j])
		}
	}
	return matrix, nil
}

// pearson returns the correlation of two equal-length series, or NaN
// when either series is constant.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return math.NaN()
	}
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
