package domain

import "fmt"

// IndicatorWeight pairs one indicator with its weight inside a scenario.
type IndicatorWeight struct {
	Indicator Indicator `json:"indicator" yaml:"indicator"`
	Weight    float64   `json:"weight" yaml:"weight"`
}

// WeightScenario is a named weighting of indicators used to compute the
// composite risk index. Weights is ordered: declaration order breaks
// dominant-factor ties, so it must be a slice, not a map.
type WeightScenario struct {
	Name    string            `json:"name" yaml:"name"`
	Weights []IndicatorWeight `json:"weights" yaml:"weights"`
}

// Validate checks that the scenario has at least one weight, that no
// weight is negative or duplicated, and that the weights do not all
// sum to zero (such a scenario scores every country 0 and has no
// meaningful dominant factor).
func (s WeightScenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Weights) == 0 {
		return fmt.Errorf("scenario %q has no weights", s.Name)
	}
	seen := make(map[Indicator]bool, len(s.Weights))
	var sum float64
	for _, w := range s.Weights {
		if w.Weight < 0 {
			return fmt.Errorf("scenario %q: negative weight %.4f for %s", s.Name, w.Weight, w.Indicator)
		}
		if seen[w.Indicator] {
			return fmt.Errorf("scenario %q: duplicate indicator %s", s.Name, w.Indicator)
		}
		seen[w.Indicator] = true
		sum += w.Weight
	}
	if sum == 0 {
		return fmt.Errorf("scenario %q: weights sum to zero", s.Name)
	}
	return nil
}

// Normalized returns a copy of the scenario with weights rescaled to sum
// to 1. Weights are treated as relative proportions, so a scenario whose
// raw weights sum to 0.996 keeps its intended ratios.
func (s WeightScenario) Normalized() WeightScenario {
	var sum float64
	for _, w := range s.Weights {
		sum += w.Weight
	}
	out := WeightScenario{Name: s.Name, Weights: make([]IndicatorWeight, len(s.Weights))}
	copy(out.Weights, s.Weights)
	if sum <= 0 {
		return out
	}
	for i := range out.Weights {
		out.Weights[i].Weight /= sum
	}
	return out
}

// Weight returns the weight assigned to ind and whether it is present.
func (s WeightScenario) Weight(ind Indicator) (float64, bool) {
	for _, w := range s.Weights {
		if w.Indicator == ind {
			return w.Weight, true
		}
	}
	return 0, false
}
