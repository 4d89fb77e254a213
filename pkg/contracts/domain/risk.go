package domain

// RiskCategory buckets a country's composite index.
type RiskCategory string

const (
	RiskLow     RiskCategory = "Low"
	RiskMedium  RiskCategory = "Medium"
	RiskHigh    RiskCategory = "High"
	RiskUnknown RiskCategory = "Unknown"
)

// Contribution is one indicator's share of a country's risk score.
type Contribution struct {
	Indicator Indicator `json:"indicator"`
	Weight    float64   `json:"weight"`
	Value     float64   `json:"value"`   // normalized indicator value
	Weighted  float64   `json:"weighted"` // Weight * Value
}

// RiskResult is the outcome of one weight scenario for one country.
type RiskResult struct {
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	Scenario       string         `json:"scenario"`
	Score          float64        `json:"score"`
	Rank           int            `json:"rank,omitempty"`
	Category       RiskCategory   `json:"category,omitempty"`
	DominantFactor Indicator      `json:"dominant_factor,omitempty"`
	Contributions  []Contribution `json:"contributions,omitempty"`
}
