package domain

// Indicator identifies one normalized risk component column.
type Indicator string

// Canonical indicator names. These match the column names used in the
// exported tables, so renames here are breaking changes for downstream
// report consumers.
const (
	IndicatorCarbonIntensity Indicator = "Carbon_Intensity"
	IndicatorPctExpCBAM      Indicator = "PctExpCBAM"
	IndicatorExpCBAMPerGDP   Indicator = "ExpCBAMperGDP"
	IndicatorSPIScore        Indicator = "SPI_Score"
	IndicatorPatPerCap       Indicator = "PatPerCap"
	IndicatorTradeElast      Indicator = "Trade_Elast"

	// Complementary scores (1 - x) for indicators where a LOW raw value
	// means HIGHER vulnerability (weak statistical capacity, low
	// innovation). Computed on normalized values.
	IndicatorSPIScoreCompl  Indicator = "SPI_Score_Compl"
	IndicatorPatPerCapCompl Indicator = "PatPerCap_Compl"
)

// AnalysisIndicators is the ordered list of base indicators subject to
// min-max normalization. Order is load-bearing: it is the declaration
// order used to break dominant-factor ties.
var AnalysisIndicators = []Indicator{
	IndicatorCarbonIntensity,
	IndicatorPctExpCBAM,
	IndicatorExpCBAMPerGDP,
	IndicatorSPIScore,
	IndicatorPatPerCap,
	IndicatorTradeElast,
}

// ComplementSources lists the indicators that get a *_Compl companion.
var ComplementSources = []Indicator{
	IndicatorSPIScore,
	IndicatorPatPerCap,
}

// Compl returns the complementary indicator name for i.
func (i Indicator) Compl() Indicator {
	return i + "_Compl"
}

// CountryRecord is one row of the comprehensive table: a country plus
// its indicator values. Before normalization the values are in raw
// units; after normalization they lie in [0,1].
type CountryRecord struct {
	Code       string                `json:"code"`
	Name       string                `json:"name"`
	Indicators map[Indicator]float64 `json:"indicators"`
}

// Clone returns a deep copy of the record. The pipeline never mutates
// shared records across stages; each stage works on its own copy.
func (r CountryRecord) Clone() CountryRecord {
	out := CountryRecord{Code: r.Code, Name: r.Name, Indicators: make(map[Indicator]float64, len(r.Indicators))}
	for k, v := range r.Indicators {
		out.Indicators[k] = v
	}
	return out
}

// Value returns the indicator value and whether it is present.
func (r CountryRecord) Value(ind Indicator) (float64, bool) {
	v, ok := r.Indicators[ind]
	return v, ok
}
