package dataprocessing

// TradeValue is one country's export value from a UN Comtrade dataset,
// in USD millions.
type TradeValue struct {
	Code          string
	ValueMillions float64
}

// GDPRecord is one country's 2019 GDP in USD millions.
type GDPRecord struct {
	Code        string
	GDPMillions float64
}

// CarbonRecord is one country's grid carbon intensity in gCO2e. The
// carbon intensity table carries the country names used downstream.
type CarbonRecord struct {
	Code      string
	Name      string
	Intensity float64
}

// SPIRecord is one country's 2019 Statistical Performance Indicator.
type SPIRecord struct {
	Code  string
	Score float64
}

// PatentRecord is one country's total patent applications summed over
// the configured year range.
type PatentRecord struct {
	Code  string
	Name  string
	Total float64
}

// PopulationRecord is one country's 2019 population in hundreds of
// thousands.
type PopulationRecord struct {
	Code             string
	HundredThousands float64
}

// ElasticityRecord is one country's trade elasticity estimate.
type ElasticityRecord struct {
	Code       string
	Elasticity float64
}

// CleanDatasets bundles the cleaned, typed form of all eight inputs,
// ready for the merge.
type CleanDatasets struct {
	CBAMExports     []TradeValue
	TotalExports    []TradeValue
	GDP             []GDPRecord
	CarbonIntensity []CarbonRecord
	SPI             []SPIRecord
	Patents         []PatentRecord
	Population      []PopulationRecord
	TradeElasticity []ElasticityRecord
}
