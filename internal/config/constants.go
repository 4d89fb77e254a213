package config

// Application constants for the CBAM risk index pipeline.
const (
	AppName    = "CBAM Risk Index"
	AppVersion = "1.0.0"

	// Default directories (relative to the working directory)
	DefaultDataDir    = "datasets"
	DefaultReportsDir = "results"

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Unit conversion factors
	ToMillions         = 1e6
	ToHundredThousands = 1e5

	// Patent applications are summed over this year range
	PatentYearFirst = 1995
	PatentYearLast  = 2019
)

// Dataset keys. Every input CSV is addressed by one of these.
const (
	DatasetCBAMExports     = "cbam_exports"
	DatasetGDP             = "gdp"
	DatasetTotalExports    = "total_exports"
	DatasetCarbonIntensity = "carbon_intensity"
	DatasetSPI             = "spi"
	DatasetPatents         = "patents"
	DatasetPopulation      = "population"
	DatasetTradeElasticity = "trade_elasticity"
)

// DatasetOrder fixes the canonical iteration order over datasets.
var DatasetOrder = []string{
	DatasetCBAMExports,
	DatasetGDP,
	DatasetTotalExports,
	DatasetCarbonIntensity,
	DatasetSPI,
	DatasetPatents,
	DatasetPopulation,
	DatasetTradeElasticity,
}

// DatasetFiles maps dataset keys to their CSV file names.
var DatasetFiles = map[string]string{
	DatasetCBAMExports:     "CBAM Exports 2019.csv",
	DatasetGDP:             "GDP East Asia - Pacific 2019.csv",
	DatasetTotalExports:    "Total Exports 2019.csv",
	DatasetCarbonIntensity: "Carbon Intensity.csv",
	DatasetSPI:             "Statistical Performance Indicator.csv",
	DatasetPatents:         "Total patent applications.csv",
	DatasetPopulation:      "Population 2019.csv",
	DatasetTradeElasticity: "Trade elasticities.csv",
}

// Source column names. These are the bit-exact schema contract of the
// input files (named per provider: UN Comtrade, World Bank, WIPO).
const (
	ColReporterISO     = "ReporterISO"
	ColPrimaryValue    = "PrimaryValue"
	ColCountry         = "Country"
	ColCountryCode     = "Country Code"
	ColCountryName     = "Country Name"
	ColGDP2019         = "2019 GDP (Millions)"
	ColCarbonIntensity = "Carbon Intensity [gCO2e]"
	ColYear2019        = "2019 [YR2019]"
	ColOfficeCode      = "Office (Code)"
	ColOffice          = "Office"
	ColTradeElasticity = "TE"
)

// RequiredColumns lists, per dataset, the columns that must be present
// for the pipeline to run. A missing column is a fatal schema error.
// The patents dataset additionally needs per-year columns, which are
// checked against the configured year range at preparation time.
var RequiredColumns = map[string][]string{
	DatasetCBAMExports:     {ColReporterISO, ColPrimaryValue},
	DatasetGDP:             {ColCountryCode, ColGDP2019},
	DatasetTotalExports:    {ColReporterISO, ColPrimaryValue},
	DatasetCarbonIntensity: {ColCountryCode, ColCountryName, ColCarbonIntensity},
	DatasetSPI:             {ColCountryCode, ColYear2019},
	DatasetPatents:         {ColOfficeCode, ColOffice},
	DatasetPopulation:      {ColCountryCode, ColYear2019},
	DatasetTradeElasticity: {ColCountryCode, ColTradeElasticity},
}

// IdentifierColumn names the country-identifier column of each dataset,
// used for the uniqueness check at load time and the merge key.
var IdentifierColumn = map[string]string{
	DatasetCBAMExports:     ColReporterISO,
	DatasetGDP:             ColCountryCode,
	DatasetTotalExports:    ColReporterISO,
	DatasetCarbonIntensity: ColCountryCode,
	DatasetSPI:             ColCountryCode,
	DatasetPatents:         ColOfficeCode,
	DatasetPopulation:      ColCountryCode,
	DatasetTradeElasticity: ColCountryCode,
}
