// Package dataprocessing cleans the raw input tables, merges them into
// one comprehensive per-country table, and min-max normalizes the
// indicator columns.
//
// # Cleaning policy (per dataset)
//
//   - cbam_exports, total_exports (UN Comtrade): keep ReporterISO and
//     PrimaryValue only; values converted from USD to USD millions.
//   - gdp (World Bank): Country Code and 2019 GDP in millions; GDP must
//     be positive (it is a divisor).
//   - carbon_intensity: Country Code, Country Name, and the gCO2e
//     intensity column. This table is the merge spine: it fixes the
//     country set and row order of the comprehensive table.
//   - spi (World Bank SPI): Country Code and the 2019 score.
//   - patents (WIPO): Office (Code), Office, and the per-year
//     application counts 1995-2019, summed into one total.
//   - population (World Bank): Country Code and 2019 population,
//     converted to hundreds of thousands; must be positive (divisor).
//   - trade_elasticity: Country Code and the TE column.
//
// Missing-value markers ("", "..", "N/A") drop the row with a logged
// warning. Any other non-numeric content in a numeric column is a fatal
// DATA_QUALITY error naming the dataset, column, and 1-based data row.
//
// # Merge
//
// All joins are on ISO3 codes after alias resolution. Rows whose code
// resolves to no spine country are collected as mismatch warnings.
// Under the inner policy a spine country missing any indicator is
// dropped (and listed); under the outer policy the missing indicator is
// imputed with the mean of the observed values for that indicator.
//
// # Normalization
//
// Each indicator is rescaled to [0,1] via (x-min)/(max-min). A constant
// column normalizes to all zeros and is reported, never silently
// produced. Complementary scores (1-x) are added for indicators where a
// low raw value means high vulnerability.
package dataprocessing
