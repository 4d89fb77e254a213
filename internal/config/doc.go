// Package config provides centralized configuration for the CBAM risk
// index pipeline: dataset file names and schemas, the canonical
// indicator set, weight scenarios for sensitivity analysis, country
// alias resolution, and runtime settings.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Built-in defaults (lowest priority)
//
// # Environment Variables
//
// All environment variables use the CBAM_ prefix:
//
//	CBAM_PATHS_DATA_DIR=datasets
//	CBAM_PATHS_REPORTS_DIR=results
//	CBAM_LOGGING_LEVEL=debug
//	CBAM_ANALYSIS_JOIN_POLICY=outer
//
// # Weight Scenarios
//
// The default scenario set reproduces the published analysis: baseline,
// equal_weights, export_focused, no_innovation, no_trade_stat, and
// no_trade_innovation. A YAML file can replace the whole set; scenario
// weights are treated as relative proportions and rescaled to sum to 1.
//
// # Country Aliases
//
// Datasets are joined on ISO3 country codes. Sources that carry
// non-standard identifiers are mapped through the alias table
// (identifier -> ISO3) before the join; identifiers that still resolve
// to nothing are surfaced as mismatch warnings, never silently dropped.
package config
