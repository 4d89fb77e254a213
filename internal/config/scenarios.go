package config

import "cbamcli/pkg/contracts/domain"

// DefaultScenarioName is the scenario reported in the main results table.
const DefaultScenarioName = "baseline"

// DefaultScenarios returns the published sensitivity scenario set. The
// declaration order of weights inside each scenario is significant: it
// breaks ties when identifying a country's dominant factor.
func DefaultScenarios() []domain.WeightScenario {
	return []domain.WeightScenario{
		{
			Name: "baseline",
			Weights: []domain.IndicatorWeight{
				{Indicator: domain.IndicatorExpCBAMPerGDP, Weight: 0.30},
				{Indicator: domain.IndicatorPctExpCBAM, Weight: 0.14},
				{Indicator: domain.IndicatorTradeElast, Weight: 0.14},
				{Indicator: domain.IndicatorCarbonIntensity, Weight: 0.14},
				{Indicator: domain.IndicatorSPIScoreCompl, Weight: 0.14},
				{Indicator: domain.IndicatorPatPerCapCompl, Weight: 0.14},
			},
		},
		{
			Name: "equal_weights",
			Weights: []domain.IndicatorWeight{
				{Indicator: domain.IndicatorExpCBAMPerGDP, Weight: 0.166},
				{Indicator: domain.IndicatorPctExpCBAM, Weight: 0.166},
				{Indicator: domain.IndicatorTradeElast, Weight: 0.166},
				{Indicator: domain.IndicatorCarbonIntensity, Weight: 0.166},
				{Indicator: domain.IndicatorSPIScoreCompl, Weight: 0.166},
				{Indicator: domain.IndicatorPatPerCapCompl, Weight: 0.166},
			},
		},
		{
			Name: "export_focused",
			Weights: []domain.IndicatorWeight{
				{Indicator: domain.IndicatorPctExpCBAM, Weight: 0.30},
				{Indicator: domain.IndicatorExpCBAMPerGDP, Weight: 0.14},
				{Indicator: domain.IndicatorTradeElast, Weight: 0.14},
				{Indicator: domain.IndicatorCarbonIntensity, Weight: 0.14},
				{Indicator: domain.IndicatorSPIScoreCompl, Weight: 0.14},
				{Indicator: domain.IndicatorPatPerCapCompl, Weight: 0.14},
			},
		},
		{
			Name: "no_innovation",
			Weights: []domain.IndicatorWeight{
				{Indicator: domain.IndicatorExpCBAMPerGDP, Weight: 0.30},
				{Indicator: domain.IndicatorPctExpCBAM, Weight: 0.175},
				{Indicator: domain.IndicatorTradeElast, Weight: 0.175},
				{Indicator: domain.IndicatorCarbonIntensity, Weight: 0.175},
				{Indicator: domain.IndicatorSPIScoreCompl, Weight: 0.175},
			},
		},
		{
			Name: "no_trade_stat",
			Weights: []domain.IndicatorWeight{
				{Indicator: domain.IndicatorExpCBAMPerGDP, Weight: 0.30},
				{Indicator: domain.IndicatorPctExpCBAM, Weight: 0.23},
				{Indicator: domain.IndicatorCarbonIntensity, Weight: 0.23},
				{Indicator: domain.IndicatorPatPerCapCompl, Weight: 0.23},
			},
		},
		{
			Name: "no_trade_innovation",
			Weights: []domain.IndicatorWeight{
				{Indicator: domain.IndicatorExpCBAMPerGDP, Weight: 0.30},
				{Indicator: domain.IndicatorPctExpCBAM, Weight: 0.23},
				{Indicator: domain.IndicatorCarbonIntensity, Weight: 0.23},
				{Indicator: domain.IndicatorSPIScoreCompl, Weight: 0.23},
			},
		},
	}
}
