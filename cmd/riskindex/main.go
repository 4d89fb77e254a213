// Command riskindex runs the CBAM vulnerability risk index pipeline:
// load the eight input CSVs, clean and merge them into one table keyed
// by country, min-max normalize the indicators, compute the weighted
// risk index under every configured scenario, and export the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cbamcli/internal/analysis"
	"cbamcli/internal/config"
	"cbamcli/internal/dataprocessing"
	"cbamcli/internal/exporter"
	"cbamcli/internal/loader"
	"cbamcli/pkg/contracts/domain"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	dataDir := flag.String("data", "", "input data directory (overrides config)")
	outDir := flag.String("out", "", "output directory for reports (overrides config)")
	scenario := flag.String("scenario", "", "default scenario for the main results table (overrides config)")
	parallel := flag.Bool("parallel", false, "evaluate sensitivity scenarios concurrently")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}
	if *scenario != "" {
		cfg.Analysis.DefaultScenario = *scenario
		if _, ok := cfg.Scenario(*scenario); !ok {
			slog.Error("Unknown scenario", "scenario", *scenario)
			os.Exit(1)
		}
	}
	if *parallel {
		cfg.Analysis.Parallel = true
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.InfoContext(ctx, "starting risk index pipeline",
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.String("reports_dir", cfg.Paths.ReportsDir),
		slog.String("default_scenario", cfg.Analysis.DefaultScenario))

	// Load
	ld, err := loader.New(cfg.Paths.DataDir, logger)
	if err != nil {
		return err
	}
	tables, err := ld.LoadAll(ctx)
	if err != nil {
		return err
	}

	// Clean and merge
	proc := dataprocessing.New(logger)
	clean, err := proc.PrepareAll(tables)
	if err != nil {
		return err
	}
	merged, err := proc.BuildComprehensive(clean, cfg.ResolveAlias, dataprocessing.JoinPolicy(cfg.Analysis.JoinPolicy))
	if err != nil {
		return err
	}
	if len(merged.Records) == 0 {
		return fmt.Errorf("no countries survived the merge; check the alias configuration")
	}

	// Normalize
	normalized, constants, err := proc.Normalize(merged.Records, domain.AnalysisIndicators)
	if err != nil {
		return err
	}
	for _, c := range constants {
		logger.WarnContext(ctx, "constant indicator column", slog.String("detail", c.String()))
	}
	normalized = proc.AddComplements(normalized)

	// Analyze
	an := analysis.New(logger)
	defaultScenario, _ := cfg.Scenario(cfg.Analysis.DefaultScenario)
	results, err := an.WeightedIndex(normalized, defaultScenario)
	if err != nil {
		return err
	}
	results = an.RankCountries(results)
	results, err = an.Categorize(results, cfg.Analysis.Categories)
	if err != nil {
		return err
	}

	byScenario, err := an.RunSensitivity(ctx, normalized, cfg.Analysis.Scenarios, cfg.Analysis.Parallel)
	if err != nil {
		return err
	}

	stats := an.SummaryStats(results)
	logger.InfoContext(ctx, "risk index summary",
		slog.Int("countries", stats.Count),
		slog.Float64("mean", stats.Mean),
		slog.Float64("median", stats.Median),
		slog.Float64("min", stats.Min),
		slog.Float64("max", stats.Max))

	// Export
	exportIndicators := append(append([]domain.Indicator{}, domain.AnalysisIndicators...),
		domain.IndicatorSPIScoreCompl, domain.IndicatorPatPerCapCompl)
	scenarioOrder := make([]string, len(cfg.Analysis.Scenarios))
	for i, s := range cfg.Analysis.Scenarios {
		scenarioOrder[i] = s.Name
	}

	csvw := exporter.NewCSVWriter(cfg.Paths.ReportsDir, logger)
	if err := csvw.WriteRiskResults("cbam_risk_index.csv", normalized, results, exportIndicators); err != nil {
		return err
	}
	if err := csvw.WriteSensitivity("cbam_sensitivity.csv", byScenario, scenarioOrder); err != nil {
		return err
	}

	xlw := exporter.NewExcelWriter(cfg.Paths.ReportsDir, logger)
	runID, err := xlw.WriteWorkbook("cbam_risk_analysis.xlsx", normalized, results, exportIndicators, byScenario, scenarioOrder)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "pipeline completed",
		slog.String("run_id", runID),
		slog.Int("countries", len(results)),
		slog.Int("scenarios", len(scenarioOrder)),
		slog.Int("country_mismatches", len(merged.Mismatches)))
	return nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
