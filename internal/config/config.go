package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"cbamcli/pkg/contracts/domain"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// PathsConfig contains the input and output directories.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// AnalysisConfig contains everything the Processor and Analyzer need:
// join policy, alias resolution, categorization, and weight scenarios.
type AnalysisConfig struct {
	// JoinPolicy controls countries missing an indicator: "inner" drops
	// them (with a warning), "outer" imputes with the column mean.
	JoinPolicy string `yaml:"join_policy" envconfig:"JOIN_POLICY" validate:"oneof=inner outer"`

	// Parallel evaluates sensitivity scenarios concurrently. Results are
	// identical either way; this only trades wall time.
	Parallel bool `yaml:"parallel" envconfig:"PARALLEL"`

	// DefaultScenario names the scenario used for the main results table.
	DefaultScenario string `yaml:"default_scenario" envconfig:"DEFAULT_SCENARIO" validate:"required"`

	// Aliases maps non-standard country identifiers to ISO3 codes.
	Aliases map[string]string `yaml:"aliases"`

	// Categories controls risk-tier assignment.
	Categories CategoryConfig `yaml:"categories"`

	// Scenarios is the ordered sensitivity scenario set. Empty means the
	// built-in default set.
	Scenarios []domain.WeightScenario `yaml:"scenarios"`
}

// CategoryConfig controls how composite scores map to risk tiers.
// In quantile mode Cuts are quantiles of the observed score
// distribution; in fixed mode they are absolute score cut points.
// len(Labels) must be len(Cuts)+1.
type CategoryConfig struct {
	Mode   string    `yaml:"mode" envconfig:"MODE" validate:"oneof=quantile fixed"`
	Cuts   []float64 `yaml:"cuts"`
	Labels []string  `yaml:"labels"`
}

// Default returns the built-in configuration, which reproduces the
// published analysis without any file or environment input.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			ReportsDir: DefaultReportsDir,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Analysis: AnalysisConfig{
			JoinPolicy:      "inner",
			Parallel:        false,
			DefaultScenario: DefaultScenarioName,
			Aliases:         map[string]string{},
			Categories: CategoryConfig{
				Mode:   "quantile",
				Cuts:   []float64{0.33, 0.66},
				Labels: []string{string(domain.RiskLow), string(domain.RiskMedium), string(domain.RiskHigh)},
			},
			Scenarios: DefaultScenarios(),
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file not found: %s", configFile)
		}
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("CBAM", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks structural validity plus the cross-field rules that
// struct tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	cat := c.Analysis.Categories
	if len(cat.Labels) != len(cat.Cuts)+1 {
		return fmt.Errorf("categories: need %d labels for %d cuts, got %d", len(cat.Cuts)+1, len(cat.Cuts), len(cat.Labels))
	}
	if !sort.Float64sAreSorted(cat.Cuts) {
		return fmt.Errorf("categories: cuts must be ascending: %v", cat.Cuts)
	}
	if cat.Mode == "quantile" {
		for _, q := range cat.Cuts {
			if q <= 0 || q >= 1 {
				return fmt.Errorf("categories: quantile cut %.3f outside (0,1)", q)
			}
		}
	}

	if len(c.Analysis.Scenarios) == 0 {
		return fmt.Errorf("no weight scenarios configured")
	}
	seen := make(map[string]bool, len(c.Analysis.Scenarios))
	for _, s := range c.Analysis.Scenarios {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
	if _, ok := c.Scenario(c.Analysis.DefaultScenario); !ok {
		return fmt.Errorf("default scenario %q not in scenario set", c.Analysis.DefaultScenario)
	}
	return nil
}

// Scenario looks up a configured scenario by name.
func (c *Config) Scenario(name string) (domain.WeightScenario, bool) {
	for _, s := range c.Analysis.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return domain.WeightScenario{}, false
}

// ResolveAlias maps a source country identifier through the alias table.
// The identifier itself is returned when no alias applies.
func (c *Config) ResolveAlias(identifier string) string {
	if canonical, ok := c.Analysis.Aliases[identifier]; ok {
		return canonical
	}
	return identifier
}
