// Package config provides configuration management for the catalog builder.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"swipecatalog/internal/classifier"
	"swipecatalog/internal/models"
	"swipecatalog/internal/normalizer"
	"swipecatalog/internal/source"
)

// Configuration validation errors.
var (
	ErrNoSources          = errors.New("at least one source is required")
	ErrSourceMissingName  = errors.New("source name is required")
	ErrDuplicateSource    = errors.New("source listed more than once")
	ErrNoEnabledSources   = errors.New("at least one source must be enabled")
	ErrMissingInputDir    = errors.New("catalog.input_dir is required")
	ErrMissingOutputDir   = errors.New("catalog.output.dir is required")
	ErrMissingOutputFiles = errors.New("catalog.output.csv_file and json_file are required")
	ErrInvalidThresholds  = errors.New("pricing thresholds must be positive and strictly increasing")
	ErrInvalidStyle       = errors.New("classification.default_style is not a known style")
	ErrInvalidFit         = errors.New("classification.default_fit is not a known fit")
	ErrNegativePrice      = errors.New("defaults.price must be non-negative")
	ErrInvalidMaxWorkers  = errors.New("advanced.max_workers must be at least 1")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete catalog builder configuration.
type Config struct {
	Catalog        CatalogConfig        `yaml:"catalog"`
	Classification ClassificationConfig `yaml:"classification"`
	Pricing        PricingConfig        `yaml:"pricing"`
	Defaults       DefaultsConfig       `yaml:"defaults"`
	Metrics        MetricsConfig        `yaml:"metrics"`
	Features       FeaturesConfig       `yaml:"features"`
	Advanced       AdvancedConfig       `yaml:"advanced"`
}

// CatalogConfig contains input and output settings.
type CatalogConfig struct {
	InputDir string         `yaml:"input_dir"`
	Output   OutputConfig   `yaml:"output"`
	Sources  []SourceConfig `yaml:"sources"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SourceConfig enables a built-in retailer feed and optionally overrides its file and color policy.
type SourceConfig struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	ColorPolicy string `yaml:"color_policy"`
	Enabled     bool   `yaml:"enabled"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	CSVFile     string `yaml:"csv_file"`
	JSONFile    string `yaml:"json_file"`
	SQLiteFile  string `yaml:"sqlite_file"`
	PrettyPrint bool   `yaml:"pretty_print"`
	Manifest    bool   `yaml:"manifest"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	ShowSummary bool   `yaml:"show_summary"`
}

// ClassificationConfig holds the classifier fallbacks.
type ClassificationConfig struct {
	DefaultStyle string `yaml:"default_style"`
	DefaultFit   string `yaml:"default_fit"`
}

// PricingConfig holds the inclusive upper bounds of the price ranges.
type PricingConfig struct {
	BudgetMax   float64 `yaml:"budget_max"`
	MidRangeMax float64 `yaml:"mid_range_max"`
	PremiumMax  float64 `yaml:"premium_max"`
}

// DefaultsConfig holds the values used to fill missing fields.
type DefaultsConfig struct {
	Price      *float64 `yaml:"price"`
	Name       string   `yaml:"name"`
	Color      string   `yaml:"color"`
	ImageURL   string   `yaml:"image_url"`
	ProductURL string   `yaml:"product_url"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	StrictValidation bool `yaml:"strict_validation"`
}

// AdvancedConfig contains advanced settings.
type AdvancedConfig struct {
	ParallelSources bool `yaml:"parallel_sources"`
	MaxWorkers      int  `yaml:"max_workers"`
}

// DefaultConfig returns a complete configuration with every built-in source enabled.
func DefaultConfig() *Config {
	names := source.Names()
	sources := make([]SourceConfig, 0, len(names))

	for _, n := range names {
		sources = append(sources, SourceConfig{Name: n, Enabled: true})
	}

	d := normalizer.DefaultDefaults()
	th := normalizer.DefaultThresholds()

	return &Config{
		Catalog: CatalogConfig{
			InputDir: "data/raw",
			Sources:  sources,
			Output: OutputConfig{
				Dir:      "data/processed",
				CSVFile:  "unified_clothing_data.csv",
				JSONFile: "clothing_data.json",
				Manifest: true,
			},
			Logging: LoggingConfig{Level: "info", ShowSummary: true},
		},
		Classification: ClassificationConfig{
			DefaultStyle: string(models.StyleCasual),
			DefaultFit:   string(models.FitRegular),
		},
		Pricing: PricingConfig{
			BudgetMax:   th.BudgetMax,
			MidRangeMax: th.MidRangeMax,
			PremiumMax:  th.PremiumMax,
		},
		Defaults: DefaultsConfig{
			Name:       d.Name,
			Color:      d.Color,
			ImageURL:   d.ImageURL,
			ProductURL: d.ProductURL,
		},
		Advanced: AdvancedConfig{MaxWorkers: 4},
	}
}

// LoadConfig loads configuration from YAML file. Keys absent from the file keep
// their DefaultConfig values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Catalog.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0
	seen := map[string]bool{}

	for i, src := range c.Catalog.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingName, i)
		}

		if _, err := source.Lookup(src.Name); err != nil {
			return fmt.Errorf("source[%d]: %w", i, err)
		}

		if seen[src.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateSource, src.Name)
		}

		seen[src.Name] = true

		if _, err := source.ParseColorPolicy(src.ColorPolicy); err != nil {
			return fmt.Errorf("source[%d]: %w", i, err)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if c.Catalog.InputDir == "" {
		return ErrMissingInputDir
	}

	if c.Catalog.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Catalog.Output.CSVFile == "" || c.Catalog.Output.JSONFile == "" {
		return ErrMissingOutputFiles
	}

	p := c.Pricing
	if p.BudgetMax <= 0 || p.MidRangeMax <= p.BudgetMax || p.PremiumMax <= p.MidRangeMax {
		return ErrInvalidThresholds
	}

	if !models.Style(c.Classification.DefaultStyle).IsValid() {
		return ErrInvalidStyle
	}

	if !models.Fit(c.Classification.DefaultFit).IsValid() {
		return ErrInvalidFit
	}

	if c.Defaults.Price != nil && *c.Defaults.Price < 0 {
		return ErrNegativePrice
	}

	if c.Advanced.ParallelSources && c.Advanced.MaxWorkers < 1 {
		return ErrInvalidMaxWorkers
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Catalog.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources, in configuration order.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Catalog.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// Layout resolves the built-in layout for s with its overrides applied.
func (s SourceConfig) Layout() (source.Layout, error) {
	layout, err := source.Lookup(s.Name)
	if err != nil {
		return source.Layout{}, err
	}

	if s.File != "" {
		layout.File = s.File
	}

	policy, err := source.ParseColorPolicy(s.ColorPolicy)
	if err != nil {
		return source.Layout{}, err
	}

	if policy != "" {
		layout.ColorPolicy = policy
	}

	return layout, nil
}

// ClassifierOptions returns the classifier fallbacks.
func (c *Config) ClassifierOptions() classifier.Options {
	return classifier.Options{
		DefaultStyle: models.Style(c.Classification.DefaultStyle),
		DefaultFit:   models.Fit(c.Classification.DefaultFit),
	}
}

// Thresholds returns the price-range bounds.
func (c *Config) Thresholds() normalizer.Thresholds {
	return normalizer.Thresholds{
		BudgetMax:   c.Pricing.BudgetMax,
		MidRangeMax: c.Pricing.MidRangeMax,
		PremiumMax:  c.Pricing.PremiumMax,
	}
}

// FillDefaults returns the post-processing fill values.
func (c *Config) FillDefaults() normalizer.Defaults {
	return normalizer.Defaults{
		Price:      c.Defaults.Price,
		Name:       c.Defaults.Name,
		Color:      c.Defaults.Color,
		ImageURL:   c.Defaults.ImageURL,
		ProductURL: c.Defaults.ProductURL,
		Style:      models.Style(c.Classification.DefaultStyle),
		Fit:        models.Fit(c.Classification.DefaultFit),
	}
}

// OutputPath joins name onto the output directory; empty name yields "".
func (c *Config) OutputPath(name string) string {
	if name == "" {
		return ""
	}

	return filepath.Join(c.Catalog.Output.Dir, name)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, Enabled: %d, Input: %s, Output: %s}",
		len(c.Catalog.Sources),
		len(c.GetEnabledSources()),
		c.Catalog.InputDir,
		c.Catalog.Output.Dir,
	)
}
