package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/commtrace-dev/commtrace/internal/stats"
)

// Config represents the top-level commtrace.yaml configuration.
type Config struct {
	Report    ReportConfig    `yaml:"report"`
	Directory DirectoryConfig `yaml:"directory"`
	Owner     OwnerConfig     `yaml:"owner"`
	Log       LogConfig       `yaml:"log"`
}

// ReportConfig controls ranking depth and display truncation.
type ReportConfig struct {
	TopSingle      int `yaml:"top_single"`
	TopCombined    int `yaml:"top_combined"`
	NameBudget     int `yaml:"name_budget"`
	ExpenseReasons int `yaml:"expense_reasons"`
	BalancePoints  int `yaml:"balance_points"`
}

// DirectoryConfig controls the contact directory editor.
type DirectoryConfig struct {
	DuplicatePolicy string `yaml:"duplicate_policy"`
}

// OwnerConfig optionally pins the owner number instead of resolving it from
// the record set.
type OwnerConfig struct {
	Number string `yaml:"number,omitempty"`
}

// LogConfig controls the upload batch audit log.
type LogConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Limits converts the report settings into stats limits.
func (c *Config) Limits() stats.Limits {
	return stats.Limits{
		TopSingle:      c.Report.TopSingle,
		TopCombined:    c.Report.TopCombined,
		NameBudget:     c.Report.NameBudget,
		ExpenseReasons: c.Report.ExpenseReasons,
		BalancePoints:  c.Report.BalancePoints,
	}
}

// Load reads a commtrace.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock limits.
func Default() *Config {
	limits := stats.DefaultLimits()
	return &Config{
		Report: ReportConfig{
			TopSingle:      limits.TopSingle,
			TopCombined:    limits.TopCombined,
			NameBudget:     limits.NameBudget,
			ExpenseReasons: limits.ExpenseReasons,
			BalancePoints:  limits.BalancePoints,
		},
		Directory: DirectoryConfig{
			DuplicatePolicy: "replace",
		},
	}
}
