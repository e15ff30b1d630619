package common

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for finledger.
type Config struct {
	Environment string          `toml:"environment"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Report      ReportConfig    `toml:"report"`
	Reference   ReferenceConfig `toml:"reference"`
}

// StorageConfig holds the ledger database location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// ReportConfig holds the knobs for generated reports.
type ReportConfig struct {
	MovingAverageWindow int     `toml:"moving_average_window"`
	ForecastMonths      int     `toml:"forecast_months"`
	RiskFreeRateAnnual  float64 `toml:"risk_free_rate_annual"`
	ChartPath           string  `toml:"chart_path"`
}

// ReferenceConfig carries the static lookup tables the engine reads but never
// mutates: the category list, the category budget map, the known merchant set,
// and a sample transaction-history table used for seeding. Loaded once at
// startup and injected, never referenced as ambient globals.
type ReferenceConfig struct {
	Categories    []string            `toml:"categories"`
	Budgets       map[string]float64  `toml:"budgets"`
	Merchants     []string            `toml:"merchants"`
	SampleHistory []SampleTransaction `toml:"sample_history"`
}

// SampleTransaction is one row of the seed history table.
type SampleTransaction struct {
	ID        string  `toml:"id"`
	Date      string  `toml:"date"` // RFC 3339
	Merchant  string  `toml:"merchant"`
	Category  string  `toml:"category"`
	Direction string  `toml:"direction"`
	Amount    float64 `toml:"amount"`
}

// HasMerchant reports whether name is in the known merchant set,
// case-insensitively.
func (r ReferenceConfig) HasMerchant(name string) bool {
	for _, m := range r.Merchants {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

// BudgetFor returns the configured monthly budget for a category, 0 when the
// category has no budget line.
func (r ReferenceConfig) BudgetFor(category string) float64 {
	for name, amount := range r.Budgets {
		if strings.EqualFold(name, category) {
			return amount
		}
	}
	return 0
}

// TotalBudget returns the sum of all budget lines.
func (r ReferenceConfig) TotalBudget() float64 {
	total := 0.0
	for _, amount := range r.Budgets {
		total += amount
	}
	return total
}

// NewDefaultConfig returns a Config with sensible defaults, including the
// built-in reference tables.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Path: "data/ledger",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Report: ReportConfig{
			MovingAverageWindow: 3,
			ForecastMonths:      6,
			RiskFreeRateAnnual:  0.02,
			ChartPath:           "data/forecast.png",
		},
		Reference: ReferenceConfig{
			Categories: []string{"Groceries", "Rent", "Utilities", "Travel", "Entertainment"},
			Budgets: map[string]float64{
				"Groceries":     400.0,
				"Rent":          1500.0,
				"Utilities":     200.0,
				"Travel":        500.0,
				"Entertainment": 300.0,
			},
			Merchants: []string{"Target", "Walmart", "Amazon", "Netflix", "ebay"},
			SampleHistory: []SampleTransaction{
				{ID: "T001", Date: "2025-07-03T10:15:00Z", Merchant: "Walmart", Category: "Groceries", Direction: "debit", Amount: 45.60},
				{ID: "T002", Date: "2025-07-12T18:30:00Z", Merchant: "Amazon", Category: "Electronics", Direction: "debit", Amount: 120.00},
				{ID: "T003", Date: "2025-07-20T21:05:00Z", Merchant: "Netflix", Category: "Entertainment", Direction: "debit", Amount: 15.99},
			},
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINLEDGER_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("FINLEDGER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("FINLEDGER_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if path := os.Getenv("FINLEDGER_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
