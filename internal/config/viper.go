// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/sales-insights/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		Directory     string `mapstructure:"directory" yaml:"directory"`
		SalesFile     string `mapstructure:"sales_file" yaml:"sales_file"`
		CustomersFile string `mapstructure:"customers_file" yaml:"customers_file"`
		CleanedSuffix string `mapstructure:"cleaned_suffix" yaml:"cleaned_suffix"`
	} `mapstructure:"data" yaml:"data"`

	Output struct {
		Directory    string `mapstructure:"directory" yaml:"directory"`
		DPI          int    `mapstructure:"dpi" yaml:"dpi"`
		ReportFormat string `mapstructure:"report_format" yaml:"report_format"`
	} `mapstructure:"output" yaml:"output"`

	Analysis struct {
		TopProducts int      `mapstructure:"top_products" yaml:"top_products"`
		Confidence  float64  `mapstructure:"confidence" yaml:"confidence"`
		Alpha       float64  `mapstructure:"alpha" yaml:"alpha"`
		Categories  []string `mapstructure:"categories" yaml:"categories"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Cleaning struct {
		RevenueTolerance float64 `mapstructure:"revenue_tolerance" yaml:"revenue_tolerance"`
		MinAge           int     `mapstructure:"min_age" yaml:"min_age"`
		MaxAge           int     `mapstructure:"max_age" yaml:"max_age"`
	} `mapstructure:"cleaning" yaml:"cleaning"`

	ML struct {
		TestSize float64 `mapstructure:"test_size" yaml:"test_size"`
		Seed     uint64  `mapstructure:"seed" yaml:"seed"`
	} `mapstructure:"ml" yaml:"ml"`
}

// SalesPath returns the raw sales CSV path.
func (c *Config) SalesPath() string {
	return filepath.Join(c.Data.Directory, c.Data.SalesFile)
}

// CustomersPath returns the raw customers CSV path.
func (c *Config) CustomersPath() string {
	return filepath.Join(c.Data.Directory, c.Data.CustomersFile)
}

// CleanedPath maps a raw data file to its cleaned sibling,
// e.g. data/sales_data.csv -> data/sales_data_cleaned.csv.
func (c *Config) CleanedPath(rawPath string) string {
	ext := filepath.Ext(rawPath)
	return strings.TrimSuffix(rawPath, ext) + c.Data.CleanedSuffix + ext
}

// OutputPath joins name onto the output directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Output.Directory, name)
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.sales-insights")
	v.AddConfigPath(".sales-insights")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("SALES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration produced by defaults alone,
// ignoring config files and the environment.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode cleanly.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Data defaults
	v.SetDefault("data.directory", "data")
	v.SetDefault("data.sales_file", "sales_data.csv")
	v.SetDefault("data.customers_file", "customer_data.csv")
	v.SetDefault("data.cleaned_suffix", "_cleaned")

	// Output defaults
	v.SetDefault("output.directory", "outputs")
	v.SetDefault("output.dpi", 300)
	v.SetDefault("output.report_format", "")

	// Analysis defaults
	v.SetDefault("analysis.top_products", 5)
	v.SetDefault("analysis.confidence", 0.95)
	v.SetDefault("analysis.alpha", 0.05)
	v.SetDefault("analysis.categories", []string{"Electronics", "Furniture", "Supplies"})

	// Cleaning defaults
	v.SetDefault("cleaning.revenue_tolerance", 0.01)
	v.SetDefault("cleaning.min_age", 18)
	v.SetDefault("cleaning.max_age", 100)

	// ML defaults
	v.SetDefault("ml.test_size", 0.3)
	v.SetDefault("ml.seed", 42)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Output.DPI <= 0 {
		return fmt.Errorf("output.dpi must be positive, got: %d", config.Output.DPI)
	}

	config.Output.ReportFormat = strings.ToLower(strings.TrimSpace(config.Output.ReportFormat))
	switch config.Output.ReportFormat {
	case "", "json", "yaml", "xlsx":
	default:
		return fmt.Errorf("output.report_format must be empty, json, yaml or xlsx, got: %s", config.Output.ReportFormat)
	}

	if config.Analysis.TopProducts < 1 {
		return fmt.Errorf("analysis.top_products must be at least 1, got: %d", config.Analysis.TopProducts)
	}

	if config.Analysis.Confidence <= 0 || config.Analysis.Confidence >= 1 {
		return fmt.Errorf("analysis.confidence must be between 0 and 1, got: %f", config.Analysis.Confidence)
	}

	if config.Analysis.Alpha <= 0 || config.Analysis.Alpha >= 1 {
		return fmt.Errorf("analysis.alpha must be between 0 and 1, got: %f", config.Analysis.Alpha)
	}

	if config.Cleaning.RevenueTolerance < 0 {
		return fmt.Errorf("cleaning.revenue_tolerance must not be negative, got: %f", config.Cleaning.RevenueTolerance)
	}

	if config.Cleaning.MinAge > config.Cleaning.MaxAge {
		return fmt.Errorf("cleaning.min_age (%d) exceeds cleaning.max_age (%d)", config.Cleaning.MinAge, config.Cleaning.MaxAge)
	}

	if config.ML.TestSize <= 0 || config.ML.TestSize >= 1 {
		return fmt.Errorf("ml.test_size must be between 0 and 1, got: %f", config.ML.TestSize)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrus(config.Log.Level, config.Log.Format)
}
