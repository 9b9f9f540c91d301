package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "data", config.Data.Directory)
	assert.Equal(t, "sales_data.csv", config.Data.SalesFile)
	assert.Equal(t, "customer_data.csv", config.Data.CustomersFile)
	assert.Equal(t, "_cleaned", config.Data.CleanedSuffix)
	assert.Equal(t, "outputs", config.Output.Directory)
	assert.Equal(t, 300, config.Output.DPI)
	assert.Empty(t, config.Output.ReportFormat)
	assert.Equal(t, 5, config.Analysis.TopProducts)
	assert.Equal(t, 0.95, config.Analysis.Confidence)
	assert.Equal(t, 0.05, config.Analysis.Alpha)
	assert.Equal(t, []string{"Electronics", "Furniture", "Supplies"}, config.Analysis.Categories)
	assert.Equal(t, 0.01, config.Cleaning.RevenueTolerance)
	assert.Equal(t, 18, config.Cleaning.MinAge)
	assert.Equal(t, 100, config.Cleaning.MaxAge)
	assert.Equal(t, 0.3, config.ML.TestSize)
	assert.Equal(t, uint64(42), config.ML.Seed)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	testEnvVars := map[string]string{
		"SALES_LOG_LEVEL":                  "debug",
		"SALES_LOG_FORMAT":                 "json",
		"SALES_CSV_DELIMITER":              ";",
		"SALES_DATA_DIRECTORY":             "/srv/data",
		"SALES_OUTPUT_DPI":                 "150",
		"SALES_ANALYSIS_TOP_PRODUCTS":      "10",
		"SALES_ML_TEST_SIZE":               "0.25",
		"SALES_CLEANING_REVENUE_TOLERANCE": "0.5",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "/srv/data", config.Data.Directory)
	assert.Equal(t, 150, config.Output.DPI)
	assert.Equal(t, 10, config.Analysis.TopProducts)
	assert.Equal(t, 0.25, config.ML.TestSize)
	assert.Equal(t, 0.5, config.Cleaning.RevenueTolerance)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
output:
  directory: "reports"
  report_format: "yaml"
analysis:
  categories: ["Books", "Toys"]
ml:
  seed: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "reports", config.Output.Directory)
	assert.Equal(t, "yaml", config.Output.ReportFormat)
	assert.Equal(t, []string{"Books", "Toys"}, config.Analysis.Categories)
	assert.Equal(t, uint64(7), config.ML.Seed)
	// untouched keys keep their defaults
	assert.Equal(t, 300, config.Output.DPI)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
output:
  dpi: 200
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))

	t.Setenv("SALES_LOG_LEVEL", "error")
	t.Setenv("SALES_OUTPUT_DPI", "96")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, 96, config.Output.DPI)
}

func TestInitializeConfig_InvalidEnvironment(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)
	t.Setenv("SALES_ML_TEST_SIZE", "1.5")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ml.test_size")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"multi character delimiter", func(c *Config) { c.CSV.Delimiter = "abc" }, "CSV delimiter must be a single character"},
		{"empty delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "CSV delimiter must be a single character"},
		{"zero dpi", func(c *Config) { c.Output.DPI = 0 }, "output.dpi must be positive"},
		{"unknown report format", func(c *Config) { c.Output.ReportFormat = "xml" }, "output.report_format"},
		{"zero top products", func(c *Config) { c.Analysis.TopProducts = 0 }, "analysis.top_products"},
		{"confidence of one", func(c *Config) { c.Analysis.Confidence = 1 }, "analysis.confidence"},
		{"negative alpha", func(c *Config) { c.Analysis.Alpha = -0.1 }, "analysis.alpha"},
		{"negative tolerance", func(c *Config) { c.Cleaning.RevenueTolerance = -1 }, "cleaning.revenue_tolerance"},
		{"inverted age bounds", func(c *Config) { c.Cleaning.MinAge = 101 }, "cleaning.min_age"},
		{"zero test size", func(c *Config) { c.ML.TestSize = 0 }, "ml.test_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_NormalizesReportFormat(t *testing.T) {
	config := DefaultConfig()
	config.Output.ReportFormat = " XLSX "

	require.NoError(t, validateConfig(config))
	assert.Equal(t, "xlsx", config.Output.ReportFormat)
}

func TestConfig_Paths(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, filepath.Join("data", "sales_data.csv"), config.SalesPath())
	assert.Equal(t, filepath.Join("data", "customer_data.csv"), config.CustomersPath())
	assert.Equal(t, filepath.Join("data", "sales_data_cleaned.csv"), config.CleanedPath(config.SalesPath()))
	assert.Equal(t, filepath.Join("outputs", "sales_trend.png"), config.OutputPath("sales_trend.png"))
	assert.Equal(t, ',', config.DelimiterRune())

	config.CSV.Delimiter = ";"
	assert.Equal(t, ';', config.DelimiterRune())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"text format info level", "info", "text", logrus.InfoLevel, false},
		{"json format debug level", "debug", "json", logrus.DebugLevel, true},
		{"invalid level falls back", "chatty", "text", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Log.Level = tt.level
			config.Log.Format = tt.format

			logger := ConfigureLoggingFromConfig(config)
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

// chdirTemp moves the test into an empty directory so no stray config.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	return tempDir
}

// clearTestEnvVars unsets every SALES_* variable for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SALES_LOG_LEVEL",
		"SALES_LOG_FORMAT",
		"SALES_CSV_DELIMITER",
		"SALES_DATA_DIRECTORY",
		"SALES_DATA_SALES_FILE",
		"SALES_DATA_CUSTOMERS_FILE",
		"SALES_DATA_CLEANED_SUFFIX",
		"SALES_OUTPUT_DIRECTORY",
		"SALES_OUTPUT_DPI",
		"SALES_OUTPUT_REPORT_FORMAT",
		"SALES_ANALYSIS_TOP_PRODUCTS",
		"SALES_ANALYSIS_CONFIDENCE",
		"SALES_ANALYSIS_ALPHA",
		"SALES_ANALYSIS_CATEGORIES",
		"SALES_CLEANING_REVENUE_TOLERANCE",
		"SALES_CLEANING_MIN_AGE",
		"SALES_CLEANING_MAX_AGE",
		"SALES_ML_TEST_SIZE",
		"SALES_ML_SEED",
	}

	for _, envVar := range envVars {
		// Setenv registers restoration; Unsetenv then clears it for this test.
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
