package container

import (
	"testing"
	"time"

	"fjacquet/sales-insights/internal/config"
	"fjacquet/sales-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:        "default config",
			config:      config.DefaultConfig(),
			expectError: false,
		},
		{
			name: "custom output settings",
			config: func() *config.Config {
				cfg := config.DefaultConfig()
				cfg.Output.Directory = "charts"
				cfg.Output.DPI = 72
				cfg.CSV.Delimiter = ";"
				return cfg
			}(),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.Equal(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetCleaner())
			assert.NotNil(t, c.GetExplorer())
			assert.NotNil(t, c.GetAnalyzer())
			assert.NotNil(t, c.GetPlotter())
			assert.NotNil(t, c.GetReportGenerator())
			assert.NotNil(t, c.GetExperiment())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainer_WiresConfiguration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Directory = "charts"
	cfg.Output.DPI = 72
	cfg.CSV.Delimiter = ";"
	cfg.Analysis.TopProducts = 3
	cfg.Analysis.Alpha = 0.01

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	assert.Equal(t, ';', c.GetStore().Delimiter())
	assert.Equal(t, "charts", c.GetPlotter().OutputDir())
	assert.Equal(t, 72, c.GetPlotter().DPI())
	assert.Equal(t, 3, c.GetExplorer().TopN())
	assert.Equal(t, 0.01, c.GetAnalyzer().Options().Alpha)
}

func TestNewContainer_Options(t *testing.T) {
	logger := logging.NewMockLogger()
	fixed := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)

	c, err := NewContainer(config.DefaultConfig(), WithLogger(logger), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	assert.Same(t, logger, c.GetLogger())
	assert.Equal(t, fixed, c.Now())
	assert.True(t, logger.HasEntry("DEBUG", "Container initialized successfully"))
}
