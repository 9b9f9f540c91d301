package stats_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/sales-insights/cmd/clean"
	"fjacquet/sales-insights/cmd/stats"
	"fjacquet/sales-insights/internal/config"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newFixtureContainer(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"sales_data.csv", "customer_data.csv"} {
		data, err := os.ReadFile(filepath.Join("..", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0600))
	}

	cfg := config.DefaultConfig()
	cfg.Data.Directory = dir
	cfg.Output.Directory = filepath.Join(dir, "outputs")
	cfg.Output.DPI = 20
	logger := logging.NewMockLogger()
	c, err := container.NewContainer(cfg,
		container.WithLogger(logger),
		container.WithClock(func() time.Time { return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	require.NoError(t, clean.Run(c, io.Discard))
	return c, logger
}

func TestStatsCommand_Flags(t *testing.T) {
	assert.Equal(t, "stats", stats.Cmd.Use)
	require.NotNil(t, stats.Cmd.Flags().Lookup("report"))
}

func TestRun(t *testing.T) {
	c, logger := newFixtureContainer(t)
	var out bytes.Buffer

	require.NoError(t, stats.Run(c, &out, "yaml"))

	text := out.String()
	assert.Contains(t, text, "=== DESCRIPTIVE STATISTICS ===")
	assert.Contains(t, text, "ANOVA revenue by Electronics/Furniture/Supplies")
	assert.Contains(t, text, "t-test satisfaction M vs F")
	assert.True(t, logger.HasEntry("INFO", "Statistical analysis completed"))

	data, err := os.ReadFile(filepath.Join(c.GetConfig().Output.Directory, "statistics.yaml"))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "stats", decoded["stage"])
	assert.NotEmpty(t, decoded["run_id"])
}

func TestRun_FormatIsCaseInsensitive(t *testing.T) {
	c, _ := newFixtureContainer(t)
	var out bytes.Buffer

	require.NoError(t, stats.Run(c, &out, "JSON"))

	path := filepath.Join(c.GetConfig().Output.Directory, "statistics.json")
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "Report written to "+path)
}

func TestRun_RejectsUnknownFormat(t *testing.T) {
	c, _ := newFixtureContainer(t)

	err := stats.Run(c, io.Discard, "xml")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestRun_RejectsWorkbook(t *testing.T) {
	c, _ := newFixtureContainer(t)

	err := stats.Run(c, io.Discard, "xlsx")
	assert.ErrorContains(t, err, "only available for the explore stage")
}
