package explore_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/sales-insights/cmd/clean"
	"fjacquet/sales-insights/cmd/explore"
	"fjacquet/sales-insights/internal/config"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestExploreCommand_Flags(t *testing.T) {
	assert.Equal(t, "explore", explore.Cmd.Use)
	require.NotNil(t, explore.Cmd.Flags().Lookup("report"))
	require.NotNil(t, explore.Cmd.Flags().Lookup("top"))
}

func TestRun(t *testing.T) {
	c, logger := newFixtureContainer(t)
	var out bytes.Buffer

	require.NoError(t, explore.Run(c, &out, "", 0))

	text := out.String()
	assert.Contains(t, text, "=== SALES BY CATEGORY ===")
	assert.Contains(t, text, "Electronics")
	assert.Contains(t, text, "=== TOP 5 PRODUCTS ===")
	assert.NotContains(t, text, "Report written")
	assert.True(t, logger.HasEntry("INFO", "Exploratory analysis completed"))
}

func TestRun_TopAndReport(t *testing.T) {
	c, _ := newFixtureContainer(t)
	var out bytes.Buffer

	require.NoError(t, explore.Run(c, &out, "json", 2))

	assert.Contains(t, out.String(), "=== TOP 2 PRODUCTS ===")
	path := filepath.Join(c.GetConfig().Output.Directory, "exploration.json")
	assert.Contains(t, out.String(), "Report written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		Stage  string `json:"stage"`
		Report struct {
			TopProducts []json.RawMessage `json:"top_products"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "explore", decoded.Stage)
	assert.Len(t, decoded.Report.TopProducts, 2)
}

func TestRun_Workbook(t *testing.T) {
	c, _ := newFixtureContainer(t)

	require.NoError(t, explore.Run(c, io.Discard, "xlsx", 0))
	assert.FileExists(t, filepath.Join(c.GetConfig().Output.Directory, "exploration.xlsx"))
}

func TestRun_RequiresCleanedData(t *testing.T) {
	c, _ := newFixtureContainer(t)
	c.GetConfig().Data.CleanedSuffix = "_missing"

	err := explore.Run(c, io.Discard, "", 0)
	assert.ErrorContains(t, err, "does not exist")
}
