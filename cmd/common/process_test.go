package common_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/sales-insights/cmd/common"
	"fjacquet/sales-insights/internal/config"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDataSource implements common.DataSource for testing
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) LoadSales(path string) ([]models.Sale, error) {
	args := m.Called(path)
	return args.Get(0).([]models.Sale), args.Error(1)
}

func (m *MockDataSource) LoadCustomers(path string) ([]models.Customer, error) {
	args := m.Called(path)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0600))
	return path
}

func TestPaths(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.Directory = "data"
	cfg.Data.SalesFile = "sales.csv"
	cfg.Data.CustomersFile = "customers.csv"

	sales, customers := common.RawPaths(cfg)
	assert.Equal(t, filepath.Join("data", "sales.csv"), sales)
	assert.Equal(t, filepath.Join("data", "customers.csv"), customers)

	sales, customers = common.CleanedPaths(cfg)
	assert.Equal(t, filepath.Join("data", "sales"+cfg.Data.CleanedSuffix+".csv"), sales)
	assert.Equal(t, filepath.Join("data", "customers"+cfg.Data.CleanedSuffix+".csv"), customers)
}

func TestLoadData(t *testing.T) {
	dir := t.TempDir()
	salesPath := touch(t, dir, "sales.csv")
	customersPath := touch(t, dir, "customers.csv")

	sales := []models.Sale{{Product: "Laptop"}}
	customers := []models.Customer{{CustomerID: "C1"}}

	src := new(MockDataSource)
	src.On("LoadSales", salesPath).Return(sales, nil)
	src.On("LoadCustomers", customersPath).Return(customers, nil)
	logger := logging.NewMockLogger()

	gotSales, gotCustomers, err := common.LoadData(src, salesPath, customersPath, logger)
	require.NoError(t, err)
	assert.Equal(t, sales, gotSales)
	assert.Equal(t, customers, gotCustomers)
	assert.True(t, logger.HasEntry("INFO", "Loaded datasets"))
	src.AssertExpectations(t)
}

func TestLoadData_Errors(t *testing.T) {
	dir := t.TempDir()
	salesPath := touch(t, dir, "sales.csv")
	customersPath := touch(t, dir, "customers.csv")
	textPath := touch(t, dir, "notes.txt")

	t.Run("missing file", func(t *testing.T) {
		src := new(MockDataSource)
		_, _, err := common.LoadData(src, filepath.Join(dir, "nope.csv"), customersPath, logging.NewMockLogger())
		assert.ErrorContains(t, err, "does not exist")
		src.AssertNotCalled(t, "LoadSales", mock.Anything)
	})

	t.Run("wrong extension", func(t *testing.T) {
		src := new(MockDataSource)
		_, _, err := common.LoadData(src, salesPath, textPath, logging.NewMockLogger())
		assert.ErrorContains(t, err, ".csv extension")
	})

	t.Run("loader failure", func(t *testing.T) {
		src := new(MockDataSource)
		src.On("LoadSales", salesPath).Return([]models.Sale(nil), nil)
		src.On("LoadCustomers", customersPath).Return([]models.Customer(nil), errors.New("bad header"))

		_, _, err := common.LoadData(src, salesPath, customersPath, logging.NewMockLogger())
		assert.ErrorContains(t, err, "error loading customers: bad header")
	})
}

func TestRequireContainer(t *testing.T) {
	logger := logging.NewMockLogger()
	assert.Nil(t, common.RequireContainer(nil, logger))
	assert.True(t, logger.HasEntry("FATAL", "Container not initialized"))

	c, err := container.NewContainer(config.DefaultConfig(), container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	assert.Same(t, c, common.RequireContainer(c, logger))
}

func TestWriteReport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Directory = t.TempDir()
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	c, err := container.NewContainer(cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	exploration := &explore.Report{}

	tests := []struct {
		name     string
		format   string
		report   any
		wantFile string
		wantErr  string
	}{
		{name: "no report", format: "", report: exploration},
		{name: "json", format: "json", report: exploration, wantFile: "exploration.json"},
		{name: "yaml upper case", format: "YAML", report: exploration, wantFile: "exploration.yaml"},
		{name: "xlsx", format: "xlsx", report: exploration, wantFile: "exploration.xlsx"},
		{name: "xlsx for another stage", format: "xlsx", report: map[string]int{}, wantErr: "only available"},
		{name: "unknown format", format: "xml", report: exploration, wantErr: "unsupported report format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := common.WriteReport(c, "explore", "exploration", tt.format, tt.report)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantFile == "" {
				assert.Empty(t, path)
				return
			}
			assert.Equal(t, filepath.Join(cfg.Output.Directory, tt.wantFile), path)
			assert.FileExists(t, path)
		})
	}

	t.Run("configured format", func(t *testing.T) {
		cfg.Output.ReportFormat = "yaml"
		defer func() { cfg.Output.ReportFormat = "" }()

		path, err := common.WriteReport(c, "explore", "exploration", "", exploration)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cfg.Output.Directory, "exploration.yaml"), path)
	})
}
