package plotting

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/ml"
	"fjacquet/sales-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func newTestPlotter(t *testing.T) (*Plotter, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	return NewPlotter(logger, filepath.Join(t.TempDir(), "charts"), 20), logger
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature), "%s is not a PNG", path)
}

func sampleSales() []models.Sale {
	mk := func(day int, product, category, region string, revenue int64) models.Sale {
		return models.Sale{
			Date:     models.NewDate(2024, time.March, day),
			Product:  product,
			Category: category,
			Region:   region,
			Quantity: 1,
			Price:    decimal.NewFromInt(revenue),
			Revenue:  decimal.NewFromInt(revenue),
		}
	}
	return []models.Sale{
		mk(1, "Laptop", "Electronics", "North", 1200),
		mk(1, "Desk", "Furniture", "South", 300),
		mk(2, "Pen", "Supplies", "East", 5),
		mk(3, "Chair", "Furniture", "North", 150),
	}
}

func sampleCustomers() []models.Customer {
	out := make([]models.Customer, 12)
	for i := range out {
		out[i] = models.Customer{
			CustomerID:        string(rune('A' + i)),
			Age:               20 + 4*i,
			Gender:            []string{"M", "F"}[i%2],
			Income:            float64(30000 + 2500*i),
			MemberSince:       models.NewDate(2022, time.January, 1+i),
			SatisfactionScore: float64(1 + i%5),
			PurchaseFrequency: 2 + i,
		}
	}
	return out
}

func TestNewPlotter_Defaults(t *testing.T) {
	p := NewPlotter(nil, "out", 0)
	assert.Equal(t, DefaultDPI, p.DPI())
	assert.Equal(t, "out", p.OutputDir())
}

func TestRenderExploration(t *testing.T) {
	p, logger := newTestPlotter(t)
	customers := sampleCustomers()
	report := explore.NewExplorer(logging.NewMockLogger(), 3).Run(sampleSales(), customers)

	paths, err := p.RenderExploration(report, customers)
	require.NoError(t, err)

	want := []string{
		RevenueByCategoryFile,
		SalesTrendFile,
		RegionalDistributionFile,
		AgeDistributionFile,
		IncomeVsSatisfactionFile,
		CorrelationHeatmapFile,
	}
	require.Len(t, paths, len(want))
	for i, name := range want {
		assert.Equal(t, filepath.Join(p.OutputDir(), name), paths[i])
		assertPNG(t, paths[i])
	}
	assert.Len(t, logger.GetEntriesByLevel("INFO"), len(want))
}

func TestRenderExploration_SkipsEmptyCharts(t *testing.T) {
	p, logger := newTestPlotter(t)
	customers := sampleCustomers()
	report := explore.NewExplorer(logging.NewMockLogger(), 3).Run(nil, customers)

	paths, err := p.RenderExploration(report, customers)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 3)
}

func TestCorrelationHeatmap_UndefinedCoefficients(t *testing.T) {
	p, _ := newTestPlotter(t)
	m := explore.CorrelationMatrix{
		Columns: []string{"a", "b"},
		Values:  [][]float64{{1, math.NaN()}, {math.NaN(), 1}},
	}

	path, err := p.CorrelationHeatmap(m)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestCharts_NoData(t *testing.T) {
	p, _ := newTestPlotter(t)
	tests := []struct {
		name string
		draw func() (string, error)
	}{
		{"categories", func() (string, error) { return p.RevenueByCategory(nil) }},
		{"trend", func() (string, error) { return p.SalesTrend(nil) }},
		{"regions", func() (string, error) { return p.RegionalDistribution(nil) }},
		{"ages", func() (string, error) { return p.AgeDistribution(nil) }},
		{"scatter", func() (string, error) { return p.IncomeVsSatisfaction(nil) }},
		{"heatmap", func() (string, error) { return p.CorrelationHeatmap(explore.CorrelationMatrix{}) }},
		{"importance", func() (string, error) { return p.FeatureImportance(nil) }},
		{"predictions", func() (string, error) { return p.PredictionsComparison(nil, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draw()
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestModelCharts(t *testing.T) {
	p, _ := newTestPlotter(t)

	path, err := p.FeatureImportance([]ml.Importance{{Feature: "age", Weight: 0.6}, {Feature: "income", Weight: 0.4}})
	require.NoError(t, err)
	assertPNG(t, path)

	actual := []float64{1, 2, 3}
	results := []ml.ModelResult{
		{Name: "Linear Regression", Predictions: []float64{1.1, 1.9, 3.2}},
		{Name: "Baseline (income only)", Predictions: []float64{2, 2, 2}},
	}
	path, err = p.PredictionsComparison(actual, results)
	require.NoError(t, err)
	assert.Equal(t, PredictionsComparisonFile, filepath.Base(path))
	assertPNG(t, path)

	_, err = p.PredictionsComparison(actual, []ml.ModelResult{{Name: "short", Predictions: []float64{1}}})
	assert.Error(t, err)
}
