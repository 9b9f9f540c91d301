package plotting

import (
	"errors"

	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
)

// RenderExploration draws the six exploration charts. A chart with no data is
// skipped with a warning; any other failure stops rendering.
func (p *Plotter) RenderExploration(report *explore.Report, customers []models.Customer) ([]string, error) {
	charts := []struct {
		name string
		draw func() (string, error)
	}{
		{RevenueByCategoryFile, func() (string, error) { return p.RevenueByCategory(report.Categories) }},
		{SalesTrendFile, func() (string, error) { return p.SalesTrend(report.DailyRevenue) }},
		{RegionalDistributionFile, func() (string, error) { return p.RegionalDistribution(report.Regions) }},
		{AgeDistributionFile, func() (string, error) { return p.AgeDistribution(customers) }},
		{IncomeVsSatisfactionFile, func() (string, error) { return p.IncomeVsSatisfaction(customers) }},
		{CorrelationHeatmapFile, func() (string, error) { return p.CorrelationHeatmap(report.Correlations) }},
	}

	var written []string
	for _, chart := range charts {
		path, err := chart.draw()
		if errors.Is(err, ErrNoData) {
			p.logger.Warn("Skipping chart without data", logging.Field{Key: logging.FieldOutputFile, Value: chart.name})
			continue
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
