package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"fjacquet/sales-insights/internal/explore"
)

// RevenueByCategory draws total revenue per category, in the order given
// (explore sorts it descending).
func (p *Plotter) RevenueByCategory(categories []explore.CategorySummary) (string, error) {
	if len(categories) == 0 {
		return "", fmt.Errorf("revenue by category: %w", ErrNoData)
	}
	values := make(plotter.Values, len(categories))
	names := make([]string, len(categories))
	for i, c := range categories {
		values[i] = c.TotalRevenue.InexactFloat64()
		names[i] = c.Category
	}

	plt := newPlot("Total Revenue by Category", "Category", "Revenue")
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return "", err
	}
	bars.Color = plotutil.Color(0)
	plt.Add(bars, plotter.NewGrid())
	plt.NominalX(names...)
	return p.save(plt, RevenueByCategoryFile)
}

// SalesTrend draws daily revenue as a line with points on a time axis.
func (p *Plotter) SalesTrend(daily []explore.DailyRevenue) (string, error) {
	if len(daily) == 0 {
		return "", fmt.Errorf("sales trend: %w", ErrNoData)
	}
	xys := make(plotter.XYs, len(daily))
	for i, d := range daily {
		xys[i].X = float64(d.Date.Unix())
		xys[i].Y = d.Revenue.InexactFloat64()
	}

	plt := newPlot("Daily Sales Trend", "Date", "Revenue")
	plt.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return "", err
	}
	line.Color = plotutil.Color(1)
	points.Color = plotutil.Color(1)
	plt.Add(plotter.NewGrid(), line, points)
	return p.save(plt, SalesTrendFile)
}

// RegionalDistribution draws each region's share of revenue in percent,
// labelled above each bar.
func (p *Plotter) RegionalDistribution(regions []explore.RegionSummary) (string, error) {
	var total float64
	for _, r := range regions {
		total += r.TotalRevenue.InexactFloat64()
	}
	if len(regions) == 0 || total == 0 {
		return "", fmt.Errorf("regional distribution: %w", ErrNoData)
	}

	values := make(plotter.Values, len(regions))
	names := make([]string, len(regions))
	labels := plotter.XYLabels{XYs: make(plotter.XYs, len(regions)), Labels: make([]string, len(regions))}
	for i, r := range regions {
		share := 100 * r.TotalRevenue.InexactFloat64() / total
		values[i] = share
		names[i] = r.Region
		labels.XYs[i] = plotter.XY{X: float64(i), Y: share}
		labels.Labels[i] = fmt.Sprintf("%.1f%%", share)
	}

	plt := newPlot("Sales Distribution by Region", "Region", "Share of revenue (%)")
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return "", err
	}
	bars.Color = plotutil.Color(2)
	text, err := plotter.NewLabels(labels)
	if err != nil {
		return "", err
	}
	for i := range text.TextStyle {
		text.TextStyle[i].XAlign = draw.XCenter
	}
	text.Offset = vg.Point{Y: vg.Points(3)}
	plt.Add(bars, text)
	plt.NominalX(names...)
	plt.Y.Min = 0
	return p.save(plt, RegionalDistributionFile)
}
