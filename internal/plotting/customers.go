package plotting

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"

	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/models"
)

// AgeDistribution draws a histogram of customer ages.
func (p *Plotter) AgeDistribution(customers []models.Customer) (string, error) {
	if len(customers) == 0 {
		return "", fmt.Errorf("age distribution: %w", ErrNoData)
	}
	ages := make(plotter.Values, len(customers))
	for i, c := range customers {
		ages[i] = float64(c.Age)
	}

	plt := newPlot("Customer Age Distribution", "Age", "Customers")
	hist, err := plotter.NewHist(ages, AgeBins)
	if err != nil {
		return "", err
	}
	hist.FillColor = plotutil.Color(3)
	plt.Add(hist)
	return p.save(plt, AgeDistributionFile)
}

// IncomeVsSatisfaction draws a scatter of income against satisfaction score.
func (p *Plotter) IncomeVsSatisfaction(customers []models.Customer) (string, error) {
	if len(customers) == 0 {
		return "", fmt.Errorf("income vs satisfaction: %w", ErrNoData)
	}
	xys := make(plotter.XYs, len(customers))
	for i, c := range customers {
		xys[i] = plotter.XY{X: c.Income, Y: c.SatisfactionScore}
	}

	plt := newPlot("Income vs Satisfaction Score", "Income", "Satisfaction Score")
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return "", err
	}
	scatter.Color = plotutil.Color(4)
	plt.Add(plotter.NewGrid(), scatter)
	return p.save(plt, IncomeVsSatisfactionFile)
}

// correlationGrid adapts a CorrelationMatrix to plotter.GridXYZ.
type correlationGrid struct {
	m explore.CorrelationMatrix
}

func (g correlationGrid) Dims() (c, r int)   { return len(g.m.Columns), len(g.m.Columns) }
func (g correlationGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g correlationGrid) X(c int) float64    { return float64(c) }
func (g correlationGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap draws the correlation matrix on a blue-red diverging
// palette fixed to [-1, 1], with each coefficient printed in its cell.
// Undefined coefficients are grey and labelled n/a.
func (p *Plotter) CorrelationHeatmap(m explore.CorrelationMatrix) (string, error) {
	n := len(m.Columns)
	if n == 0 || len(m.Values) != n {
		return "", fmt.Errorf("correlation heatmap: %w", ErrNoData)
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)
	heat := plotter.NewHeatMap(correlationGrid{m: m}, colors.Palette(255))
	heat.Min, heat.Max = -1, 1
	heat.NaN = color.Gray{Y: 200}

	labels := plotter.XYLabels{XYs: make(plotter.XYs, 0, n*n), Labels: make([]string, 0, n*n)}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			text := "n/a"
			if v := m.Values[r][c]; !math.IsNaN(v) {
				text = fmt.Sprintf("%.2f", v)
			}
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			labels.Labels = append(labels.Labels, text)
		}
	}
	annotations, err := plotter.NewLabels(labels)
	if err != nil {
		return "", err
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
	}

	plt := newPlot("Correlation Matrix", "", "")
	plt.Add(heat, annotations)
	plt.NominalX(m.Columns...)
	plt.NominalY(m.Columns...)
	return p.save(plt, CorrelationHeatmapFile)
}
