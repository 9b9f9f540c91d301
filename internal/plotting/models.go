package plotting

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"fjacquet/sales-insights/internal/ml"
)

// FeatureImportance draws the model's feature weights as horizontal bars,
// largest at the top.
func (p *Plotter) FeatureImportance(importance []ml.Importance) (string, error) {
	if len(importance) == 0 {
		return "", fmt.Errorf("feature importance: %w", ErrNoData)
	}
	n := len(importance)
	values := make(plotter.Values, n)
	names := make([]string, n)
	for i, imp := range importance {
		values[n-1-i] = imp.Weight
		names[n-1-i] = imp.Feature
	}

	plt := newPlot("Feature Importance", "Relative weight", "")
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", err
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(5)
	plt.Add(bars)
	plt.NominalY(names...)
	plt.X.Min = 0
	return p.save(plt, FeatureImportanceFile)
}

// PredictionsComparison draws one actual-vs-predicted panel per model side by
// side, each with a y = x reference line.
func (p *Plotter) PredictionsComparison(actual []float64, results []ml.ModelResult) (string, error) {
	if len(actual) == 0 || len(results) == 0 {
		return "", fmt.Errorf("predictions comparison: %w", ErrNoData)
	}

	row := make([]*plot.Plot, len(results))
	for i, r := range results {
		if len(r.Predictions) != len(actual) {
			return "", fmt.Errorf("predictions comparison: %s has %d predictions for %d actual values",
				r.Name, len(r.Predictions), len(actual))
		}
		xys := make(plotter.XYs, len(actual))
		for j := range actual {
			xys[j] = plotter.XY{X: actual[j], Y: r.Predictions[j]}
		}

		plt := newPlot(fmt.Sprintf("%s: Actual vs Predicted", r.Name), "Actual", "Predicted")
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return "", err
		}
		scatter.Color = plotutil.Color(i)
		identity := plotter.NewFunction(func(x float64) float64 { return x })
		identity.Color = color.RGBA{R: 200, A: 255}
		identity.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		plt.Add(plotter.NewGrid(), scatter, identity)
		row[i] = plt
	}

	width := p.width * vg.Length(len(results)) / 2
	c := p.newCanvas(width, p.height)
	tiles := draw.Tiles{Rows: 1, Cols: len(row), PadX: vg.Millimeter * 5, PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, draw.New(c))
	for i, plt := range row {
		plt.Draw(canvases[0][i])
	}
	return p.write(c, PredictionsComparisonFile)
}
