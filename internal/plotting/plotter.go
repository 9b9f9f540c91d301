// Package plotting renders the analysis charts as PNG files with gonum/plot.
package plotting

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"fjacquet/sales-insights/internal/fileutils"
	"fjacquet/sales-insights/internal/logging"
)

// Chart file names.
const (
	RevenueByCategoryFile     = "revenue_by_category.png"
	SalesTrendFile            = "sales_trend.png"
	RegionalDistributionFile  = "regional_distribution.png"
	AgeDistributionFile       = "age_distribution.png"
	IncomeVsSatisfactionFile  = "income_vs_satisfaction.png"
	CorrelationHeatmapFile    = "correlation_heatmap.png"
	FeatureImportanceFile     = "feature_importance.png"
	PredictionsComparisonFile = "predictions_comparison.png"
)

// DefaultDPI is used when no positive DPI is configured.
const DefaultDPI = 300

// AgeBins is the number of histogram bins for the age distribution.
const AgeBins = 15

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to plot")

// Plotter writes charts into an output directory.
type Plotter struct {
	logger    logging.Logger
	outputDir string
	dpi       int
	width     vg.Length
	height    vg.Length
}

// NewPlotter creates a Plotter writing into outputDir at the given DPI.
func NewPlotter(logger logging.Logger, outputDir string, dpi int) *Plotter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Plotter{
		logger:    logger,
		outputDir: outputDir,
		dpi:       dpi,
		width:     10 * vg.Inch,
		height:    6 * vg.Inch,
	}
}

// OutputDir returns the directory charts are written into.
func (p *Plotter) OutputDir() string {
	return p.outputDir
}

// DPI returns the effective resolution.
func (p *Plotter) DPI() int {
	return p.dpi
}

func (p *Plotter) newCanvas(width, height vg.Length) *vgimg.Canvas {
	return vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(p.dpi))
}

// save draws a single plot at the default size and writes it as name.
func (p *Plotter) save(plt *plot.Plot, name string) (string, error) {
	c := p.newCanvas(p.width, p.height)
	plt.Draw(draw.New(c))
	return p.write(c, name)
}

func (p *Plotter) write(c *vgimg.Canvas, name string) (string, error) {
	start := time.Now()
	path := filepath.Join(p.outputDir, name)

	f, err := fileutils.CreateFile(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.logger.WithError(cerr).Warn("Failed to close chart file",
				logging.Field{Key: logging.FieldOutputFile, Value: path})
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	p.logger.Info("Saved chart",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return path, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = xLabel
	plt.Y.Label.Text = yLabel
	return plt
}
