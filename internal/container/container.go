// Package container provides dependency injection for the sales-insights application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"fjacquet/sales-insights/internal/cleaning"
	"fjacquet/sales-insights/internal/config"
	"fjacquet/sales-insights/internal/dataset"
	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/ml"
	"fjacquet/sales-insights/internal/plotting"
	"fjacquet/sales-insights/internal/report"
	"fjacquet/sales-insights/internal/stats"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation: fields are private and only reachable
// through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *dataset.Store
	cleaner    *cleaning.Cleaner
	explorer   *explore.Explorer
	analyzer   *stats.Analyzer
	plotter    *plotting.Plotter
	generator  *report.ReportGenerator
	experiment *ml.Experiment
	now        func() time.Time
}

// Option customizes a Container during construction.
type Option func(*Container)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

// WithClock replaces time.Now, which drives membership_days and report timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) { c.now = now }
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	c.store = dataset.NewStore(c.logger, cfg.DelimiterRune())
	c.cleaner = cleaning.NewCleaner(c.logger, cleaning.Options{
		RevenueTolerance: cfg.Cleaning.RevenueTolerance,
		MinAge:           cfg.Cleaning.MinAge,
		MaxAge:           cfg.Cleaning.MaxAge,
	})
	c.explorer = explore.NewExplorer(c.logger, cfg.Analysis.TopProducts)
	c.analyzer = stats.NewAnalyzer(c.logger, stats.Options{
		Alpha:      cfg.Analysis.Alpha,
		Confidence: cfg.Analysis.Confidence,
		Categories: cfg.Analysis.Categories,
	})
	c.plotter = plotting.NewPlotter(c.logger, cfg.Output.Directory, cfg.Output.DPI)
	c.generator = report.NewReportGenerator(c.logger)
	c.experiment = ml.NewExperiment(c.logger, cfg.ML.TestSize, cfg.ML.Seed)

	c.logger.Debug("Container initialized successfully",
		logging.Field{Key: "data_dir", Value: cfg.Data.Directory},
		logging.Field{Key: "output_dir", Value: cfg.Output.Directory})

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the CSV dataset store.
func (c *Container) GetStore() *dataset.Store {
	return c.store
}

// GetCleaner returns the data cleaner.
func (c *Container) GetCleaner() *cleaning.Cleaner {
	return c.cleaner
}

// GetExplorer returns the exploratory analysis runner.
func (c *Container) GetExplorer() *explore.Explorer {
	return c.explorer
}

// GetAnalyzer returns the statistical analyzer.
func (c *Container) GetAnalyzer() *stats.Analyzer {
	return c.analyzer
}

// GetPlotter returns the chart renderer.
func (c *Container) GetPlotter() *plotting.Plotter {
	return c.plotter
}

// GetReportGenerator returns the report writer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.generator
}

// GetExperiment returns the prediction experiment configured from ml settings.
func (c *Container) GetExperiment() *ml.Experiment {
	return c.experiment
}

// Now returns the current time according to the container's clock.
func (c *Container) Now() time.Time {
	return c.now()
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
