// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"fjacquet/sales-insights/internal/config"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
	"fjacquet/sales-insights/internal/report"
	"fjacquet/sales-insights/internal/validation"
)

// DataSource loads the datasets a stage works on.
type DataSource interface {
	LoadSales(path string) ([]models.Sale, error)
	LoadCustomers(path string) ([]models.Customer, error)
}

// RawPaths returns the configured raw sales and customers files.
func RawPaths(cfg *config.Config) (sales, customers string) {
	return cfg.SalesPath(), cfg.CustomersPath()
}

// CleanedPaths returns the files written by the clean stage.
func CleanedPaths(cfg *config.Config) (sales, customers string) {
	return cfg.CleanedPath(cfg.SalesPath()), cfg.CleanedPath(cfg.CustomersPath())
}

// LoadData validates and loads both datasets.
func LoadData(src DataSource, salesPath, customersPath string, log logging.Logger) ([]models.Sale, []models.Customer, error) {
	for _, p := range []string{salesPath, customersPath} {
		if err := validation.IsValidInputFile(p); err != nil {
			return nil, nil, err
		}
	}

	sales, err := src.LoadSales(salesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading sales: %w", err)
	}
	customers, err := src.LoadCustomers(customersPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading customers: %w", err)
	}

	log.Info("Loaded datasets",
		logging.Field{Key: "sales_rows", Value: len(sales)},
		logging.Field{Key: "customer_rows", Value: len(customers)})
	return sales, customers, nil
}

// RequireContainer stops the command when no container was built.
func RequireContainer(c *container.Container, log logging.Logger) *container.Container {
	if c == nil {
		log.Fatal("Container not initialized")
	}
	return c
}

// WriteReport writes a stage report named name into the output directory.
// An empty format falls back to output.report_format; when both are empty
// nothing is written. json and yaml reports are wrapped in a run envelope.
// xlsx is only available for exploration reports.
func WriteReport(c *container.Container, stage, name, format string, r any) (string, error) {
	if format == "" {
		format = c.GetConfig().Output.ReportFormat
	}
	format = validation.NormalizeReportFormat(format)
	if format == "" {
		return "", nil
	}
	if err := validation.IsValidReportFormat(format); err != nil {
		return "", err
	}

	gen := c.GetReportGenerator()
	path := report.ReportPath(c.GetConfig().Output.Directory, name, format)

	if format == report.FormatXLSX {
		exploration, ok := r.(*explore.Report)
		if !ok {
			return "", fmt.Errorf("xlsx output is only available for the explore stage")
		}
		return path, gen.WriteWorkbook(exploration, path)
	}
	return path, gen.WriteReport(gen.NewEnvelope(stage, r, c.Now()), format, path)
}
