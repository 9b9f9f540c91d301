// Package stats handles the stats stage: descriptive statistics and
// hypothesis tests
package stats

import (
	"fmt"
	"io"

	"fjacquet/sales-insights/cmd/common"
	"fjacquet/sales-insights/cmd/root"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/report"
	"fjacquet/sales-insights/internal/validation"

	"github.com/spf13/cobra"
)

// ReportName is the base name of the statistics report file.
const ReportName = "statistics"

var reportFormat string

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Run descriptive statistics and hypothesis tests",
	Long: `Run the statistical analysis over the cleaned datasets: descriptive statistics
and confidence intervals for revenue and satisfaction, a one-way ANOVA of
revenue across categories, a t-test of satisfaction by gender, a regression of
purchase frequency on income and Pearson correlation tests.

With --report the results are also written as json or yaml.`,
	Run: statsFunc,
}

func init() {
	Cmd.Flags().StringVar(&reportFormat, "report", "", "Also write the report as json or yaml")
}

func statsFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	c := common.RequireContainer(root.GetContainer(), logger)

	if err := Run(c, cmd.OutOrStdout(), reportFormat); err != nil {
		logger.Fatalf("Error running statistics: %v", err)
	}
	logger.Info("Stats stage completed successfully!")
}

// Run analyzes the cleaned datasets, prints the report and optionally writes it.
func Run(c *container.Container, out io.Writer, format string) error {
	format = validation.NormalizeReportFormat(format)
	if err := validation.IsValidReportFormat(format); err != nil {
		return err
	}

	salesPath, customersPath := common.CleanedPaths(c.GetConfig())
	sales, customers, err := common.LoadData(c.GetStore(), salesPath, customersPath, c.GetLogger())
	if err != nil {
		return err
	}

	result := c.GetAnalyzer().Run(sales, customers)
	if err := report.PrintStats(out, result); err != nil {
		return err
	}

	path, err := common.WriteReport(c, "stats", ReportName, format, result)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(out, "\nReport written to %s\n", path)
	}
	return nil
}
