// Package explore handles the explore stage: sales and customer aggregates
package explore

import (
	"fmt"
	"io"

	"fjacquet/sales-insights/cmd/common"
	"fjacquet/sales-insights/cmd/root"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/report"

	"github.com/spf13/cobra"
)

// ReportName is the base name of the exploration report file.
const ReportName = "exploration"

var (
	reportFormat string
	topProducts  int
)

// Cmd represents the explore command
var Cmd = &cobra.Command{
	Use:   "explore",
	Short: "Aggregate the cleaned sales and customer data",
	Long: `Explore the cleaned datasets: revenue by category and region, top products,
customer segments by gender and age group, attribute correlations and a summary.

With --report the full exploration is also written to the output directory
as json, yaml or an xlsx workbook with one sheet per section.`,
	Run: exploreFunc,
}

func init() {
	Cmd.Flags().StringVar(&reportFormat, "report", "", "Also write the report as json, yaml or xlsx")
	Cmd.Flags().IntVar(&topProducts, "top", 0, "Number of top products to list (default from config)")
}

func exploreFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	c := common.RequireContainer(root.GetContainer(), logger)

	if err := Run(c, cmd.OutOrStdout(), reportFormat, topProducts); err != nil {
		logger.Fatalf("Error exploring datasets: %v", err)
	}
	logger.Info("Explore stage completed successfully!")
}

// Run explores the cleaned datasets, prints every section and optionally
// writes the report. A positive top overrides the configured product count.
func Run(c *container.Container, out io.Writer, format string, top int) error {
	salesPath, customersPath := common.CleanedPaths(c.GetConfig())
	sales, customers, err := common.LoadData(c.GetStore(), salesPath, customersPath, c.GetLogger())
	if err != nil {
		return err
	}

	explorer := c.GetExplorer()
	if top > 0 {
		explorer = explore.NewExplorer(c.GetLogger(), top)
	}
	result := explorer.Run(sales, customers)

	if err := report.PrintExploration(out, result); err != nil {
		return err
	}

	path, err := common.WriteReport(c, "explore", ReportName, format, result)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(out, "\nReport written to %s\n", path)
	}
	return nil
}
