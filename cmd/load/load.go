// Package load handles the load stage: a first look at the raw datasets
package load

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

// Cmd represents the load command
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Profile the raw sales and customer datasets",
	Long: `Load the raw sales and customer CSV files and print an overview of each:
shape, column types, the first rows, descriptive statistics and missing values.`,
	Run: loadFunc,
}

func loadFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	c := common.RequireContainer(root.GetContainer(), logger)

	if err := Run(c, cmd.OutOrStdout()); err != nil {
		logger.Fatalf("Error loading datasets: %v", err)
	}
	logger.Info("Load stage completed successfully!")
}

// Run profiles both raw datasets and checks that they decode into records.
func Run(c *container.Container, out io.Writer) error {
	salesPath, customersPath := common.RawPaths(c.GetConfig())

	for _, path := range []string{salesPath, customersPath} {
		if err := validation.IsValidInputFile(path); err != nil {
			return err
		}
		overview, err := c.GetStore().Overview(path)
		if err != nil {
			return err
		}
		if err := report.PrintOverview(out, overview); err != nil {
			return err
		}
	}

	sales, customers, err := common.LoadData(c.GetStore(), salesPath, customersPath, c.GetLogger())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nLoaded %d sales records and %d customer records.\n", len(sales), len(customers))
	return nil
}
