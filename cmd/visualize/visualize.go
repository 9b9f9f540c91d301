// Package visualize handles the visualize stage: PNG charts of the cleaned data
package visualize

import (
	"fmt"
	"io"

	"fjacquet/sales-insights/cmd/common"
	"fjacquet/sales-insights/cmd/root"
	"fjacquet/sales-insights/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the visualize command
var Cmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render charts of the cleaned data as PNG files",
	Long: `Render revenue by category, the daily sales trend, the regional revenue
share, the customer age distribution, income vs satisfaction and the
correlation heat map into the output directory.`,
	Run: visualizeFunc,
}

func visualizeFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	c := common.RequireContainer(root.GetContainer(), logger)

	if err := Run(c, cmd.OutOrStdout()); err != nil {
		logger.Fatalf("Error rendering charts: %v", err)
	}
	logger.Info("Visualize stage completed successfully!")
}

// Run renders the exploration charts and lists the files written.
func Run(c *container.Container, out io.Writer) error {
	salesPath, customersPath := common.CleanedPaths(c.GetConfig())
	sales, customers, err := common.LoadData(c.GetStore(), salesPath, customersPath, c.GetLogger())
	if err != nil {
		return err
	}

	result := c.GetExplorer().Run(sales, customers)
	paths, err := c.GetPlotter().RenderExploration(result, customers)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Rendered %d charts at %d DPI:\n", len(paths), c.GetPlotter().DPI())
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
