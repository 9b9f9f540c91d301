// Package clean handles the clean stage: revenue reconciliation, derived
// features and duplicate removal
package clean

import (
	"fmt"
	"io"

	"fjacquet/sales-insights/cmd/common"
	"fjacquet/sales-insights/cmd/root"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
	"fjacquet/sales-insights/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the clean command
var Cmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw datasets and write *_cleaned.csv files",
	Long: `Clean the raw sales and customer CSV files.

Sales get year, month and day_of_week columns, duplicate rows are dropped and
revenue is reconciled to quantity x price. Customers get an uppercase gender
and a membership_days column. The results are written next to the inputs.`,
	Run: cleanFunc,
}

func cleanFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	c := common.RequireContainer(root.GetContainer(), logger)

	if err := Run(c, cmd.OutOrStdout()); err != nil {
		logger.Fatalf("Error cleaning datasets: %v", err)
	}
	logger.Info("Clean stage completed successfully!")
}

// Run cleans both raw datasets and writes the cleaned files.
func Run(c *container.Container, out io.Writer) error {
	cfg := c.GetConfig()
	store := c.GetStore()

	salesPath, customersPath := common.RawPaths(cfg)
	sales, customers, err := common.LoadData(store, salesPath, customersPath, c.GetLogger())
	if err != nil {
		return err
	}

	cleanedSales, salesReport := c.GetCleaner().CleanSales(sales)
	cleanedCustomers, customersReport := c.GetCleaner().CleanCustomers(customers, c.Now())

	salesOut, customersOut := common.CleanedPaths(cfg)
	if err := store.SaveSales(salesOut, cleanedSales); err != nil {
		return fmt.Errorf("error writing cleaned sales: %w", err)
	}
	if err := store.SaveCustomers(customersOut, cleanedCustomers); err != nil {
		return fmt.Errorf("error writing cleaned customers: %w", err)
	}
	c.GetLogger().Info("Wrote cleaned datasets",
		logging.Field{Key: logging.FieldOutputFile, Value: salesOut},
		logging.Field{Key: "customers_file", Value: customersOut})

	if err := report.PrintCleaning(out, salesReport, customersReport); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nCleaned sales: %d rows x %d columns -> %s\n", len(cleanedSales), len(models.CleanedSaleColumns), salesOut)
	fmt.Fprintf(out, "Cleaned customers: %d rows x %d columns -> %s\n", len(cleanedCustomers), len(models.CleanedCustomerColumns), customersOut)
	return nil
}
