// Package predict handles the predict stage: a purchase frequency model
package predict

import (
	"fmt"
	"io"

	"fjacquet/sales-insights/cmd/common"
	"fjacquet/sales-insights/cmd/root"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/ml"
	"fjacquet/sales-insights/internal/report"
	"fjacquet/sales-insights/internal/validation"

	"github.com/spf13/cobra"
)

var (
	testSize float64
	seed     uint64
)

// Cmd represents the predict command
var Cmd = &cobra.Command{
	Use:   "predict",
	Short: "Train and compare purchase frequency models",
	Long: `Predict customer purchase frequency from age, gender, income, membership
length and satisfaction. A multivariate least squares model is compared with
an income-only baseline on a seeded train/test split. Feature importances and
actual-vs-predicted charts are written to the output directory, and an example
customer profile is scored.`,
	Run: predictFunc,
}

func init() {
	Cmd.Flags().Float64Var(&testSize, "test-size", 0, "Fraction of customers held out for testing (default from config)")
	Cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for the train/test split (default from config)")
}

func predictFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	c := common.RequireContainer(root.GetContainer(), logger)

	experiment := c.GetExperiment()
	if cmd.Flags().Changed("test-size") || cmd.Flags().Changed("seed") {
		cfg := c.GetConfig()
		size, s := cfg.ML.TestSize, cfg.ML.Seed
		if cmd.Flags().Changed("test-size") {
			if err := validation.IsValidFraction("test-size", testSize); err != nil {
				logger.Fatalf("Invalid flag: %v", err)
			}
			size = testSize
		}
		if cmd.Flags().Changed("seed") {
			s = seed
		}
		experiment = ml.NewExperiment(logger, size, s)
	}

	if err := Run(c, experiment, cmd.OutOrStdout()); err != nil {
		logger.Fatalf("Error running prediction: %v", err)
	}
	logger.Info("Predict stage completed successfully!")
}

// Run trains the models on the raw customers file, prints their scores and
// importances, renders both model charts and scores the example profile.
func Run(c *container.Container, experiment *ml.Experiment, out io.Writer) error {
	_, customersPath := common.RawPaths(c.GetConfig())
	if err := validation.IsValidInputFile(customersPath); err != nil {
		return err
	}
	customers, err := c.GetStore().LoadCustomers(customersPath)
	if err != nil {
		return fmt.Errorf("error loading customers: %w", err)
	}

	result, err := experiment.Run(customers, c.Now())
	if err != nil {
		return err
	}
	if err := report.PrintModels(out, result); err != nil {
		return err
	}

	plotter := c.GetPlotter()
	for _, render := range []func() (string, error){
		func() (string, error) { return plotter.FeatureImportance(result.Importance) },
		func() (string, error) { return plotter.PredictionsComparison(result.Actual, result.Models) },
	} {
		path, err := render()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Chart written to %s\n", path)
	}

	profile := ml.ExampleProfile()
	predicted, err := result.PredictOne(profile)
	if err != nil {
		return fmt.Errorf("error scoring example profile: %w", err)
	}
	report.Section(out, "Example prediction")
	fmt.Fprintf(out, "Customer aged %d (%s), income %.0f, %d membership days, satisfaction %.1f\n",
		profile.Age, profile.Gender, profile.Income, profile.MembershipDays, profile.SatisfactionScore)
	fmt.Fprintf(out, "Predicted purchase frequency: %.2f\n", predicted)
	return nil
}
