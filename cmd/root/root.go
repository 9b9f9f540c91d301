// Package root contains the root command for the application
package root

import (
	"fjacquet/sales-insights/internal/config"
	"fjacquet/sales-insights/internal/container"
	"fjacquet/sales-insights/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to every stage command
type CommonFlags struct {
	DataDir   string
	OutputDir string
	Sales     string
	Customers string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppContainer holds the wired dependencies for the running command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sales-insights",
		Short: "A CLI tool to load, clean, explore and model sales and customer CSV data.",
		Long: `sales-insights is a CLI tool for analysing sales transactions and customer profiles.

Each stage is an independent subcommand that reads CSV files from the data
directory and writes its results to the console and the output directory:

  load       profile the raw datasets
  clean      reconcile revenue, derive features and drop duplicates
  explore    aggregate sales and customer segments
  visualize  render charts as PNG files
  stats      run descriptive statistics and hypothesis tests
  predict    train and compare purchase frequency models`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sales-insights!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			ApplyFlags(cfg, SharedFlags)

			Log = config.ConfigureLoggingFromConfig(cfg)
			AppContainer, err = container.NewContainer(cfg, container.WithLogger(logging.NewLogrusAdapterFromLogger(Log)))
			if err != nil {
				Log.Fatalf("Failed to initialize application: %v", err)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.Warnf("Failed to close container: %v", err)
				}
			}
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Directory holding the input CSV files")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.OutputDir, "output-dir", "o", "", "Directory for charts and reports")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Sales, "sales", "", "Sales CSV file name inside the data directory")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Customers, "customers", "", "Customers CSV file name inside the data directory")
}

// ApplyFlags overrides configuration values with the flags that were set.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.DataDir != "" {
		cfg.Data.Directory = flags.DataDir
	}
	if flags.OutputDir != "" {
		cfg.Output.Directory = flags.OutputDir
	}
	if flags.Sales != "" {
		cfg.Data.SalesFile = flags.Sales
	}
	if flags.Customers != "" {
		cfg.Data.CustomersFile = flags.Customers
	}
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return AppContainer
}

// GetLogrusAdapter returns the container logger, or an adapter over Log when
// no container has been built yet.
func GetLogrusAdapter() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}
