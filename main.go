package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/sales-insights/cmd/clean"
	"fjacquet/sales-insights/cmd/explore"
	"fjacquet/sales-insights/cmd/load"
	"fjacquet/sales-insights/cmd/predict"
	"fjacquet/sales-insights/cmd/root"
	"fjacquet/sales-insights/cmd/stats"
	"fjacquet/sales-insights/cmd/visualize"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the shared logger before any command logs
	configureLogLevelDirectly()

	// 3. Initialize root command flags and hooks
	root.Init()

	// 4. Add the pipeline stages in execution order
	root.Cmd.AddCommand(load.Cmd)
	root.Cmd.AddCommand(clean.Cmd)
	root.Cmd.AddCommand(explore.Cmd)
	root.Cmd.AddCommand(visualize.Cmd)
	root.Cmd.AddCommand(stats.Cmd)
	root.Cmd.AddCommand(predict.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly applies LOG_LEVEL and LOG_FORMAT to the global
// logrus instance and the shared command logger, and returns the level.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	root.Log.SetLevel(logLevel)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		root.Log.SetFormatter(&logrus.JSONFormatter{})
	}

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
