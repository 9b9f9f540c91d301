// Package config loads the .env file and environment-driven logging settings
// used before the Viper configuration is available.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/sales-insights/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	// Logger is the bootstrap logger used until the container builds its own.
	Logger = logrus.New()
)

// ConfigureLogging sets up logging from LOG_LEVEL and LOG_FORMAT and returns the configured logger
func ConfigureLogging() *logrus.Logger {
	Logger = logging.NewLogrus(GetEnv("LOG_LEVEL", "info"), GetEnv("LOG_FORMAT", "text"))
	return Logger
}

// LoadEnv loads environment variables from a .env file if one exists in the
// working directory or its parent.
func LoadEnv() {
	once.Do(func() {
		envFile := findEnvFile()
		if envFile == "" {
			Logger.Debug("No .env file found, using environment variables")
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Debugf("Loaded environment variables from %s", envFile)

		ConfigureLogging()
	})
}

func findEnvFile() string {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}
