// Package validation checks user supplied paths and options before a stage runs.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReportFormats lists the report encodings the CLI can write.
var ReportFormats = []string{"json", "yaml", "xlsx"}

// IsValidInputFile checks that path names an existing, regular CSV file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("input path %s is not a regular file", path)
	}

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return fmt.Errorf("input file %s must have a .csv extension", path)
	}

	return nil
}

// NormalizeReportFormat trims and lowercases a --report value.
func NormalizeReportFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// IsValidReportFormat checks if the given report format is supported,
// ignoring case. An empty format means "no report" and is accepted.
func IsValidReportFormat(format string) error {
	format = NormalizeReportFormat(format)
	if format == "" {
		return nil
	}
	for _, f := range ReportFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are %s",
		format, strings.Join(ReportFormats, ", "))
}

// IsValidFraction checks that v lies strictly between 0 and 1.
func IsValidFraction(name string, v float64) error {
	if v <= 0 || v >= 1 {
		return fmt.Errorf("%s must be between 0 and 1 (exclusive), got %g", name, v)
	}
	return nil
}
