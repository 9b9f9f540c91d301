// Package parsererror defines the typed errors surfaced while reading,
// validating and analysing the sales and customer datasets.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError represents a single value that could not be decoded.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a record or file that failed validation.
type ValidationError struct {
	FilePath string
	Record   string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	target := e.FilePath
	if e.Record != "" {
		target = e.Record
	}
	return fmt.Sprintf("validation failed for %s: %s", target, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file whose layout does not match the
// expected dataset, typically a CSV header missing required columns.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	MissingColumns []string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Missing columns: %s",
			e.FilePath, e.Msg, e.ExpectedFormat, strings.Join(e.MissingColumns, ", "))
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// InsufficientDataError is returned when a statistic or model cannot be
// computed from the data it was given (too few observations, zero variance).
type InsufficientDataError struct {
	Operation string
	Need      int
	Got       int
	Reason    string
}

func (e *InsufficientDataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: insufficient data: %s", e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s: insufficient data: need at least %d observations, got %d",
		e.Operation, e.Need, e.Got)
}
