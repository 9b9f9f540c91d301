// Package cleaning normalizes raw sales and customer records: derived date
// columns, duplicate removal, revenue reconciliation, membership length and
// data-quality flags.
package cleaning

import (
	"errors"
	"fmt"
	"time"

	"fjacquet/sales-insights/internal/logging"

	"github.com/go-playground/validator/v10"
)

// Options tune the cleaning rules.
type Options struct {
	RevenueTolerance float64
	MinAge           int
	MaxAge           int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{RevenueTolerance: 0.01, MinAge: 18, MaxAge: 100}
}

// Cleaner applies the cleaning rules and reports what it changed.
type Cleaner struct {
	logger   logging.Logger
	validate *validator.Validate
	opts     Options
}

// NewCleaner creates a Cleaner.
func NewCleaner(logger logging.Logger, opts Options) *Cleaner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Cleaner{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		opts:     opts,
	}
}

// failedFields lists the struct fields rejected by the validator.
func failedFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			return []string{err.Error()}
		}
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return fields
}

func (c *Cleaner) stageLogger(dataset string) logging.Logger {
	return c.logger.WithFields(
		logging.F(logging.FieldStage, "clean"),
		logging.F(logging.FieldDataset, dataset),
	)
}

func elapsedMillis(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
