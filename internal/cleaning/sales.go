package cleaning

import (
	"time"

	"fjacquet/sales-insights/internal/dateutils"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"

	"github.com/shopspring/decimal"
)

// SalesReport summarizes a CleanSales run.
type SalesReport struct {
	InputRows         int `json:"input_rows" yaml:"input_rows"`
	OutputRows        int `json:"output_rows" yaml:"output_rows"`
	MissingDates      int `json:"missing_dates" yaml:"missing_dates"`
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`
	RevenueMismatches int `json:"revenue_mismatches" yaml:"revenue_mismatches"`
	InvalidRecords    int `json:"invalid_records" yaml:"invalid_records"`
}

// CleanSales derives year, month and day_of_week from the date, drops
// duplicate rows keeping the first occurrence, and reconciles revenue to
// quantity × price. The input slice is not modified.
func (c *Cleaner) CleanSales(sales []models.Sale) ([]models.Sale, SalesReport) {
	start := time.Now()
	log := c.stageLogger("sales")
	report := SalesReport{InputRows: len(sales)}

	rows := make([]models.Sale, len(sales))
	copy(rows, sales)

	for i := range rows {
		if rows[i].Date.IsZero() {
			report.MissingDates++
			rows[i].Year, rows[i].Month, rows[i].DayOfWeek = 0, 0, ""
			continue
		}
		rows[i].Year = rows[i].Date.Year()
		rows[i].Month = int(rows[i].Date.Month())
		rows[i].DayOfWeek = dateutils.WeekdayName(rows[i].Date.Time)
	}
	log.Debug("Derived date features")
	if report.MissingDates > 0 {
		log.Warn("Rows without a date", logging.F(logging.FieldCount, report.MissingDates))
	}

	rows, removed := dedupSales(rows)
	report.DuplicatesRemoved = removed

	tolerance := decimal.NewFromFloat(c.opts.RevenueTolerance)
	for i := range rows {
		expected := rows[i].ExpectedRevenue()
		if rows[i].Revenue.Sub(expected).Abs().GreaterThan(tolerance) {
			report.RevenueMismatches++
		}
		rows[i].Revenue = expected
	}
	if report.RevenueMismatches > 0 {
		log.Warn("Found revenue calculation mismatches", logging.F(logging.FieldCount, report.RevenueMismatches))
	}

	// Rows that differed only in their stored revenue are identical now.
	rows, removed = dedupSales(rows)
	report.DuplicatesRemoved += removed
	if report.DuplicatesRemoved > 0 {
		log.Info("Removed duplicate rows", logging.F(logging.FieldCount, report.DuplicatesRemoved))
	}

	for _, s := range rows {
		if err := c.validate.Struct(s); err != nil {
			report.InvalidRecords++
			log.Debug("Sale failed validation",
				logging.F("product", s.Product),
				logging.F("fields", failedFields(err)))
		}
	}
	if report.InvalidRecords > 0 {
		log.Warn("Sales records failed validation", logging.F(logging.FieldCount, report.InvalidRecords))
	}

	report.OutputRows = len(rows)
	log.Info("Cleaned sales data",
		logging.F(logging.FieldRows, report.OutputRows),
		logging.F(logging.FieldDuration, elapsedMillis(start)))
	return rows, report
}

func dedupSales(rows []models.Sale) ([]models.Sale, int) {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0]
	for _, s := range rows {
		key := s.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out, len(rows) - len(out)
}
