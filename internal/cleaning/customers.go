package cleaning

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/sales-insights/internal/dateutils"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
)

// CustomersReport summarizes a CleanCustomers run.
type CustomersReport struct {
	InputRows         int `json:"input_rows" yaml:"input_rows"`
	OutputRows        int `json:"output_rows" yaml:"output_rows"`
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`
	FutureMemberships int `json:"future_memberships" yaml:"future_memberships"`
	AgeOutliers       int `json:"age_outliers" yaml:"age_outliers"`
	InvalidRecords    int `json:"invalid_records" yaml:"invalid_records"`
}

// CleanCustomers uppercases gender, computes membership_days against now,
// flags age outliers and other validation failures, and drops exact duplicate
// rows. Outliers are counted, never removed. The input slice is not modified.
func (c *Cleaner) CleanCustomers(customers []models.Customer, now time.Time) ([]models.Customer, CustomersReport) {
	start := time.Now()
	log := c.stageLogger("customers")
	report := CustomersReport{InputRows: len(customers)}

	rows := make([]models.Customer, len(customers))
	copy(rows, customers)

	for i := range rows {
		rows[i].Gender = strings.ToUpper(strings.TrimSpace(rows[i].Gender))

		days := dateutils.DaysBetween(rows[i].MemberSince.Time, now)
		if days < 0 {
			report.FutureMemberships++
			days = 0
		}
		rows[i].MembershipDays = days
	}
	log.Debug("Standardized gender and computed membership duration")
	if report.FutureMemberships > 0 {
		log.Warn("Membership start dates in the future clamped to zero days",
			logging.F(logging.FieldCount, report.FutureMemberships))
	}

	rows, report.DuplicatesRemoved = dedupCustomers(rows)
	if report.DuplicatesRemoved > 0 {
		log.Info("Removed duplicate rows", logging.F(logging.FieldCount, report.DuplicatesRemoved))
	}

	ageRule := fmt.Sprintf("gte=%d,lte=%d", c.opts.MinAge, c.opts.MaxAge)
	for _, cust := range rows {
		if err := c.validate.Var(cust.Age, ageRule); err != nil {
			report.AgeOutliers++
		}
		if err := c.validate.StructExcept(cust, "Age"); err != nil {
			report.InvalidRecords++
			log.Debug("Customer failed validation",
				logging.F("customer_id", cust.CustomerID),
				logging.F("fields", failedFields(err)))
		}
	}
	if report.AgeOutliers > 0 {
		log.Warn("Found age outliers", logging.F(logging.FieldCount, report.AgeOutliers))
	}
	if report.InvalidRecords > 0 {
		log.Warn("Customer records failed validation", logging.F(logging.FieldCount, report.InvalidRecords))
	}

	report.OutputRows = len(rows)
	log.Info("Cleaned customer data",
		logging.F(logging.FieldRows, report.OutputRows),
		logging.F(logging.FieldDuration, elapsedMillis(start)))
	return rows, report
}

func dedupCustomers(rows []models.Customer) ([]models.Customer, int) {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0]
	for _, cust := range rows {
		key := cust.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cust)
	}
	return out, len(rows) - len(out)
}
