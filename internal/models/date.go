package models

import (
	"encoding/json"
	"time"

	"fjacquet/sales-insights/internal/dateutils"
)

// Date is a calendar date that reads any layout dateutils understands and
// always writes ISO 2006-01-02, in CSV, JSON and YAML alike.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s with dateutils.ParseDate.
func ParseDate(s string) (Date, error) {
	t, _, err := dateutils.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String returns the ISO form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return dateutils.ToISODate(d.Time)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *Date) UnmarshalCSV(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the ISO date as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalYAML writes the ISO date as a plain scalar.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
