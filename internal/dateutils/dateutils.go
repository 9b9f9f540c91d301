// Package dateutils provides the date parsing and calendar arithmetic shared by
// the dataset, cleaning and ml packages.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted in the input files.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutRFC3339   = time.RFC3339
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is the ordered list of layouts tried by ParseDate. Ambiguous
// slash dates resolve as US month/day because that is what the generators emit.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutRFC3339,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutWithMonth,
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed time and the detected layout.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty value")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// civilDay maps t's calendar date, read in t's own location, to UTC midnight.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from the date of since to
// the date of now, each taken in its own location. Time of day, zone offsets
// and DST shifts do not move the result. It is negative when since lies in
// the future.
func DaysBetween(since, now time.Time) int {
	return int(civilDay(now).Sub(civilDay(since)).Hours() / 24)
}

// WeekdayName returns the English weekday name, e.g. "Monday".
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}
