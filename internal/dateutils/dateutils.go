// Package dateutils provides the date checks applied to report columns.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"sunlight/senate-csv/internal/parsererror"
)

// Date layouts found in the reports and their derived outputs
const (
	DateLayoutUS  = "01/02/2006"
	DateLayoutISO = "2006-01-02"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses inner whitespace
func CleanDateString(dateStr string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseUSDate parses an MM/DD/YYYY date
func ParseUSDate(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.Parse(DateLayoutUS, clean)
	if err != nil {
		return time.Time{}, &parsererror.ParseError{Field: "date", Value: dateStr, Err: err}
	}
	return t, nil
}

// IsValidUSDate reports whether dateStr is a real MM/DD/YYYY calendar date
func IsValidUSDate(dateStr string) bool {
	_, err := ParseUSDate(dateStr)
	return err == nil
}

// ToISODate converts an MM/DD/YYYY date to YYYY-MM-DD. Unparseable input is
// returned unchanged.
func ToISODate(dateStr string) string {
	t, err := ParseUSDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(DateLayoutISO)
}

// CompareDates compares two dates by calendar day and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}

// ValidPeriod reports whether start and end parse and start is not after
// end. Blank bounds are accepted.
func ValidPeriod(start, end string) bool {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return true
	}
	s, err := ParseUSDate(start)
	if err != nil {
		return false
	}
	e, err := ParseUSDate(end)
	if err != nil {
		return false
	}
	return CompareDates(s, e) <= 0
}
