// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the calendar-date form used for storage and export.
const DateLayoutISO = "2006-01-02"

// AverageDaysPerMonth is the mean Gregorian month length used for period normalization.
const AverageDaysPerMonth = 30.44

// MonthAbbreviations lists the three-letter month names as they appear on statements.
var MonthAbbreviations = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthFromAbbrev resolves a case-sensitive three-letter month abbreviation.
func MonthFromAbbrev(abbrev string) (time.Month, error) {
	for i, name := range MonthAbbreviations {
		if name == abbrev {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown month abbreviation: %q", abbrev)
}

// CalendarDate builds a UTC date and reports whether day/month/year form a real
// calendar date. time.Date normalizes overflow (30 Feb becomes 1 or 2 Mar), so the
// result is compared back against its inputs.
func CalendarDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseDay parses a 1-2 digit day-of-month token.
func ParseDay(token string) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("invalid day %q: %w", token, err)
	}
	return day, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ParseISODate parses a YYYY-MM-DD date.
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	return t, nil
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange returns the smallest range covering all non-zero dates.
// The second result is false when no date was supplied.
func NewDateRange(dates []time.Time) (DateRange, bool) {
	var r DateRange
	found := false
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if !found || d.Before(r.Start) {
			r.Start = d
		}
		if !found || d.After(r.End) {
			r.End = d
		}
		found = true
	}
	return r, found
}

// Days returns the whole number of days between Start and End.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End)
}

// Contains reports whether date falls within the range, inclusive.
func (r DateRange) Contains(date time.Time) bool {
	return CompareDates(date, r.Start) >= 0 && CompareDates(date, r.End) <= 0
}

// String renders the range as "start to end".
func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", ToISODate(r.Start), ToISODate(r.End))
}

// DaysBetween counts calendar days from date1 to date2, ignoring time of day.
func DaysBetween(date1, date2 time.Time) int {
	d1 := truncate(date1)
	d2 := truncate(date2)
	return int(d2.Sub(d1).Hours() / 24)
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	d1 := truncate(date1)
	d2 := truncate(date2)

	if d1.Before(d2) {
		return -1
	} else if d1.After(d2) {
		return 1
	}
	return 0
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
