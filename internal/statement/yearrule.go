package statement

import (
	"fmt"
	"time"

	"fjacquet/finflow/internal/dateutils"
)

// YearRule infers the year of a statement date. Months at or after
// RolloverMonth belong to BaseYear-1, every other month to BaseYear; this
// covers a statement spanning one New Year with December as its oldest month.
type YearRule struct {
	BaseYear      int
	RolloverMonth time.Month
}

// NewYearRule returns the rule for baseYear with a December rollover. A
// non-positive baseYear means the current year.
func NewYearRule(baseYear int) YearRule {
	if baseYear <= 0 {
		baseYear = time.Now().Year()
	}
	return YearRule{BaseYear: baseYear, RolloverMonth: time.December}
}

// YearFor returns the year assigned to month.
func (r YearRule) YearFor(month time.Month) int {
	rollover := r.RolloverMonth
	if rollover < time.January || rollover > time.December {
		rollover = time.December
	}
	if month >= rollover {
		return r.BaseYear - 1
	}
	return r.BaseYear
}

// Resolve attaches a year to dm and rejects impossible calendar dates.
func (r YearRule) Resolve(dm DayMonth) (time.Time, error) {
	year := r.YearFor(dm.Month)
	date, ok := dateutils.CalendarDate(year, dm.Month, dm.Day)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid calendar date: %d %s %d", dm.Day, dm.Month, year)
	}
	return date, nil
}
