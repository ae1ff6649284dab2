package fortnight

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Half identifies which half of the month a Period covers.
type Half int

const (
	First  Half = 1 // days 1-15
	Second Half = 2 // day 16 to the last day of the month
)

func (h Half) String() string {
	if h == Second {
		return "2nd"
	}
	return "1st"
}

// Period is a bi-weekly pay period. Start and End are calendar dates (midnight in the location
// of the reference date they were derived from) and both are inclusive.
type Period struct {
	Start time.Time
	End   time.Time
	Half  Half
	Month time.Month
	Year  int
}

// Current returns the fortnight containing the reference date.
func Current(ref time.Time) Period {
	year, month, day := ref.Date()
	if day <= 15 {
		return firstHalf(year, month, ref.Location())
	}
	return secondHalf(year, month, ref.Location())
}

// Previous returns the fortnight immediately preceding the one containing the reference date.
// For a date in the first half of January it is the second half of December of the previous year.
func Previous(ref time.Time) Period {
	year, month, day := ref.Date()
	if day > 15 {
		return firstHalf(year, month, ref.Location())
	}
	if month == time.January {
		return secondHalf(year-1, time.December, ref.Location())
	}
	return secondHalf(year, month-1, ref.Location())
}

// LastDayOfMonth returns the number of days in the given month, leap years included.
func LastDayOfMonth(year int, month time.Month) int {
	// day 0 of the following month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func firstHalf(year int, month time.Month, loc *time.Location) Period {
	return Period{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, month, 15, 0, 0, 0, 0, loc),
		Half:  First,
		Month: month,
		Year:  year,
	}
}

func secondHalf(year int, month time.Month, loc *time.Location) Period {
	return Period{
		Start: time.Date(year, month, 16, 0, 0, 0, 0, loc),
		End:   time.Date(year, month, LastDayOfMonth(year, month), 0, 0, 0, 0, loc),
		Half:  Second,
		Month: month,
		Year:  year,
	}
}

// Contains reports whether the calendar date of t falls within the period, both ends inclusive.
// Time of day is ignored.
func (p Period) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(dateOf(p.Start)) && !d.After(dateOf(p.End))
}

// Label returns "1st" or "2nd".
func (p Period) Label() string {
	return p.Half.String()
}

// String returns e.g. "2024-02 2nd (2024-02-16..2024-02-29)".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d %s (%s..%s)", p.Year, int(p.Month), p.Label(),
		p.Start.Format(dateLayout), p.End.Format(dateLayout))
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return d, nil
}

// FormatDate formats the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// dateOf truncates t to a calendar date, keeping t's own year/month/day regardless of location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
