package filter

import (
	"fmt"
	"time"
)

// Duration units are constant factors, not calendar arithmetic: a day is
// always 86400 seconds and a month and year are approximated as 30 and 365
// days. Changing these shifts every timestamp the compiler emits, so they
// are deliberately simple and deliberately fixed.
const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

func durationOf(tok Token) time.Duration {
	n := time.Duration(tok.Amount)
	switch tok.Unit {
	case UnitHour:
		return n * time.Hour
	case UnitDay:
		return n * day
	case UnitWeek:
		return n * week
	case UnitMonth:
		return n * month
	default:
		return n * year
	}
}

// dateRange resolves a date literal to its inclusive [start, end] UTC range:
//
//	2019       -> 2019-01-01 00:00:00 .. 2019-12-31 23:59:59
//	2019-10    -> 2019-10-01 00:00:00 .. 2019-10-31 23:59:59
//	2019-10-05 -> 2019-10-05 00:00:00 .. 2019-10-05 23:59:59
//
// A literal that does not exist on the calendar (month 13, February 30th)
// is an error: the caller aborts the whole expression rather than emitting
// a corrupt filter.
func dateRange(tok Token) (start, end time.Time, err error) {
	switch tok.Gran {
	case GranYear:
		start = time.Date(tok.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(tok.Year, time.December, 31, 23, 59, 59, 0, time.UTC)

	case GranYearMonth:
		if err := checkDate(tok.Year, tok.Month, 1); err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = time.Date(tok.Year, time.Month(tok.Month), 1, 0, 0, 0, 0, time.UTC)
		// first day of the following month, stepped back one day; December
		// rolls into January of the next year
		next := start.AddDate(0, 1, 0)
		end = next.AddDate(0, 0, -1)
		end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)

	case GranYearMonthDay:
		if err := checkDate(tok.Year, tok.Month, tok.Day); err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = time.Date(tok.Year, time.Month(tok.Month), tok.Day, 0, 0, 0, 0, time.UTC)
		end = time.Date(tok.Year, time.Month(tok.Month), tok.Day, 23, 59, 59, 0, time.UTC)
	}
	return start, end, nil
}

// checkDate rejects year/month/day combinations that time.Date would
// silently normalize (2019-02-30 becoming March 2nd).
func checkDate(y, m, d int) error {
	if m < 1 || m > 12 {
		return fmt.Errorf("month %d is out of range", m)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return fmt.Errorf("day %d does not exist in %04d-%02d", d, y, m)
	}
	return nil
}
