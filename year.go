package plusvalia

import "time"

// The Spanish tax year is the calendar year. All boundaries are UTC.

// YearStart returns January 1st 00:00:00 UTC of the given year.
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns the last instant of December 31st of the given year, the
// reference point for Modelo 720 valuation.
func YearEnd(year int) time.Time {
	return time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

// InYear reports whether t falls within the given calendar year.
func InYear(t time.Time, year int) bool {
	return t.UTC().Year() == year
}
