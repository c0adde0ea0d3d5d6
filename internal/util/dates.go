package util

import "time"

// Quarter is one fixed window of the Sep 1 - Aug 31 school year.
type Quarter struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Quarter int       `json:"quarter"`
}

// Date builds a date-only value at UTC midnight. All report-period math
// works on these so driver timezone settings cannot shift a period.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SchoolYearStart returns Sep 1 of the school year containing d: a date in
// Sep-Dec belongs to the year starting that calendar year, Jan-Aug to the
// year that started the previous calendar year.
func SchoolYearStart(d time.Time) time.Time {
	year := d.Year()
	if d.Month() < time.September {
		year--
	}
	return Date(year, time.September, 1)
}

// SchoolYearQuarters partitions the school year containing anchor into its
// four quarters: Q1 Sep 1 - Nov 30, Q2 Dec 1 - Feb 28/29, Q3 Mar 1 -
// May 31, Q4 Jun 1 - Aug 31.
func SchoolYearQuarters(anchor time.Time) [4]Quarter {
	y := SchoolYearStart(anchor).Year()

	// last day of February handles leap years
	febEnd := Date(y+1, time.March, 1).AddDate(0, 0, -1)

	return [4]Quarter{
		{Start: Date(y, time.September, 1), End: Date(y, time.November, 30), Quarter: 1},
		{Start: Date(y, time.December, 1), End: febEnd, Quarter: 2},
		{Start: Date(y+1, time.March, 1), End: Date(y+1, time.May, 31), Quarter: 3},
		{Start: Date(y+1, time.June, 1), End: Date(y+1, time.August, 31), Quarter: 4},
	}
}

// FormatDate renders a date-only string (YYYY-MM-DD).
func FormatDate(d time.Time) string {
	return d.Format(DateFormat)
}

// ParseDate parses a date-only string at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// Truncate to a date-only value in UTC, dropping the time of day.
func DateOnly(d time.Time) time.Time {
	return Date(d.Year(), d.Month(), d.Day())
}
