package service

import "time"

const dateLayout = "2006-01-02"

// Today formats t as a local calendar date (YYYY-MM-DD)
func Today(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// DayOfYear returns the 1-based local day of the year
func DayOfYear(t time.Time) int {
	return t.Local().YearDay()
}
