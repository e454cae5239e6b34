package domain

// Dated is a persisted snapshot that only applies to the calendar day it records.
// today is a local date in YYYY-MM-DD form.
type Dated interface {
	IsValidFor(today string) bool
}
