package utils

import (
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/constants"
)

// DayKey maps an instant to its calendar date in the reference timezone.
// The quota reset boundary is local midnight in that zone, not UTC midnight.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DayKeyLayout)
}

// NextReset returns the next local midnight after t in the reference
// timezone. Advisory only: clients show it as a countdown, the server day
// key stays the authority on which day an assignment belongs to.
func NextReset(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day()+1, 0, 0, 0, 0, loc)
}
