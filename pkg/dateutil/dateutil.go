package dateutil

import "time"

// HorizonDate returns the date a projection of the given number of years ends,
// counted from the start date.
func HorizonDate(start time.Time, years int) time.Time {
	return start.AddDate(years, 0, 0)
}

// CalendarYear returns the calendar year covered by the 1-based projection year
// when the projection starts at the given date.
func CalendarYear(start time.Time, projectionYear int) int {
	if projectionYear < 1 {
		return start.Year()
	}
	return start.AddDate(projectionYear-1, 0, 0).Year()
}

// MonthsBetween returns the number of whole calendar months from one date to another.
// Negative when to is before from.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	if months > 0 && to.Day() < from.Day() {
		months--
	} else if months < 0 && to.Day() > from.Day() {
		months++
	}
	return months
}

// BeginningOfMonth returns the first day of the month for a given date
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
