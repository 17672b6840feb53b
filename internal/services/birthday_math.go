package services

import "time"

// Ages above this are treated as bad data rather than reported to the user.
const maxPlausibleAge = 120

// NextOccurrence returns the next calendar date on which the (day, month)
// birthday occurs, relative to today. The candidate is built in today's year
// and rolled forward one year when it has already passed. All math is done on
// civil dates in today's location; birthdays never round-trip through a
// serialized timestamp, so a UTC offset can never shift them by a day.
//
// February 29 against a non-leap year normalizes to March 1, which is also
// how time.Date treats out-of-range combinations like April 31.
func NextOccurrence(day int, month int, today time.Time) time.Time {
	todayStart := dateOnly(today)
	candidate := civilDate(todayStart.Year(), month, day, today.Location())
	if candidate.Before(todayStart) {
		candidate = civilDate(todayStart.Year()+1, month, day, today.Location())
	}
	return candidate
}

// DaysUntil returns the whole calendar days between today and the next
// occurrence, 0 on the occurrence itself.
func DaysUntil(day int, month int, today time.Time) int {
	return civilDaysBetween(dateOnly(today), NextOccurrence(day, month, today))
}

// VisualSortDate is NextOccurrence with one carve-out: a birthday that has
// already passed in the current month keeps its current-year date, so contact
// lists show it as "this month, but passed" instead of pushing it a year out.
func VisualSortDate(day int, month int, today time.Time) time.Time {
	todayStart := dateOnly(today)
	candidate := civilDate(todayStart.Year(), month, day, today.Location())
	if !candidate.Before(todayStart) {
		return candidate
	}
	if candidate.Month() == todayStart.Month() {
		return candidate
	}
	return civilDate(todayStart.Year()+1, month, day, today.Location())
}

// TurningAge returns the age the person turns at the next occurrence. The
// second return is false when the birth year is unknown (zero) or the result
// is negative or implausibly large; both are data-quality conditions, not
// errors.
func TurningAge(day int, month int, birthYear int, today time.Time) (int, bool) {
	if birthYear == 0 {
		return 0, false
	}
	age := NextOccurrence(day, month, today).Year() - birthYear
	if age < 0 || age > maxPlausibleAge {
		return 0, false
	}
	return age, true
}

// ValidCivilDay reports whether (day, month) names a real calendar day in at
// least one year. February 29 is accepted; February 30 is not.
func ValidCivilDay(day int, month int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= maxDaysInMonth(time.Month(month))
}

func maxDaysInMonth(month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		return 29
	default:
		return 31
	}
}

func civilDate(year int, month int, day int, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, location)
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func sameDay(a time.Time, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}

// civilDaysBetween counts calendar days from one date to another. Both sides
// are rebuilt at UTC midnight first so a DST transition inside the span
// cannot skew the division.
func civilDaysBetween(from time.Time, to time.Time) int {
	fromYear, fromMonth, fromDay := from.Date()
	toYear, toMonth, toDay := to.Date()
	fromUTC := time.Date(fromYear, fromMonth, fromDay, 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(toYear, toMonth, toDay, 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}
