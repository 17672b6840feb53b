package services

import (
	"time"

	"github.com/terraincognita07/candela/internal/models"
)

// CycleStatus describes where a birthday record stands inside the current
// calendar-year cycle. It is derived on every read and never stored.
type CycleStatus string

const (
	StatusUpcoming     CycleStatus = "upcoming"
	StatusDueToday     CycleStatus = "due_today"
	StatusMissed       CycleStatus = "missed"
	StatusAcknowledged CycleStatus = "acknowledged"
)

// Classify derives the cycle status of a contact for today.
//
// MISSED is deliberately narrow: it only applies while today is still inside
// the birthday's own calendar month. A birthday that passed in an earlier
// month belongs to the next cycle (NextOccurrence rolls it forward) and must
// not linger as overdue for the rest of the year.
//
// A malformed (day, month) pair is always UPCOMING: its candidate date is a
// normalization artifact and must not read as due or missed.
func Classify(contact models.Contact, today time.Time) CycleStatus {
	if !ValidCivilDay(contact.BirthdayDay, contact.BirthdayMonth) {
		return StatusUpcoming
	}

	todayStart := dateOnly(today)

	if contact.LastAcknowledgedYear != nil && *contact.LastAcknowledgedYear == todayStart.Year() {
		return StatusAcknowledged
	}

	candidate := civilDate(todayStart.Year(), contact.BirthdayMonth, contact.BirthdayDay, today.Location())
	if candidate.Equal(todayStart) {
		return StatusDueToday
	}
	if candidate.Before(todayStart) && candidate.Month() == todayStart.Month() {
		return StatusMissed
	}
	return StatusUpcoming
}
