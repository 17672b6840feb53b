package models

import "time"

// Reminder preferences are stored as strings so the column stays readable in
// the database; NormalizeReminderPreference keeps the set closed on the way in.
const (
	ReminderMorningOf  = "morning_of"
	ReminderDayBefore  = "day_before"
	ReminderWeekBefore = "week_before"
	ReminderNone       = "none"
)

type Contact struct {
	ID                   uint   `gorm:"primaryKey"`
	UserID               uint   `gorm:"not null;index"`
	Name                 string `gorm:"not null"`
	BirthdayDay          int    `gorm:"not null"`
	BirthdayMonth        int    `gorm:"not null"`
	BirthdayYear         *int
	ReminderPreference   string `gorm:"not null;default:morning_of"`
	LastAcknowledgedYear *int
	Notes                string `gorm:"not null;default:''"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NormalizeReminderPreference coerces unknown or legacy values to the
// morning-of default instead of letting free-form strings reach the digest
// selectors.
func NormalizeReminderPreference(raw string) string {
	switch raw {
	case ReminderMorningOf, ReminderDayBefore, ReminderWeekBefore, ReminderNone:
		return raw
	default:
		return ReminderMorningOf
	}
}

// ReminderPreferences lists every accepted value, in digest-lead-time order.
func ReminderPreferences() []string {
	return []string{ReminderMorningOf, ReminderDayBefore, ReminderWeekBefore, ReminderNone}
}
