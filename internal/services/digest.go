package services

import (
	"log"
	"sort"
	"time"

	"github.com/terraincognita07/candela/internal/models"
)

// weeklyWindowDays is the lookahead of the weekly roundup digest, inclusive.
const weeklyWindowDays = 7

// DigestEntry is the per-contact projection handed to the notification
// dispatcher. It lives for one scheduler run.
type DigestEntry struct {
	ContactID      uint      `json:"contact_id"`
	Name           string    `json:"name"`
	BirthdayDay    int       `json:"birthday_day"`
	BirthdayMonth  int       `json:"birthday_month"`
	NextOccurrence time.Time `json:"next_occurrence"`
	DaysUntil      int       `json:"days_until"`
	TurningAge     *int      `json:"turning_age,omitempty"`
}

// Digest is one user's selection for a single scheduled dispatch. The field
// names are part of the dispatch contract and consumers match on them.
type Digest struct {
	UserID      uint          `json:"userId"`
	DueToday    []DigestEntry `json:"dueToday"`
	DueThisWeek []DigestEntry `json:"dueThisWeek"`
}

func (digest Digest) Empty() bool {
	return len(digest.DueToday) == 0 && len(digest.DueThisWeek) == 0
}

// SelectDueToday returns the contacts whose birthday is today and whose
// preference asks for a same-day reminder. The week-before preference opts
// out of day-of noise on purpose, so it is excluded alongside none.
func SelectDueToday(contacts []models.Contact, today time.Time) []DigestEntry {
	entries := make([]DigestEntry, 0)
	for _, contact := range contacts {
		if !digestEligible(contact, today) {
			continue
		}
		preference := models.NormalizeReminderPreference(contact.ReminderPreference)
		if preference == models.ReminderNone || preference == models.ReminderWeekBefore {
			continue
		}
		if Classify(contact, today) != StatusDueToday {
			continue
		}
		entries = append(entries, buildDigestEntry(contact, today))
	}
	sortDigestEntries(entries)
	return entries
}

// SelectUpcomingWithinWeek returns the contacts whose birthday falls within
// the next seven days, today included. Every active preference participates
// in the weekly roundup; only none opts a contact out entirely.
func SelectUpcomingWithinWeek(contacts []models.Contact, today time.Time) []DigestEntry {
	entries := make([]DigestEntry, 0)
	for _, contact := range contacts {
		if !digestEligible(contact, today) {
			continue
		}
		if models.NormalizeReminderPreference(contact.ReminderPreference) == models.ReminderNone {
			continue
		}
		if DaysUntil(contact.BirthdayDay, contact.BirthdayMonth, today) > weeklyWindowDays {
			continue
		}
		entries = append(entries, buildDigestEntry(contact, today))
	}
	sortDigestEntries(entries)
	return entries
}

// digestEligible drops malformed records so one bad contact can never take
// down a user's whole digest.
func digestEligible(contact models.Contact, today time.Time) bool {
	if ValidCivilDay(contact.BirthdayDay, contact.BirthdayMonth) {
		return true
	}
	log.Printf("digest: skipping contact %d (%s): invalid birthday %d/%d",
		contact.ID, contact.Name, contact.BirthdayDay, contact.BirthdayMonth)
	return false
}

func buildDigestEntry(contact models.Contact, today time.Time) DigestEntry {
	entry := DigestEntry{
		ContactID:      contact.ID,
		Name:           contact.Name,
		BirthdayDay:    contact.BirthdayDay,
		BirthdayMonth:  contact.BirthdayMonth,
		NextOccurrence: NextOccurrence(contact.BirthdayDay, contact.BirthdayMonth, today),
		DaysUntil:      DaysUntil(contact.BirthdayDay, contact.BirthdayMonth, today),
	}
	if contact.BirthdayYear != nil {
		if age, known := TurningAge(contact.BirthdayDay, contact.BirthdayMonth, *contact.BirthdayYear, today); known {
			entry.TurningAge = &age
		}
	}
	return entry
}

func sortDigestEntries(entries []DigestEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].DaysUntil != entries[j].DaysUntil {
			return entries[i].DaysUntil < entries[j].DaysUntil
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].ContactID < entries[j].ContactID
	})
}
