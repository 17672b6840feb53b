package services

import (
	"encoding/json"
	"testing"

	"github.com/terraincognita07/candela/internal/models"
)

func TestSelectDueToday(t *testing.T) {
	t.Parallel()

	today := "2024-06-15"
	contacts := []models.Contact{
		{ID: 1, Name: "Alice", BirthdayDay: 15, BirthdayMonth: 6, BirthdayYear: intPtr(1990), ReminderPreference: models.ReminderMorningOf},
		{ID: 2, Name: "Bob", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: models.ReminderDayBefore},
		{ID: 3, Name: "Carol", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: models.ReminderWeekBefore},
		{ID: 4, Name: "Dave", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: models.ReminderNone},
		{ID: 5, Name: "Erin", BirthdayDay: 20, BirthdayMonth: 6, ReminderPreference: models.ReminderMorningOf},
		{ID: 6, Name: "Frank", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: models.ReminderMorningOf, LastAcknowledgedYear: intPtr(2024)},
	}

	entries := SelectDueToday(contacts, mustParseDay(t, today))

	if len(entries) != 2 {
		t.Fatalf("SelectDueToday returned %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Name != "Alice" || entries[1].Name != "Bob" {
		t.Fatalf("SelectDueToday order = %s, %s; want Alice, Bob", entries[0].Name, entries[1].Name)
	}
	if entries[0].TurningAge == nil || *entries[0].TurningAge != 34 {
		t.Fatalf("SelectDueToday Alice turning age = %v, want 34", entries[0].TurningAge)
	}
	if entries[1].TurningAge != nil {
		t.Fatalf("SelectDueToday Bob turning age = %v, want unknown", *entries[1].TurningAge)
	}
}

func TestDigestWireFieldNames(t *testing.T) {
	t.Parallel()

	digest := Digest{
		UserID:   7,
		DueToday: SelectDueToday([]models.Contact{{ID: 1, Name: "Alice", BirthdayDay: 15, BirthdayMonth: 6}}, mustParseDay(t, "2024-06-15")),
	}
	payload, err := json.Marshal(digest)
	if err != nil {
		t.Fatalf("marshal digest: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal digest: %v", err)
	}
	// Consumers match on these exact names.
	for _, field := range []string{"userId", "dueToday", "dueThisWeek"} {
		if _, ok := decoded[field]; !ok {
			t.Fatalf("digest payload %s is missing field %q", payload, field)
		}
	}
}

func TestSelectUpcomingWithinWeek(t *testing.T) {
	t.Parallel()

	today := "2024-06-15"
	contacts := []models.Contact{
		{ID: 1, Name: "Alice", BirthdayDay: 22, BirthdayMonth: 6, ReminderPreference: models.ReminderWeekBefore},
		{ID: 2, Name: "Bob", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: models.ReminderMorningOf},
		{ID: 3, Name: "Carol", BirthdayDay: 23, BirthdayMonth: 6, ReminderPreference: models.ReminderDayBefore},
		{ID: 4, Name: "Dave", BirthdayDay: 18, BirthdayMonth: 6, ReminderPreference: models.ReminderNone},
		{ID: 5, Name: "Erin", BirthdayDay: 14, BirthdayMonth: 6, ReminderPreference: models.ReminderMorningOf},
	}

	entries := SelectUpcomingWithinWeek(contacts, mustParseDay(t, today))

	// Carol is 8 days out, Dave opted out, Erin already passed (364 days out).
	if len(entries) != 2 {
		t.Fatalf("SelectUpcomingWithinWeek returned %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Name != "Bob" || entries[0].DaysUntil != 0 {
		t.Fatalf("first entry = %s (%d days), want Bob (0 days)", entries[0].Name, entries[0].DaysUntil)
	}
	if entries[1].Name != "Alice" || entries[1].DaysUntil != 7 {
		t.Fatalf("second entry = %s (%d days), want Alice (7 days)", entries[1].Name, entries[1].DaysUntil)
	}
}

func TestSelectorsSuppressNonePreferenceForAnyDate(t *testing.T) {
	t.Parallel()

	contact := models.Contact{ID: 1, Name: "Quiet", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: models.ReminderNone}
	for _, rawToday := range []string{"2024-06-15", "2024-06-14", "2024-06-08", "2024-12-31", "2025-01-01"} {
		today := mustParseDay(t, rawToday)
		if got := SelectDueToday([]models.Contact{contact}, today); len(got) != 0 {
			t.Fatalf("SelectDueToday(%s) included a none-preference contact", rawToday)
		}
		if got := SelectUpcomingWithinWeek([]models.Contact{contact}, today); len(got) != 0 {
			t.Fatalf("SelectUpcomingWithinWeek(%s) included a none-preference contact", rawToday)
		}
	}
}

func TestSelectorsSkipMalformedRecords(t *testing.T) {
	t.Parallel()

	today := mustParseDay(t, "2024-06-15")
	contacts := []models.Contact{
		{ID: 1, Name: "Broken", BirthdayDay: 31, BirthdayMonth: 2, ReminderPreference: models.ReminderMorningOf},
		{ID: 2, Name: "Fine", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: models.ReminderMorningOf},
	}

	due := SelectDueToday(contacts, today)
	if len(due) != 1 || due[0].Name != "Fine" {
		t.Fatalf("SelectDueToday with malformed record = %+v, want only Fine", due)
	}

	week := SelectUpcomingWithinWeek(contacts, today)
	if len(week) != 1 || week[0].Name != "Fine" {
		t.Fatalf("SelectUpcomingWithinWeek with malformed record = %+v, want only Fine", week)
	}
}

func TestSelectUpcomingWithinWeekAcrossYearBoundary(t *testing.T) {
	t.Parallel()

	contacts := []models.Contact{
		{ID: 1, Name: "NewYear", BirthdayDay: 1, BirthdayMonth: 1, ReminderPreference: models.ReminderMorningOf},
		{ID: 2, Name: "MidJanuary", BirthdayDay: 15, BirthdayMonth: 1, ReminderPreference: models.ReminderMorningOf},
	}

	entries := SelectUpcomingWithinWeek(contacts, mustParseDay(t, "2024-12-31"))
	if len(entries) != 1 || entries[0].Name != "NewYear" || entries[0].DaysUntil != 1 {
		t.Fatalf("year-boundary selection = %+v, want NewYear at 1 day", entries)
	}
}

func TestSelectorsUnknownPreferenceCoercesToMorningOf(t *testing.T) {
	t.Parallel()

	contact := models.Contact{ID: 1, Name: "Legacy", BirthdayDay: 15, BirthdayMonth: 6, ReminderPreference: "weekly_email"}
	entries := SelectDueToday([]models.Contact{contact}, mustParseDay(t, "2024-06-15"))
	if len(entries) != 1 {
		t.Fatalf("unknown preference should coerce to morning_of and be selected, got %+v", entries)
	}
}
