package api

import (
	"strings"

	"github.com/terraincognita07/candela/internal/models"
	"github.com/terraincognita07/candela/internal/services"
)

const maxContactNameLength = 120

type contactInput struct {
	Name               string `json:"name"`
	BirthdayDay        int    `json:"birthday_day"`
	BirthdayMonth      int    `json:"birthday_month"`
	BirthdayYear       *int   `json:"birthday_year"`
	ReminderPreference string `json:"reminder_preference"`
	Notes              string `json:"notes"`
}

type acknowledgeInput struct {
	Acknowledged bool `json:"acknowledged"`
}

type userInput struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	TelegramChatID string `json:"telegram_chat_id"`
}

type notificationsInput struct {
	Enabled bool `json:"enabled"`
}

// validateUserInput normalizes the payload in place; the email is lowercased
// so the unique index and FindByNormalizedEmail agree on identity.
func validateUserInput(input *userInput) string {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		return "email is required"
	}
	if !strings.Contains(input.Email, "@") {
		return "invalid email"
	}

	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if len(input.DisplayName) > maxContactNameLength {
		return "display_name is too long"
	}

	input.TelegramChatID = strings.TrimSpace(input.TelegramChatID)
	return ""
}

// validateContactInput normalizes the payload in place and returns the first
// problem found, empty string when the input is acceptable.
func validateContactInput(input *contactInput) string {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return "name is required"
	}
	if len(input.Name) > maxContactNameLength {
		return "name is too long"
	}

	if !services.ValidCivilDay(input.BirthdayDay, input.BirthdayMonth) {
		return "invalid birthday day/month"
	}

	if input.BirthdayYear != nil && (*input.BirthdayYear < 1 || *input.BirthdayYear > 9999) {
		return "invalid birthday year"
	}

	input.ReminderPreference = strings.TrimSpace(input.ReminderPreference)
	if input.ReminderPreference == "" {
		input.ReminderPreference = models.ReminderMorningOf
	}
	if models.NormalizeReminderPreference(input.ReminderPreference) != input.ReminderPreference {
		return "reminder_preference must be one of: " + strings.Join(models.ReminderPreferences(), ", ")
	}

	input.Notes = strings.TrimSpace(input.Notes)
	return ""
}
