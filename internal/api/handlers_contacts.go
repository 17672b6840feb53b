package api

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/candela/internal/models"
	"github.com/terraincognita07/candela/internal/services"
)

type contactView struct {
	ID                   uint                 `json:"id"`
	Name                 string               `json:"name"`
	BirthdayDay          int                  `json:"birthday_day"`
	BirthdayMonth        int                  `json:"birthday_month"`
	BirthdayYear         *int                 `json:"birthday_year,omitempty"`
	ReminderPreference   string               `json:"reminder_preference"`
	LastAcknowledgedYear *int                 `json:"last_acknowledged_year,omitempty"`
	Notes                string               `json:"notes,omitempty"`
	Status               services.CycleStatus `json:"status"`
	DaysUntil            *int                 `json:"days_until,omitempty"`
	NextOccurrence       string               `json:"next_occurrence,omitempty"`
	TurningAge           *int                 `json:"turning_age,omitempty"`
}

func buildContactView(contact models.Contact, today time.Time) contactView {
	view := contactView{
		ID:                   contact.ID,
		Name:                 contact.Name,
		BirthdayDay:          contact.BirthdayDay,
		BirthdayMonth:        contact.BirthdayMonth,
		BirthdayYear:         contact.BirthdayYear,
		ReminderPreference:   models.NormalizeReminderPreference(contact.ReminderPreference),
		LastAcknowledgedYear: contact.LastAcknowledgedYear,
		Notes:                contact.Notes,
		Status:               services.Classify(contact, today),
	}

	if services.ValidCivilDay(contact.BirthdayDay, contact.BirthdayMonth) {
		days := services.DaysUntil(contact.BirthdayDay, contact.BirthdayMonth, today)
		view.DaysUntil = &days
		view.NextOccurrence = services.NextOccurrence(contact.BirthdayDay, contact.BirthdayMonth, today).Format("2006-01-02")
		if contact.BirthdayYear != nil {
			if age, known := services.TurningAge(contact.BirthdayDay, contact.BirthdayMonth, *contact.BirthdayYear, today); known {
				view.TurningAge = &age
			}
		}
	}

	return view
}

// ListContacts returns the user's contacts with derived cycle fields, in the
// visual order: passed-this-month entries stay with the current month instead
// of sorting a year away.
func (handler *Handler) ListContacts(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	contacts, err := handler.repos.Contacts.ListByUser(userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "load contacts failed")
	}

	today := handler.today()
	sort.SliceStable(contacts, func(i, j int) bool {
		left := services.VisualSortDate(contacts[i].BirthdayDay, contacts[i].BirthdayMonth, today)
		right := services.VisualSortDate(contacts[j].BirthdayDay, contacts[j].BirthdayMonth, today)
		if !left.Equal(right) {
			return left.Before(right)
		}
		return contacts[i].Name < contacts[j].Name
	})

	views := make([]contactView, 0, len(contacts))
	for _, contact := range contacts {
		views = append(views, buildContactView(contact, today))
	}
	return c.JSON(fiber.Map{"contacts": views})
}

func (handler *Handler) CreateContact(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var input contactInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validateContactInput(&input); message != "" {
		return apiError(c, fiber.StatusUnprocessableEntity, message)
	}

	contact := models.Contact{
		UserID:             userID,
		Name:               input.Name,
		BirthdayDay:        input.BirthdayDay,
		BirthdayMonth:      input.BirthdayMonth,
		BirthdayYear:       input.BirthdayYear,
		ReminderPreference: input.ReminderPreference,
		Notes:              input.Notes,
	}
	if err := handler.repos.Contacts.Create(&contact); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "create contact failed")
	}

	return c.Status(fiber.StatusCreated).JSON(buildContactView(contact, handler.today()))
}

func (handler *Handler) UpdateContact(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}
	contactID, err := parseUintParam(c, "contactID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	var input contactInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validateContactInput(&input); message != "" {
		return apiError(c, fiber.StatusUnprocessableEntity, message)
	}

	contact, found, err := handler.repos.Contacts.FindByUserAndID(userID, contactID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "load contact failed")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "contact not found")
	}

	contact.Name = input.Name
	contact.BirthdayDay = input.BirthdayDay
	contact.BirthdayMonth = input.BirthdayMonth
	contact.BirthdayYear = input.BirthdayYear
	contact.ReminderPreference = input.ReminderPreference
	contact.Notes = input.Notes
	if err := handler.repos.Contacts.Save(&contact); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "save contact failed")
	}

	return c.JSON(buildContactView(contact, handler.today()))
}

func (handler *Handler) DeleteContact(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}
	contactID, err := parseUintParam(c, "contactID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	_, found, err := handler.repos.Contacts.FindByUserAndID(userID, contactID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "load contact failed")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "contact not found")
	}

	if err := handler.repos.Contacts.DeleteByUserAndID(userID, contactID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "delete contact failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
