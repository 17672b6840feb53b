package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/candela/internal/services"
)

type acknowledgeView struct {
	Contact contactView `json:"contact"`
	Changed bool        `json:"changed"`
	Streak  streakView  `json:"streak"`
}

type streakView struct {
	Count                  int    `json:"count"`
	LastAcknowledgmentDate string `json:"last_acknowledgment_date,omitempty"`
}

// AcknowledgeContact sets or clears the acknowledged-this-year marker.
// Repeating the current state is accepted and reported as changed=false.
func (handler *Handler) AcknowledgeContact(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}
	contactID, err := parseUintParam(c, "contactID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	var input acknowledgeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	today := handler.today()
	result, err := handler.acknowledge.SetAcknowledged(userID, contactID, input.Acknowledged, today)
	if errors.Is(err, services.ErrContactNotFound) {
		return apiError(c, fiber.StatusNotFound, "contact not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "acknowledge failed")
	}

	view := acknowledgeView{
		Contact: buildContactView(result.Contact, today),
		Changed: result.Changed,
		Streak:  streakView{Count: result.Streak.Count},
	}
	if result.Streak.LastAcknowledgmentDate != nil {
		view.Streak.LastAcknowledgmentDate = result.Streak.LastAcknowledgmentDate.Format("2006-01-02")
	}
	return c.JSON(view)
}
