package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/candela/internal/services"
)

// PreviewDigest returns the digest the scheduler would dispatch for this user
// right now, without sending anything. `weekly=1` includes the roundup.
func (handler *Handler) PreviewDigest(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	contacts, err := handler.repos.Contacts.ListByUser(userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "load contacts failed")
	}

	today := handler.today()
	digest := services.Digest{
		UserID:   userID,
		DueToday: services.SelectDueToday(contacts, today),
	}
	if parseBoolQuery(c, "weekly") {
		digest.DueThisWeek = services.SelectUpcomingWithinWeek(contacts, today)
	}
	return c.JSON(digest)
}

// RunScheduler triggers a full dispatch pass immediately, outside the cron
// schedule. Useful for operators and for smoke-testing a deployment.
func (handler *Handler) RunScheduler(c *fiber.Ctx) error {
	report := handler.scheduler.Run(c.Context(), handler.today(), parseBoolQuery(c, "weekly"))
	return c.JSON(report)
}
