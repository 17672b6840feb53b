package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/candela/internal/db"
	"github.com/terraincognita07/candela/internal/services"
)

// Handler bundles the dependencies of every HTTP endpoint. The engine itself
// never reads the clock; handlers resolve "today" once per request from the
// configured location and pass it down.
type Handler struct {
	repos       *db.Repositories
	acknowledge *services.AcknowledgeService
	scheduler   *services.ReminderScheduler
	location    *time.Location
	now         func() time.Time
}

func NewHandler(repos *db.Repositories, acknowledge *services.AcknowledgeService, scheduler *services.ReminderScheduler, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		repos:       repos,
		acknowledge: acknowledge,
		scheduler:   scheduler,
		location:    location,
		now:         time.Now,
	}
}

func (handler *Handler) today() time.Time {
	return handler.now().In(handler.location)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
