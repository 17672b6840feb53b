package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(value), nil
}

func parseBoolQuery(c *fiber.Ctx, name string) bool {
	switch c.Query(name) {
	case "1", "true", "TRUE", "yes":
		return true
	default:
		return false
	}
}
