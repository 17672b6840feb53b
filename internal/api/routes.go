package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	api.Post("/users", handler.CreateUser)

	users := api.Group("/users/:userID")
	users.Get("/", handler.GetUser)
	users.Put("/", handler.UpdateUser)
	users.Patch("/notifications", handler.UpdateNotifications)
	users.Delete("/", handler.DeleteUser)
	users.Get("/contacts", handler.ListContacts)
	users.Post("/contacts", handler.CreateContact)
	users.Put("/contacts/:contactID", handler.UpdateContact)
	users.Delete("/contacts/:contactID", handler.DeleteContact)
	users.Post("/contacts/:contactID/acknowledge", handler.AcknowledgeContact)
	users.Get("/digest/preview", handler.PreviewDigest)

	api.Post("/scheduler/run", handler.RunScheduler)
}
