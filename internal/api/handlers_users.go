package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/candela/internal/models"
	"gorm.io/gorm"
)

type userView struct {
	ID                   uint   `json:"id"`
	Email                string `json:"email"`
	DisplayName          string `json:"display_name"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	TelegramChatID       string `json:"telegram_chat_id,omitempty"`
	StreakCount          int    `json:"streak_count"`
	LastAcknowledgedOn   string `json:"last_acknowledged_on,omitempty"`
}

func buildUserView(user models.User) userView {
	view := userView{
		ID:                   user.ID,
		Email:                user.Email,
		DisplayName:          user.DisplayName,
		NotificationsEnabled: user.NotificationsEnabled,
		TelegramChatID:       user.TelegramChatID,
		StreakCount:          user.StreakCount,
	}
	if user.LastAcknowledgedOn != nil {
		view.LastAcknowledgedOn = user.LastAcknowledgedOn.Format("2006-01-02")
	}
	return view
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validateUserInput(&input); message != "" {
		return apiError(c, fiber.StatusUnprocessableEntity, message)
	}

	_, exists, err := handler.repos.Users.FindByNormalizedEmail(input.Email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "lookup user failed")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	user := models.User{
		Email:                input.Email,
		DisplayName:          input.DisplayName,
		NotificationsEnabled: true,
		TelegramChatID:       input.TelegramChatID,
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "create user failed")
	}
	return c.Status(fiber.StatusCreated).JSON(buildUserView(user))
}

func (handler *Handler) GetUser(c *fiber.Ctx) error {
	user, ok, err := handler.loadUser(c)
	if err != nil || !ok {
		return err
	}
	return c.JSON(buildUserView(user))
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	user, ok, err := handler.loadUser(c)
	if err != nil || !ok {
		return err
	}

	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validateUserInput(&input); message != "" {
		return apiError(c, fiber.StatusUnprocessableEntity, message)
	}

	user.Email = input.Email
	user.DisplayName = input.DisplayName
	user.TelegramChatID = input.TelegramChatID
	if err := handler.repos.Users.Save(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "save user failed")
	}
	return c.JSON(buildUserView(user))
}

// UpdateNotifications flips the digest opt-in. The scheduler only processes
// users with this flag set, so this is the "mute everything" switch.
func (handler *Handler) UpdateNotifications(c *fiber.Ctx) error {
	user, ok, err := handler.loadUser(c)
	if err != nil || !ok {
		return err
	}

	var input notificationsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.repos.Users.UpdateNotificationsEnabled(user.ID, input.Enabled); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "save settings failed")
	}
	user.NotificationsEnabled = input.Enabled
	return c.JSON(buildUserView(user))
}

// DeleteUser removes the account and every contact that belongs to it, in one
// transaction.
func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	user, ok, err := handler.loadUser(c)
	if err != nil || !ok {
		return err
	}

	if err := handler.repos.Users.DeleteAccountAndRelatedData(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "delete account failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// loadUser resolves the :userID route param. When ok is false the error
// response has already been written.
func (handler *Handler) loadUser(c *fiber.Ctx) (models.User, bool, error) {
	userID, err := parseUintParam(c, "userID")
	if err != nil {
		return models.User{}, false, apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := handler.repos.Users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return models.User{}, false, apiError(c, fiber.StatusInternalServerError, "load user failed")
	}
	return user, true, nil
}
