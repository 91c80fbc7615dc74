package handlers

import (
	"errors"

	"chatdesk/internal/dto"
	"chatdesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatbotHandler struct {
	chatbotService *service.ChatbotService
	logger         *zap.Logger
}

func NewChatbotHandler(chatbotService *service.ChatbotService, logger *zap.Logger) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotService: chatbotService,
		logger:         logger,
	}
}

// ListChatbots godoc
// @Summary List the user's chatbots
// @Tags chatbots
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ChatbotResponse
// @Failure 401 {object} map[string]string
// @Router /chatbots [get]
func (h *ChatbotHandler) ListChatbots(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	bots, err := h.chatbotService.List(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list chatbots", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch chatbots",
		})
	}

	return c.JSON(bots)
}

// CreateChatbot godoc
// @Summary Create a chatbot
// @Tags chatbots
// @Accept json
// @Produce json
// @Param request body dto.CreateChatbotRequest true "Chatbot"
// @Security Bearer
// @Success 201 {object} dto.ChatbotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /chatbots [post]
func (h *ChatbotHandler) CreateChatbot(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateChatbotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	bot, err := h.chatbotService.Create(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Chatbot name is required",
			})
		}
		h.logger.Error("Failed to create chatbot", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create chatbot",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(bot)
}

// GetChatbot godoc
// @Summary Get one chatbot
// @Tags chatbots
// @Produce json
// @Param id path string true "Chatbot ID"
// @Security Bearer
// @Success 200 {object} dto.ChatbotResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chatbots/{id} [get]
func (h *ChatbotHandler) GetChatbot(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	botID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bot ID",
		})
	}

	bot, err := h.chatbotService.GetForUser(c.Context(), userID, botID)
	if err != nil {
		return chatbotAccessError(c, err)
	}

	return c.JSON(bot)
}

// UpdateChatbot godoc
// @Summary Update a chatbot
// @Tags chatbots
// @Accept json
// @Produce json
// @Param id path string true "Chatbot ID"
// @Param request body dto.UpdateChatbotRequest true "Fields to update"
// @Security Bearer
// @Success 200 {object} dto.ChatbotResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chatbots/{id} [put]
func (h *ChatbotHandler) UpdateChatbot(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	botID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bot ID",
		})
	}

	var req dto.UpdateChatbotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	bot, err := h.chatbotService.Update(c.Context(), userID, botID, &req)
	if err != nil {
		return chatbotAccessError(c, err)
	}

	return c.JSON(bot)
}

// DeleteChatbot godoc
// @Summary Delete a chatbot
// @Tags chatbots
// @Param id path string true "Chatbot ID"
// @Security Bearer
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chatbots/{id} [delete]
func (h *ChatbotHandler) DeleteChatbot(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	botID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bot ID",
		})
	}

	if err := h.chatbotService.Delete(c.Context(), userID, botID); err != nil {
		return chatbotAccessError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userIDStr)
}

// chatbotAccessError maps ownership/lookup failures to a response. Falls
// back to a 500 for anything unexpected.
func chatbotAccessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrChatbotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Chatbot not found",
		})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
