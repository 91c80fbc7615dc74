package handlers

import (
	"errors"

	"chatdesk/internal/dto"
	"chatdesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage godoc
// @Summary Send a visitor message to a chatbot
// @Description Answer a visitor message with knowledge-base context; creates a conversation when no id is given
// @Tags chat
// @Accept json
// @Produce json
// @Param botId path string true "Chatbot ID"
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /chat/{botId}/message [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	botID, err := uuid.Parse(c.Params("botId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bot ID",
		})
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.chatService.HandleMessage(c.Context(), botID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		case errors.Is(err, service.ErrInvalidConversationID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid conversation ID",
			})
		case errors.Is(err, service.ErrChatbotNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Bot not found",
			})
		case errors.Is(err, service.ErrConversationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Conversation not found",
			})
		}
		h.logger.Error("Failed to handle chat message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(resp)
}
