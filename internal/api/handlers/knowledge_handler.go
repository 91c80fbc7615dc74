package handlers

import (
	"errors"
	"fmt"
	"io"

	"chatdesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	ingestionService *service.IngestionService
	chatbotService   *service.ChatbotService
	maxFileSize      int64
	logger           *zap.Logger
}

func NewKnowledgeHandler(
	ingestionService *service.IngestionService,
	chatbotService *service.ChatbotService,
	maxFileSize int64,
	logger *zap.Logger,
) *KnowledgeHandler {
	return &KnowledgeHandler{
		ingestionService: ingestionService,
		chatbotService:   chatbotService,
		maxFileSize:      maxFileSize,
		logger:           logger,
	}
}

// Upload godoc
// @Summary Upload a knowledge base file
// @Description Parse an uploaded file (json, csv, md, markdown, txt) into Q/A items and index them for retrieval
// @Tags knowledge
// @Accept multipart/form-data
// @Produce json
// @Param botId path string true "Chatbot ID"
// @Param file formData file true "Knowledge file (max 10MB)"
// @Security Bearer
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /knowledge/{botId}/upload [post]
func (h *KnowledgeHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	botID, err := uuid.Parse(c.Params("botId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid bot ID",
		})
	}

	if _, err := h.chatbotService.GetForUser(c.Context(), userID, botID); err != nil {
		return chatbotAccessError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large (max %dMB)", h.maxFileSize/(1024*1024)),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	resp, err := h.ingestionService.IngestFile(c.Context(), botID, file.Filename, content)
	if err != nil {
		var unsupported *service.UnsupportedFormatError
		switch {
		case errors.As(err, &unsupported):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": unsupported.Error(),
			})
		case errors.Is(err, service.ErrNoParseableContent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "File is empty or contains no parseable content",
			})
		}
		h.logger.Error("Failed to ingest file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process file",
		})
	}

	return c.JSON(resp)
}
