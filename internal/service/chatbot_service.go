package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatdesk/internal/dto"
	"chatdesk/internal/models"
	"chatdesk/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrNameRequired = errors.New("chatbot name is required")
)

type ChatbotService struct {
	chatbots  ChatbotStore
	knowledge KnowledgeStore
	logger    *zap.Logger
}

func NewChatbotService(chatbots ChatbotStore, knowledge KnowledgeStore, logger *zap.Logger) *ChatbotService {
	return &ChatbotService{
		chatbots:  chatbots,
		knowledge: knowledge,
		logger:    logger,
	}
}

func (s *ChatbotService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateChatbotRequest) (*dto.ChatbotResponse, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	bot := &models.Chatbot{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            req.Name,
		WebsiteURL:      req.WebsiteURL,
		SlackWebhookURL: req.SlackWebhookURL,
		Status:          models.ChatbotStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.chatbots.Create(ctx, bot); err != nil {
		return nil, fmt.Errorf("failed to create chatbot: %w", err)
	}

	return toChatbotResponse(bot), nil
}

// GetForUser loads a chatbot and enforces ownership.
func (s *ChatbotService) GetForUser(ctx context.Context, userID, botID uuid.UUID) (*models.Chatbot, error) {
	bot, err := s.chatbots.GetByID(ctx, botID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatbotNotFound
		}
		return nil, fmt.Errorf("failed to load chatbot: %w", err)
	}
	if bot.UserID != userID {
		return nil, ErrForbidden
	}
	return bot, nil
}

func (s *ChatbotService) List(ctx context.Context, userID uuid.UUID) ([]*dto.ChatbotResponse, error) {
	bots, err := s.chatbots.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chatbots: %w", err)
	}

	responses := make([]*dto.ChatbotResponse, 0, len(bots))
	for _, bot := range bots {
		responses = append(responses, toChatbotResponse(bot))
	}
	return responses, nil
}

func (s *ChatbotService) Update(ctx context.Context, userID, botID uuid.UUID, req *dto.UpdateChatbotRequest) (*dto.ChatbotResponse, error) {
	bot, err := s.GetForUser(ctx, userID, botID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bot.Name = *req.Name
	}
	if req.WebsiteURL != nil {
		bot.WebsiteURL = *req.WebsiteURL
	}
	if req.SlackWebhookURL != nil {
		bot.SlackWebhookURL = *req.SlackWebhookURL
	}
	if req.Status != nil {
		bot.Status = models.ChatbotStatus(*req.Status)
	}
	bot.UpdatedAt = time.Now()

	if err := s.chatbots.Update(ctx, bot); err != nil {
		return nil, fmt.Errorf("failed to update chatbot: %w", err)
	}

	return toChatbotResponse(bot), nil
}

// Delete removes the chatbot and its tracked knowledge chunks. Vectors stay
// behind in the index: the store cannot delete by filter, so their cleanup
// is a separate job working from the tracked vector ids.
func (s *ChatbotService) Delete(ctx context.Context, userID, botID uuid.UUID) error {
	bot, err := s.GetForUser(ctx, userID, botID)
	if err != nil {
		return err
	}

	orphaned, err := s.knowledge.ListVectorIDs(ctx, bot.ID)
	if err != nil {
		return fmt.Errorf("failed to list knowledge vectors: %w", err)
	}

	if err := s.knowledge.DeleteByChatbot(ctx, bot.ID); err != nil {
		return fmt.Errorf("failed to delete knowledge chunks: %w", err)
	}
	if err := s.chatbots.Delete(ctx, bot.ID); err != nil {
		return fmt.Errorf("failed to delete chatbot: %w", err)
	}

	s.logger.Info("Chatbot deleted",
		zap.String("bot_id", bot.ID.String()),
		zap.Int("orphaned_vectors", len(orphaned)),
	)
	return nil
}

func toChatbotResponse(bot *models.Chatbot) *dto.ChatbotResponse {
	return &dto.ChatbotResponse{
		ID:              bot.ID.String(),
		Name:            bot.Name,
		WebsiteURL:      bot.WebsiteURL,
		SlackWebhookURL: bot.SlackWebhookURL,
		Status:          string(bot.Status),
		CreatedAt:       bot.CreatedAt.Format(time.RFC3339),
	}
}
