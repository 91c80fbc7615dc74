package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"chatdesk/internal/dto"
	"chatdesk/internal/models"
	"chatdesk/internal/repository"
	"chatdesk/pkg/anthropic"
	"chatdesk/pkg/config"
	"chatdesk/pkg/slack"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrChatbotNotFound       = errors.New("chatbot not found")
	ErrConversationNotFound  = errors.New("conversation not found")
	ErrInvalidConversationID = errors.New("invalid conversation id")
	ErrEmptyMessage          = errors.New("message is required")
)

type ChatService struct {
	chatbots      ChatbotStore
	conversations ConversationStore
	messages      MessageStore
	retrieval     *RetrievalService
	generator     Generator
	notifier      Notifier
	config        *config.RAGConfig
	logger        *zap.Logger
}

func NewChatService(
	chatbots ChatbotStore,
	conversations ConversationStore,
	messages MessageStore,
	retrieval *RetrievalService,
	generator Generator,
	notifier Notifier,
	cfg *config.RAGConfig,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chatbots:      chatbots,
		conversations: conversations,
		messages:      messages,
		retrieval:     retrieval,
		generator:     generator,
		notifier:      notifier,
		config:        cfg,
		logger:        logger,
	}
}

// HandleMessage answers one visitor message: retrieve context, generate a
// grounded reply, decide on escalation, and persist the turn.
func (s *ChatService) HandleMessage(ctx context.Context, botID uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	bot, err := s.chatbots.GetByID(ctx, botID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatbotNotFound
		}
		return nil, fmt.Errorf("failed to load chatbot: %w", err)
	}

	conv, err := s.resolveConversation(ctx, bot.ID, req)
	if err != nil {
		return nil, err
	}

	matches, err := s.retrieval.Search(ctx, bot.ID, req.Message, 0)
	if err != nil {
		return nil, err
	}
	systemPrompt := buildSystemPrompt(bot.Name, s.retrieval.BuildContext(matches))

	turns := s.loadHistory(ctx, conv.ID)

	// The visitor's message is accepted data: persist it before generation
	// so a generation failure cannot discard it.
	userMsg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Author:         models.MessageAuthorUser,
		Content:        req.Message,
		Metadata:       encodeMetadata(dto.MessageMetadata{Tokens: 50}),
		CreatedAt:      time.Now(),
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	completion, err := s.generator.Complete(ctx, systemPrompt, turns, req.Message)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	reply := completion.Text

	decision := ShouldEscalate(reply, matches, req.Message)

	botMeta := dto.MessageMetadata{Tokens: completion.OutputTokens}
	if len(matches) > 0 {
		botMeta.Confidence = matches[0].Score
		titles := make([]string, len(matches))
		for i, m := range matches {
			titles[i] = m.Title
		}
		botMeta.MatchedDocuments = titles
	}

	botMsg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Author:         models.MessageAuthorBot,
		Content:        reply,
		Metadata:       encodeMetadata(botMeta),
		CreatedAt:      time.Now(),
	}
	if err := s.messages.Create(ctx, botMsg); err != nil {
		// The visitor already has the reply in hand; losing the stored copy
		// is not worth failing the request over.
		s.logger.Error("Failed to persist bot message", zap.Error(err))
	}

	if decision.Escalate {
		s.escalate(ctx, bot, conv, req.Message, decision)
	}

	return &dto.ChatResponse{
		Reply:          reply,
		ConversationID: conv.ID.String(),
		Escalated:      decision.Escalate,
	}, nil
}

func (s *ChatService) resolveConversation(ctx context.Context, botID uuid.UUID, req *dto.ChatRequest) (*models.Conversation, error) {
	if req.ConversationID != "" {
		convID, err := uuid.Parse(req.ConversationID)
		if err != nil {
			return nil, ErrInvalidConversationID
		}
		conv, err := s.conversations.GetByID(ctx, convID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, fmt.Errorf("failed to load conversation: %w", err)
		}
		return conv, nil
	}

	visitor := req.VisitorID
	if visitor == "" {
		visitor = fmt.Sprintf("visitor_%d", time.Now().UnixMilli())
	}
	conv := &models.Conversation{
		ID:        uuid.New(),
		ChatbotID: botID,
		VisitorID: visitor,
		CreatedAt: time.Now(),
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// loadHistory returns the most recent prior turns, oldest first. History is
// context, not correctness: a fetch failure degrades to an empty history.
func (s *ChatService) loadHistory(ctx context.Context, conversationID uuid.UUID) []anthropic.Turn {
	history, err := s.messages.ListRecent(ctx, conversationID, s.config.HistoryLimit)
	if err != nil {
		s.logger.Warn("Failed to load conversation history", zap.Error(err))
		return nil
	}

	turns := make([]anthropic.Turn, 0, len(history))
	for _, msg := range history {
		role := anthropic.RoleAssistant
		if msg.Author == models.MessageAuthorUser {
			role = anthropic.RoleUser
		}
		turns = append(turns, anthropic.Turn{Role: role, Content: msg.Content})
	}
	return turns
}

// escalate marks the conversation and notifies the bot's webhook. The flag
// is persisted regardless of delivery: a dead webhook must not unflag a
// conversation that needs a human.
func (s *ChatService) escalate(ctx context.Context, bot *models.Chatbot, conv *models.Conversation, message string, decision EscalationDecision) {
	if err := s.conversations.MarkEscalated(ctx, conv.ID); err != nil {
		s.logger.Error("Failed to mark conversation escalated", zap.Error(err))
	}

	if bot.SlackWebhookURL != "" {
		err := s.notifier.Notify(ctx, bot.SlackWebhookURL, slack.Escalation{
			BotName:        bot.Name,
			VisitorID:      conv.VisitorID,
			Message:        message,
			ConversationID: conv.ID.String(),
		})
		if err != nil {
			s.logger.Warn("Escalation notification failed", zap.Error(err))
		}
	}

	s.logger.Info("Conversation escalated",
		zap.String("bot_id", bot.ID.String()),
		zap.String("conversation_id", conv.ID.String()),
		zap.String("reason", decision.Reason),
	)
}

func buildSystemPrompt(botName, context string) string {
	return fmt.Sprintf(`You are a helpful support chatbot for %s.
You have access to a knowledge base. Use it to answer questions accurately and helpfully.
If you don't know the answer based on the knowledge base, be honest and offer to escalate the issue.
Keep responses under 150 words.
Be friendly, professional, and helpful.

Knowledge Base:
%s`, botName, context)
}

func encodeMetadata(meta dto.MessageMetadata) string {
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}
