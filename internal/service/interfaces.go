package service

import (
	"context"

	"chatdesk/internal/models"
	"chatdesk/pkg/anthropic"
	"chatdesk/pkg/pinecone"
	"chatdesk/pkg/slack"

	"github.com/google/uuid"
)

// Embedder converts text into a fixed-dimensionality vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// VectorIndex is the external nearest-neighbor store.
type VectorIndex interface {
	Upsert(ctx context.Context, vectors []pinecone.Vector) error
	Query(ctx context.Context, vector []float32, topK int, botID string) ([]pinecone.Match, error)
}

// Generator is the external language-generation endpoint.
type Generator interface {
	Complete(ctx context.Context, system string, turns []anthropic.Turn, message string) (*anthropic.Completion, error)
}

// Notifier delivers escalation notices. Best-effort.
type Notifier interface {
	Notify(ctx context.Context, webhookURL string, esc slack.Escalation) error
}

type ChatbotStore interface {
	Create(ctx context.Context, bot *models.Chatbot) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Chatbot, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Chatbot, error)
	Update(ctx context.Context, bot *models.Chatbot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConversationStore interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	MarkEscalated(ctx context.Context, id uuid.UUID) error
}

type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error)
}

type KnowledgeStore interface {
	Create(ctx context.Context, chunk *models.KnowledgeChunk) error
	ListVectorIDs(ctx context.Context, chatbotID uuid.UUID) ([]string, error)
	DeleteByChatbot(ctx context.Context, chatbotID uuid.UUID) error
}
