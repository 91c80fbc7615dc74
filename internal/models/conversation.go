package models

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID        uuid.UUID `db:"id"`
	ChatbotID uuid.UUID `db:"chatbot_id"`
	VisitorID string    `db:"visitor_id"`
	Escalated bool      `db:"escalated"`
	CreatedAt time.Time `db:"created_at"`
}

type MessageAuthor string

const (
	MessageAuthorUser MessageAuthor = "user"
	MessageAuthorBot  MessageAuthor = "bot"
)

type Message struct {
	ID             uuid.UUID     `db:"id"`
	ConversationID uuid.UUID     `db:"conversation_id"`
	Author         MessageAuthor `db:"author"`
	Content        string        `db:"content"`
	Metadata       string        `db:"metadata"` // JSON: tokens, confidence, matched documents
	CreatedAt      time.Time     `db:"created_at"`
}
