package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is the persisted record of one indexed retrieval unit.
// VectorID is the join key to the external vector store entry; the store
// cannot delete by filter, so tracked ids are the only path to cleanup.
type KnowledgeChunk struct {
	ID         uuid.UUID `db:"id"`
	ChatbotID  uuid.UUID `db:"chatbot_id"`
	VectorID   string    `db:"vector_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	SourceItem int       `db:"source_item"`
	Part       int       `db:"part"`
	PartCount  int       `db:"part_count"`
	CreatedAt  time.Time `db:"created_at"`
}
