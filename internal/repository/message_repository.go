package repository

import (
	"context"

	"chatdesk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MessageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMessageRepository(db *pgxpool.Pool, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.CreateBatch(ctx, []*models.Message{msg})
}

func (r *MessageRepository) CreateBatch(ctx context.Context, messages []*models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	builder := squirrel.Insert("messages").
		Columns("id", "conversation_id", "author", "content", "metadata", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, msg := range messages {
		builder = builder.Values(msg.ID, msg.ConversationID, msg.Author, msg.Content, msg.Metadata, msg.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListRecent returns the most recent messages of a conversation in
// creation-time ascending order.
func (r *MessageRepository) ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	query := squirrel.Select("id", "conversation_id", "author", "content", "metadata", "created_at").
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.Author, &msg.Content, &msg.Metadata, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Fetched newest-first; flip to ascending for prompt construction.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
