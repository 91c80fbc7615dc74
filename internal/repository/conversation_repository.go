package repository

import (
	"context"
	"errors"

	"chatdesk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ConversationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewConversationRepository(db *pgxpool.Pool, logger *zap.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	query := squirrel.Insert("conversations").
		Columns("id", "chatbot_id", "visitor_id", "escalated", "created_at").
		Values(conv.ID, conv.ChatbotID, conv.VisitorID, conv.Escalated, conv.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	query := squirrel.Select("id", "chatbot_id", "visitor_id", "escalated", "created_at").
		From("conversations").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var conv models.Conversation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&conv.ID, &conv.ChatbotID, &conv.VisitorID, &conv.Escalated, &conv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &conv, nil
}

func (r *ConversationRepository) MarkEscalated(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Update("conversations").
		Set("escalated", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
