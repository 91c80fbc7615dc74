package repository

import (
	"context"

	"chatdesk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Create(ctx context.Context, chunk *models.KnowledgeChunk) error {
	query := squirrel.Insert("knowledge_chunks").
		Columns("id", "chatbot_id", "vector_id", "title", "content", "source_item", "part", "part_count", "created_at").
		Values(chunk.ID, chunk.ChatbotID, chunk.VectorID, chunk.Title, chunk.Content, chunk.SourceItem, chunk.Part, chunk.PartCount, chunk.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListVectorIDs returns the tracked vector-store ids of a bot. The vector
// store has no delete-by-filter, so these ids are what a cleanup job works
// from.
func (r *KnowledgeRepository) ListVectorIDs(ctx context.Context, chatbotID uuid.UUID) ([]string, error) {
	query := squirrel.Select("vector_id").
		From("knowledge_chunks").
		Where(squirrel.Eq{"chatbot_id": chatbotID}).
		OrderBy("created_at ASC").
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

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *KnowledgeRepository) DeleteByChatbot(ctx context.Context, chatbotID uuid.UUID) error {
	query := squirrel.Delete("knowledge_chunks").
		Where(squirrel.Eq{"chatbot_id": chatbotID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
