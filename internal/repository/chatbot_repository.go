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

var ErrNotFound = errors.New("not found")

const chatbotColumns = "id, user_id, name, website_url, slack_webhook_url, status, created_at, updated_at"

type ChatbotRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChatbotRepository(db *pgxpool.Pool, logger *zap.Logger) *ChatbotRepository {
	return &ChatbotRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ChatbotRepository) Create(ctx context.Context, bot *models.Chatbot) error {
	query := squirrel.Insert("chatbots").
		Columns("id", "user_id", "name", "website_url", "slack_webhook_url", "status", "created_at", "updated_at").
		Values(bot.ID, bot.UserID, bot.Name, bot.WebsiteURL, bot.SlackWebhookURL, bot.Status, bot.CreatedAt, bot.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ChatbotRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Chatbot, error) {
	query := squirrel.Select(chatbotColumns).
		From("chatbots").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var bot models.Chatbot
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&bot.ID, &bot.UserID, &bot.Name, &bot.WebsiteURL, &bot.SlackWebhookURL, &bot.Status, &bot.CreatedAt, &bot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &bot, nil
}

func (r *ChatbotRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Chatbot, error) {
	query := squirrel.Select(chatbotColumns).
		From("chatbots").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
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

	var bots []*models.Chatbot
	for rows.Next() {
		var bot models.Chatbot
		if err := rows.Scan(
			&bot.ID, &bot.UserID, &bot.Name, &bot.WebsiteURL, &bot.SlackWebhookURL, &bot.Status, &bot.CreatedAt, &bot.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bots = append(bots, &bot)
	}

	return bots, rows.Err()
}

func (r *ChatbotRepository) Update(ctx context.Context, bot *models.Chatbot) error {
	query := squirrel.Update("chatbots").
		Set("name", bot.Name).
		Set("website_url", bot.WebsiteURL).
		Set("slack_webhook_url", bot.SlackWebhookURL).
		Set("status", bot.Status).
		Set("updated_at", bot.UpdatedAt).
		Where(squirrel.Eq{"id": bot.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ChatbotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("chatbots").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
