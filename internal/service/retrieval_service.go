package service

import (
	"context"
	"fmt"
	"strings"

	"chatdesk/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// noContextSentinel keeps prompt construction unambiguous: "no context" is
// never confused with an empty context string.
const noContextSentinel = "No relevant documents found in knowledge base."

// RetrievalMatch is one similarity result, always scoped to a single bot.
type RetrievalMatch struct {
	Title   string
	Content string
	Score   float32
	BotID   string
}

type RetrievalService struct {
	embedder Embedder
	index    VectorIndex
	config   *config.RAGConfig
	logger   *zap.Logger
}

func NewRetrievalService(embedder Embedder, index VectorIndex, cfg *config.RAGConfig, logger *zap.Logger) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		index:    index,
		config:   cfg,
		logger:   logger,
	}
}

// Search embeds the query and returns up to topK matches for the bot,
// ordered by descending similarity as reported by the index. topK <= 0 uses
// the configured default.
func (s *RetrievalService) Search(ctx context.Context, botID uuid.UUID, query string, topK int) ([]RetrievalMatch, error) {
	if topK <= 0 {
		topK = s.config.TopK
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("Query embedding failed, searching with zero vector",
			zap.String("bot_id", botID.String()),
			zap.Error(err),
		)
		vector = make([]float32, s.embedder.Dimension())
	}

	raw, err := s.index.Query(ctx, vector, topK, botID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query vector index: %w", err)
	}

	matches := make([]RetrievalMatch, 0, len(raw))
	for _, m := range raw {
		// The index query already filters by bot; re-check locally so a
		// misconfigured index can never leak another bot's documents.
		if m.Metadata.BotID != botID.String() {
			s.logger.Warn("Dropping match from foreign bot scope",
				zap.String("expected", botID.String()),
				zap.String("got", m.Metadata.BotID),
			)
			continue
		}
		matches = append(matches, RetrievalMatch{
			Title:   m.Metadata.Title,
			Content: m.Metadata.Content,
			Score:   m.Score,
			BotID:   m.Metadata.BotID,
		})
	}

	s.logger.Debug("Knowledge search completed",
		zap.String("bot_id", botID.String()),
		zap.Int("matches", len(matches)),
	)

	return matches, nil
}

// BuildContext joins matches into the prompt context block.
func (s *RetrievalService) BuildContext(matches []RetrievalMatch) string {
	if len(matches) == 0 {
		return noContextSentinel
	}

	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("%s: %s", m.Title, m.Content)
	}
	return strings.Join(parts, "\n\n")
}
