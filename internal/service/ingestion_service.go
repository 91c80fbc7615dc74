package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"chatdesk/internal/dto"
	"chatdesk/internal/models"
	"chatdesk/pkg/config"
	"chatdesk/pkg/pinecone"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var ErrNoParseableContent = errors.New("no parseable content in file")

// metadataContentLimit bounds how much chunk text is mirrored into index
// metadata; the full text lives in the relational store.
const metadataContentLimit = 1000

type IngestionService struct {
	knowledge KnowledgeStore
	embedder  Embedder
	index     VectorIndex
	config    *config.RAGConfig
	pool      *ants.Pool
	logger    *zap.Logger
}

// NewIngestionService creates the pipeline with a bounded worker pool for
// chunk-level embedding and indexing. poolSize <= 0 picks a default from the
// CPU count.
func NewIngestionService(
	knowledge KnowledgeStore,
	embedder Embedder,
	index VectorIndex,
	cfg *config.RAGConfig,
	poolSize int,
	logger *zap.Logger,
) (*IngestionService, error) {
	if poolSize <= 0 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &IngestionService{
		knowledge: knowledge,
		embedder:  embedder,
		index:     index,
		config:    cfg,
		pool:      pool,
		logger:    logger,
	}, nil
}

func (s *IngestionService) Close() {
	s.pool.Release()
}

// IngestFile parses one uploaded file by its declared extension and feeds
// the extracted items through the pipeline.
func (s *IngestionService) IngestFile(ctx context.Context, botID uuid.UUID, filename string, content []byte) (*dto.UploadResponse, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	items, outcome := ParseContent(string(content), format)
	if outcome == OutcomeMalformed {
		s.logger.Warn("Uploaded file did not parse cleanly",
			zap.String("filename", filename),
			zap.String("format", string(format)),
		)
	}
	if len(items) == 0 {
		return nil, ErrNoParseableContent
	}

	stats, details := s.Ingest(ctx, botID, items)

	return &dto.UploadResponse{
		Message: "Knowledge base updated",
		Stats:   stats,
		Details: details,
	}, nil
}

// Ingest chunks every item and embeds, indexes, and persists each chunk.
// Chunk failures are counted and recorded per item but never abort the rest
// of the batch; the details list preserves input order.
func (s *IngestionService) Ingest(ctx context.Context, botID uuid.UUID, items []QAItem) (dto.UploadStats, []dto.ItemResult) {
	stats := dto.UploadStats{TotalItems: len(items)}
	details := make([]dto.ItemResult, 0, len(items))

	for itemIndex, item := range items {
		combined := fmt.Sprintf("Q: %s\n\nA: %s", item.Question, item.Answer)
		chunks := ChunkText(combined, s.config.ChunkSize)

		result := dto.ItemResult{Question: item.Question, Status: "success"}
		for _, err := range s.processChunks(ctx, botID, item.Question, itemIndex, chunks) {
			if err != nil {
				stats.Errors++
				result.Status = "error"
				if result.Error == "" {
					result.Error = err.Error()
				}
				continue
			}
			stats.ChunksCreated++
			result.Chunks++
		}
		details = append(details, result)
	}

	s.logger.Info("Ingestion completed",
		zap.String("bot_id", botID.String()),
		zap.Int("items", stats.TotalItems),
		zap.Int("chunks", stats.ChunksCreated),
		zap.Int("errors", stats.Errors),
	)

	return stats, details
}

// processChunks runs the chunks of one item on the worker pool. Results land
// in an index-addressed slice so aggregation stays order-stable regardless
// of completion order.
func (s *IngestionService) processChunks(ctx context.Context, botID uuid.UUID, question string, itemIndex int, chunks []string) []error {
	errs := make([]error, len(chunks))
	var wg sync.WaitGroup

	for i, text := range chunks {
		i, text := i, text
		wg.Add(1)
		task := func() {
			defer wg.Done()
			errs[i] = s.processChunk(ctx, botID, question, itemIndex, i, len(chunks), text)
		}
		if err := s.pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = err
		}
	}

	wg.Wait()
	return errs
}

func (s *IngestionService) processChunk(ctx context.Context, botID uuid.UUID, question string, itemIndex, part, partCount int, text string) error {
	title := question
	if partCount > 1 {
		title = fmt.Sprintf("%s (Part %d/%d)", question, part+1, partCount)
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		// Degraded retrieval beats a failed upload: index the chunk under a
		// zero vector rather than dropping it.
		s.logger.Warn("Embedding failed, using zero vector",
			zap.String("title", title),
			zap.Error(err),
		)
		vector = make([]float32, s.embedder.Dimension())
	}

	vectorID := fmt.Sprintf("%s-%d-%s", botID, time.Now().UnixMilli(), randomSuffix(9))

	metaContent := text
	if len(metaContent) > metadataContentLimit {
		metaContent = metaContent[:metadataContentLimit]
	}

	err = s.index.Upsert(ctx, []pinecone.Vector{{
		ID:     vectorID,
		Values: vector,
		Metadata: pinecone.Metadata{
			BotID:   botID.String(),
			Title:   title,
			Content: metaContent,
		},
	}})
	if err != nil {
		return fmt.Errorf("failed to index chunk: %w", err)
	}

	chunk := &models.KnowledgeChunk{
		ID:         uuid.New(),
		ChatbotID:  botID,
		VectorID:   vectorID,
		Title:      title,
		Content:    text,
		SourceItem: itemIndex,
		Part:       part,
		PartCount:  partCount,
		CreatedAt:  time.Now(),
	}
	if err := s.knowledge.Create(ctx, chunk); err != nil {
		return fmt.Errorf("failed to persist chunk: %w", err)
	}

	return nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
