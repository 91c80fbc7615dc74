package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"chatdesk/pkg/config"
	"chatdesk/pkg/pinecone"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestIngestion(t *testing.T, knowledge *fakeKnowledgeStore, embedder *fakeEmbedder, index *fakeIndex) *IngestionService {
	t.Helper()
	cfg := &config.RAGConfig{TopK: 3, ChunkSize: 500, HistoryLimit: 10}
	svc, err := NewIngestionService(knowledge, embedder, index, cfg, 2, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func TestIngest(t *testing.T) {
	botID := uuid.New()

	t.Run("every item chunked, embedded, indexed and persisted", func(t *testing.T) {
		knowledge := &fakeKnowledgeStore{}
		index := &fakeIndex{}
		svc := newTestIngestion(t, knowledge, &fakeEmbedder{dim: 16}, index)

		items := []QAItem{
			{Question: "What are your hours?", Answer: "We are open nine to five on weekdays."},
			{Question: "Do you ship abroad?", Answer: "Yes, we ship to most countries worldwide."},
		}
		stats, details := svc.Ingest(context.Background(), botID, items)

		assert.Equal(t, 2, stats.TotalItems)
		assert.Equal(t, 2, stats.ChunksCreated)
		assert.Equal(t, 0, stats.Errors)

		require.Len(t, details, 2)
		assert.Equal(t, "What are your hours?", details[0].Question)
		assert.Equal(t, "success", details[0].Status)
		assert.Equal(t, 1, details[0].Chunks)

		require.Len(t, index.upserts, 2)
		require.Len(t, knowledge.chunks, 2)
		for _, chunk := range knowledge.chunks {
			assert.Equal(t, botID, chunk.ChatbotID)
			assert.NotEmpty(t, chunk.VectorID)
			assert.True(t, strings.HasPrefix(chunk.VectorID, botID.String()+"-"))
		}
		for _, v := range index.upserts {
			assert.Equal(t, botID.String(), v.Metadata.BotID)
		}
	})

	t.Run("one failing chunk does not abort the batch", func(t *testing.T) {
		knowledge := &fakeKnowledgeStore{}
		index := &fakeIndex{failUpsert: func(v pinecone.Vector) error {
			if v.Metadata.Title == "Broken item" {
				return errors.New("index unavailable")
			}
			return nil
		}}
		svc := newTestIngestion(t, knowledge, &fakeEmbedder{dim: 16}, index)

		items := []QAItem{
			{Question: "First item", Answer: "A perfectly fine answer body."},
			{Question: "Second item", Answer: "Another perfectly fine answer."},
			{Question: "Broken item", Answer: "This one hits the failing index."},
			{Question: "Fourth item", Answer: "Back to working answers here."},
			{Question: "Fifth item", Answer: "And one more for good measure."},
		}
		stats, details := svc.Ingest(context.Background(), botID, items)

		assert.Equal(t, 5, stats.TotalItems)
		assert.Equal(t, 4, stats.ChunksCreated)
		assert.Equal(t, 1, stats.Errors)

		require.Len(t, details, 5)
		assert.Equal(t, "Broken item", details[2].Question)
		assert.Equal(t, "error", details[2].Status)
		assert.Contains(t, details[2].Error, "failed to index chunk")
		for _, i := range []int{0, 1, 3, 4} {
			assert.Equal(t, "success", details[i].Status, details[i].Question)
		}

		assert.Len(t, knowledge.chunks, 4, "the failed chunk is never persisted")
	})

	t.Run("long answers split into titled parts", func(t *testing.T) {
		knowledge := &fakeKnowledgeStore{}
		index := &fakeIndex{}
		svc := newTestIngestion(t, knowledge, &fakeEmbedder{dim: 16}, index)

		long := strings.Repeat("This sentence pads the answer well past a single chunk. ", 30)
		stats, details := svc.Ingest(context.Background(), botID, []QAItem{
			{Question: "Long answer", Answer: long},
		})

		require.Greater(t, stats.ChunksCreated, 1)
		assert.Equal(t, stats.ChunksCreated, details[0].Chunks)

		titles := make(map[string]bool)
		for _, chunk := range knowledge.chunks {
			titles[chunk.Title] = true
			assert.Equal(t, stats.ChunksCreated, chunk.PartCount)
		}
		assert.True(t, titles["Long answer (Part 1/"+strconv.Itoa(stats.ChunksCreated)+")"])
	})

	t.Run("embedding failure falls back to a zero vector", func(t *testing.T) {
		knowledge := &fakeKnowledgeStore{}
		index := &fakeIndex{}
		svc := newTestIngestion(t, knowledge, &fakeEmbedder{dim: 4, err: errors.New("cohere down")}, index)

		stats, _ := svc.Ingest(context.Background(), botID, []QAItem{
			{Question: "Hours", Answer: "We are open nine to five."},
		})

		assert.Equal(t, 1, stats.ChunksCreated)
		assert.Equal(t, 0, stats.Errors)
		require.Len(t, index.upserts, 1)
		for _, v := range index.upserts[0].Values {
			assert.Zero(t, v)
		}
	})
}

func TestIngestFile(t *testing.T) {
	botID := uuid.New()

	t.Run("parses by extension and reports stats", func(t *testing.T) {
		knowledge := &fakeKnowledgeStore{}
		svc := newTestIngestion(t, knowledge, &fakeEmbedder{dim: 16}, &fakeIndex{})

		content := []byte(`[{"question": "Hours?", "answer": "Nine to five on weekdays."}]`)
		resp, err := svc.IngestFile(context.Background(), botID, "faq.json", content)
		require.NoError(t, err)

		assert.Equal(t, "Knowledge base updated", resp.Message)
		assert.Equal(t, 1, resp.Stats.TotalItems)
		assert.Equal(t, 1, resp.Stats.ChunksCreated)
	})

	t.Run("unsupported extension rejected", func(t *testing.T) {
		svc := newTestIngestion(t, &fakeKnowledgeStore{}, &fakeEmbedder{dim: 16}, &fakeIndex{})

		_, err := svc.IngestFile(context.Background(), botID, "slides.pptx", []byte("whatever"))
		var ufe *UnsupportedFormatError
		require.ErrorAs(t, err, &ufe)
	})

	t.Run("empty file rejected", func(t *testing.T) {
		svc := newTestIngestion(t, &fakeKnowledgeStore{}, &fakeEmbedder{dim: 16}, &fakeIndex{})

		_, err := svc.IngestFile(context.Background(), botID, "empty.txt", []byte("  \n"))
		require.ErrorIs(t, err, ErrNoParseableContent)
	})

	t.Run("malformed json rejected as unparseable", func(t *testing.T) {
		svc := newTestIngestion(t, &fakeKnowledgeStore{}, &fakeEmbedder{dim: 16}, &fakeIndex{})

		_, err := svc.IngestFile(context.Background(), botID, "broken.json", []byte(`{"a": `))
		require.ErrorIs(t, err, ErrNoParseableContent)
	})
}
