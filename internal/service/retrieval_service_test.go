package service

import (
	"context"
	"errors"
	"testing"

	"chatdesk/pkg/config"
	"chatdesk/pkg/pinecone"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRetrieval(embedder *fakeEmbedder, index *fakeIndex) *RetrievalService {
	cfg := &config.RAGConfig{TopK: 3, ChunkSize: 500, HistoryLimit: 10}
	return NewRetrievalService(embedder, index, cfg, zap.NewNop())
}

func TestRetrievalSearch(t *testing.T) {
	botID := uuid.New()

	t.Run("returns matches scoped to the bot", func(t *testing.T) {
		index := &fakeIndex{queryResult: []pinecone.Match{
			{Score: 0.92, Metadata: pinecone.Metadata{BotID: botID.String(), Title: "Hours", Content: "9 to 5"}},
			{Score: 0.81, Metadata: pinecone.Metadata{BotID: botID.String(), Title: "Refunds", Content: "30 days"}},
		}}
		svc := newTestRetrieval(&fakeEmbedder{dim: 1024}, index)

		matches, err := svc.Search(context.Background(), botID, "what are your hours?", 0)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "Hours", matches[0].Title)
		assert.Equal(t, float32(0.92), matches[0].Score)
		assert.Equal(t, botID.String(), index.lastBotID)
		assert.Equal(t, 3, index.lastTopK, "topK <= 0 falls back to the configured default")
	})

	t.Run("drops matches from another bot", func(t *testing.T) {
		index := &fakeIndex{queryResult: []pinecone.Match{
			{Score: 0.9, Metadata: pinecone.Metadata{BotID: botID.String(), Title: "Ours"}},
			{Score: 0.8, Metadata: pinecone.Metadata{BotID: uuid.NewString(), Title: "Theirs"}},
		}}
		svc := newTestRetrieval(&fakeEmbedder{dim: 1024}, index)

		matches, err := svc.Search(context.Background(), botID, "query", 5)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Ours", matches[0].Title)
	})

	t.Run("embedding failure degrades to a zero vector", func(t *testing.T) {
		index := &fakeIndex{}
		svc := newTestRetrieval(&fakeEmbedder{dim: 8, err: errors.New("cohere down")}, index)

		matches, err := svc.Search(context.Background(), botID, "query", 2)
		require.NoError(t, err)
		assert.Empty(t, matches)
		require.Len(t, index.lastVector, 8)
		for _, v := range index.lastVector {
			assert.Zero(t, v)
		}
	})

	t.Run("index failure surfaces", func(t *testing.T) {
		svc := newTestRetrieval(&fakeEmbedder{dim: 8}, &fakeIndex{queryErr: errors.New("timeout")})

		_, err := svc.Search(context.Background(), botID, "query", 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query vector index")
	})
}

func TestBuildContext(t *testing.T) {
	svc := newTestRetrieval(&fakeEmbedder{dim: 8}, &fakeIndex{})

	t.Run("joins title and content pairs", func(t *testing.T) {
		ctx := svc.BuildContext([]RetrievalMatch{
			{Title: "Hours", Content: "9 to 5"},
			{Title: "Refunds", Content: "30 days"},
		})
		assert.Equal(t, "Hours: 9 to 5\n\nRefunds: 30 days", ctx)
	})

	t.Run("empty matches yield the sentinel", func(t *testing.T) {
		assert.Equal(t, "No relevant documents found in knowledge base.", svc.BuildContext(nil))
	})
}
