package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	t.Run("short text stays in one chunk", func(t *testing.T) {
		chunks := ChunkText("This is the first sentence. This is the second one.", 500)
		require.Len(t, chunks, 1)
		assert.LessOrEqual(t, len(chunks[0]), 500)
	})

	t.Run("every chunk respects the size bound", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 60; i++ {
			b.WriteString("Here is a reasonably sized sentence about the product catalog. ")
		}
		chunks := ChunkText(b.String(), 500)
		require.NotEmpty(t, chunks)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 500)
		}
	})

	t.Run("oversized sentence hard-split into exact pieces", func(t *testing.T) {
		long := strings.Repeat("x", 1200)
		chunks := ChunkText(long, 500)
		require.Len(t, chunks, 3)
		assert.Equal(t, 500, len(chunks[0]))
		assert.Equal(t, 500, len(chunks[1]))
		assert.Equal(t, 200, len(chunks[2]))
	})

	t.Run("tiny fragments dropped", func(t *testing.T) {
		assert.Empty(t, ChunkText("Hi. Ok.", 500))
		assert.Empty(t, ChunkText("   ", 500))
	})

	t.Run("no words lost across chunk boundaries", func(t *testing.T) {
		text := "Opening hours are nine to five! Do we ship abroad? Yes, to most countries. Returns are accepted within thirty days of purchase."
		chunks := ChunkText(text, 60)

		strip := func(s string) string {
			return strings.Map(func(r rune) rune {
				switch r {
				case '.', '!', '?', ' ', '\n', '\t':
					return -1
				}
				return r
			}, s)
		}
		assert.Equal(t, strip(text), strip(strings.Join(chunks, " ")))
	})

	t.Run("deterministic", func(t *testing.T) {
		text := "First sentence here. Second sentence follows. Third one closes it out."
		assert.Equal(t, ChunkText(text, 40), ChunkText(text, 40))
	})

	t.Run("non-positive size uses the default", func(t *testing.T) {
		text := strings.Repeat("A sentence that fills some space in the buffer. ", 20)
		for _, chunk := range ChunkText(text, 0) {
			assert.LessOrEqual(t, len(chunk), DefaultChunkSize)
		}
	})
}
