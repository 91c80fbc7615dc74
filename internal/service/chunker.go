package service

import "strings"

// DefaultChunkSize is the retrieval-unit size bound used when no size is
// configured.
const DefaultChunkSize = 500

// minChunkLength is the noise floor: chunks at or below this trimmed length
// carry no retrievable signal and are dropped.
const minChunkLength = 10

// ChunkText splits text into retrieval units of at most maxSize characters,
// keeping sentences intact where possible. A single sentence longer than
// maxSize is hard-split into consecutive maxSize-character pieces. Pure and
// deterministic.
func ChunkText(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}

	units := splitSentences(text)

	var chunks []string
	var current string
	for _, unit := range units {
		if len(unit) > maxSize {
			// Oversized sentence: flush whatever accumulated, then slice
			// the sentence directly.
			if strings.TrimSpace(current) != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}
			current = ""
			for start := 0; start < len(unit); start += maxSize {
				end := start + maxSize
				if end > len(unit) {
					end = len(unit)
				}
				chunks = append(chunks, unit[start:end])
			}
			continue
		}

		// +2 accounts for the ". " re-appended below.
		if current != "" && len(current)+len(unit)+2 > maxSize {
			chunks = append(chunks, strings.TrimSpace(current))
			current = ""
		}
		current += unit + ". "
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	filtered := chunks[:0]
	for _, chunk := range chunks {
		if len(strings.TrimSpace(chunk)) > minChunkLength {
			filtered = append(filtered, chunk)
		}
	}
	return filtered
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
