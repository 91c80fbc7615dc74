package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chatdesk/pkg/config"
)

// Metadata is the record stored alongside every vector. The shape is fixed:
// loosely-typed payloads from the index are coerced into it at the boundary.
type Metadata struct {
	BotID   string `json:"botId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Vector struct {
	ID       string    `json:"id"`
	Values   []float32 `json:"values"`
	Metadata Metadata  `json:"metadata"`
}

type Match struct {
	ID       string   `json:"id"`
	Score    float32  `json:"score"`
	Metadata Metadata `json:"metadata"`
}

// Client is a minimal REST client for a Pinecone serverless index.
// Deletion by metadata filter is not supported by the backing store; vector
// ids are tracked relationally so a cleanup job can delete by id later.
type Client struct {
	apiKey     string
	indexHost  string
	httpClient *http.Client
}

func NewClient(cfg *config.PineconeConfig) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		indexHost:  cfg.IndexHost,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type upsertRequest struct {
	Vectors []Vector `json:"vectors"`
}

// Upsert writes vectors to the index.
func (c *Client) Upsert(ctx context.Context, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	return c.post(ctx, "/vectors/upsert", upsertRequest{Vectors: vectors}, nil)
}

type queryRequest struct {
	Vector          []float32                    `json:"vector"`
	TopK            int                          `json:"topK"`
	Filter          map[string]map[string]string `json:"filter"`
	IncludeMetadata bool                         `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []Match `json:"matches"`
}

// Query runs a similarity search constrained to one bot. The equality filter
// is always sent: cross-bot results are a correctness violation, not a
// ranking preference.
func (c *Client) Query(ctx context.Context, vector []float32, topK int, botID string) ([]Match, error) {
	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		Filter:          map[string]map[string]string{"botId": {"$eq": botID}},
		IncludeMetadata: true,
	}

	var resp queryResponse
	if err := c.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.indexHost+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("index request %s returned %d: %s", path, resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode index response: %w", err)
	}
	return nil
}
