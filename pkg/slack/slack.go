package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Escalation describes a conversation flagged for human follow-up.
type Escalation struct {
	BotName        string
	VisitorID      string
	Message        string
	ConversationID string
}

// Client posts escalation notices to a Slack incoming webhook. Delivery is
// best-effort: callers log failures and never surface them to the visitor.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

type webhookPayload struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Type string    `json:"type"`
	Text blockText `json:"text"`
}

type blockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify sends the escalation notice to the given webhook URL.
func (c *Client) Notify(ctx context.Context, webhookURL string, esc Escalation) error {
	payload := webhookPayload{
		Text: fmt.Sprintf("🚨 Chatbot escalation for %s", esc.BotName),
		Blocks: []block{
			{
				Type: "section",
				Text: blockText{
					Type: "mrkdwn",
					Text: fmt.Sprintf("*Visitor:* %s\n*Message:* %s\n*Bot couldn't answer - needs human help*\n*Conversation:* %s",
						esc.VisitorID, esc.Message, esc.ConversationID),
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery returned %d", resp.StatusCode)
	}
	return nil
}
