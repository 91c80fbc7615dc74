package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatbotStatus string

const (
	ChatbotStatusActive   ChatbotStatus = "active"
	ChatbotStatusDisabled ChatbotStatus = "disabled"
)

type Chatbot struct {
	ID              uuid.UUID     `db:"id"`
	UserID          uuid.UUID     `db:"user_id"`
	Name            string        `db:"name"`
	WebsiteURL      string        `db:"website_url"`
	SlackWebhookURL string        `db:"slack_webhook_url"`
	Status          ChatbotStatus `db:"status"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}
