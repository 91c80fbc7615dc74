package dto

type CreateChatbotRequest struct {
	Name            string `json:"name"`
	WebsiteURL      string `json:"websiteUrl,omitempty"`
	SlackWebhookURL string `json:"slackWebhookUrl,omitempty"`
}

type UpdateChatbotRequest struct {
	Name            *string `json:"name,omitempty"`
	WebsiteURL      *string `json:"websiteUrl,omitempty"`
	SlackWebhookURL *string `json:"slackWebhookUrl,omitempty"`
	Status          *string `json:"status,omitempty"`
}

type ChatbotResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	WebsiteURL      string `json:"websiteUrl,omitempty"`
	SlackWebhookURL string `json:"slackWebhookUrl,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}
