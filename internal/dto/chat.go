package dto

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	VisitorID      string `json:"visitorId,omitempty"`
}

type ChatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversationId"`
	Escalated      bool   `json:"escalated"`
}

// MessageMetadata is serialized into the message row's metadata column.
type MessageMetadata struct {
	Tokens           int      `json:"tokens"`
	Confidence       float32  `json:"confidence,omitempty"`
	MatchedDocuments []string `json:"matchedDocuments,omitempty"`
}
