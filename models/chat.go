package models

import "time"

// Message roles. A conversation only ever contains these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one entry in a conversation
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest represents an incoming chat message
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse represents the reply to a chat submission
type ChatResponse struct {
	Accepted bool     `json:"accepted"`
	Message  *Message `json:"message,omitempty"`
}

// ConversationResponse is the full message history of one widget
type ConversationResponse struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

// WidgetStateResponse reports widget visibility and busy state
type WidgetStateResponse struct {
	SessionID string `json:"session_id"`
	Open      bool   `json:"open"`
	Busy      bool   `json:"busy"`
}
