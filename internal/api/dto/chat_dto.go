package dto

import (
	"time"

	"github.com/livara/chat-service/internal/domain"
)

// ChatRequest is the authenticated dashboard chat payload. SessionID is
// optional; a fresh session is started when it is empty.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// WidgetChatRequest is the public widget chat payload.
type WidgetChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ConversationResponse is one exchange in a transcript.
type ConversationResponse struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	TeamID      *int64    `json:"team_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewConversationResponse maps a conversation row.
func NewConversationResponse(conv *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:          conv.ID,
		SessionID:   conv.SessionID,
		UserMessage: conv.UserMessage,
		AIResponse:  conv.AIResponse,
		TeamID:      conv.TeamID,
		Timestamp:   conv.Timestamp,
	}
}

// ContactRequest is the public widget contact payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// LLMSettingsRequest payload for saving provider settings.
type LLMSettingsRequest struct {
	Provider           string  `json:"provider"`
	OpenAIAPIKey       string  `json:"openai_api_key"`
	OpenAIModel        string  `json:"openai_model"`
	OllamaURL          string  `json:"ollama_url"`
	OllamaModel        string  `json:"ollama_model"`
	MaxTokens          int     `json:"max_tokens"`
	Temperature        float64 `json:"temperature"`
	CustomInstructions string  `json:"custom_instructions"`
}

// DocumentUploadRequest payload for recording an upload.
type DocumentUploadRequest struct {
	TeamID      *int64 `json:"team_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// DocumentReviewRequest payload for the approval workflow.
type DocumentReviewRequest struct {
	Status string `json:"status"`
}
