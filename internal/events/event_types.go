package events

import (
	"time"

	"github.com/livara/chat-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn      EventType = "user_logged_in"
	EventUserLoggedOut     EventType = "user_logged_out"
	EventUserRegistered    EventType = "user_registered"
	EventWidgetKeyCreated  EventType = "widget_key_created"
	EventWidgetKeyUpdated  EventType = "widget_key_updated"
	EventWidgetKeyRevoked  EventType = "widget_key_revoked"
	EventDocumentUploaded  EventType = "document_uploaded"
	EventDocumentReviewed  EventType = "document_reviewed"
	EventLLMSettingsSaved  EventType = "llm_settings_saved"
	EventConversationSaved EventType = "conversation_saved"
)

// Actor encapsulates actor metadata for an event. Widget-originated events
// carry no user id.
type Actor struct {
	UserID    *int64 `json:"user_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// WidgetKeyPayload payload.
type WidgetKeyPayload struct {
	KeyID   int64  `json:"key_id"`
	TeamID  int64  `json:"team_id"`
	KeyName string `json:"key_name"`
}

// DocumentReviewedPayload payload.
type DocumentReviewedPayload struct {
	DocumentID int64                 `json:"document_id"`
	Status     domain.DocumentStatus `json:"status"`
}

// ConversationSavedPayload payload.
type ConversationSavedPayload struct {
	SessionID string `json:"session_id"`
	TeamID    *int64 `json:"team_id,omitempty"`
}
