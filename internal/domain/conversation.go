package domain

import "time"

// Conversation is a single user-message/assistant-reply exchange within a
// widget chat session.
type Conversation struct {
	ID          int64
	SessionID   string
	UserMessage string
	AIResponse  string
	TeamID      *int64
	UserID      *int64
	Timestamp   time.Time
}

// SessionStats aggregates widget chat activity for a team.
type SessionStats struct {
	TeamID        int64
	SessionCount  int64
	MessageCount  int64
	LastMessageAt *time.Time
}

// Contact is a lead captured from the embedded widget.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Message   string
	TeamID    *int64
	CreatedAt time.Time
}
