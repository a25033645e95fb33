package domain

import "time"

// WidgetKey is a per-team API key used by the embedded chat widget.
type WidgetKey struct {
	ID         int64
	TeamID     int64
	APIKey     string
	KeyName    string
	IsActive   bool
	UsageCount int64
	LastUsed   *time.Time
	CreatedBy  *int64
	CreatedAt  time.Time
}

// WidgetConfig holds per-team widget appearance and copy settings.
type WidgetConfig struct {
	ID               int64
	TeamID           int64
	WidgetTitle      string
	WidgetSubtitle   string
	PrimaryColor     string
	SecondaryColor   string
	WelcomeMessage   string
	InputPlaceholder string
	WidgetPosition   string
	ShowAvatar       bool
	ShowPoweredBy    bool
	CreatedBy        *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
